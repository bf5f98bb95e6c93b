package material

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var (
	ErrRawMaterialIsNotConstructed = errors.New("RawMaterial must be created via NewRawMaterial constructor")
	ErrNameIsRequired              = errs.NewValueIsRequiredError("name")
)

// RawMaterial is a yarn, rubber or chemical kept in stock by weight (kg). Stock only changes through
// Receive, Consume and Restore, and every change appends a Movement.
type RawMaterial struct {
	id               kernel.UUID
	name             string
	category         string
	stock            float64
	minStock         float64
	totalConsumption float64
	movements        []Movement

	guard guard.ConstructorGuard
}

func NewRawMaterial(id kernel.UUID, name, category string, minStock float64) (*RawMaterial, error) {
	m := &RawMaterial{
		category: category,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setMinStock(minStock),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreRawMaterial rebuilds a material and its movement log from persistence.
func RestoreRawMaterial(
	id kernel.UUID,
	name, category string,
	stock, minStock, totalConsumption float64,
	movements []Movement,
) (*RawMaterial, error) {
	m := &RawMaterial{
		category:         category,
		stock:            stock,
		totalConsumption: totalConsumption,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setMinStock(minStock),
		nonNegative("stock", stock),
		nonNegative("total consumption", totalConsumption),
	); err != nil {
		return nil, err
	}
	m.movements = append([]Movement(nil), movements...)

	return m, nil
}

func (m *RawMaterial) Validate() error {
	if m == nil {
		return ErrRawMaterialIsNotConstructed
	}
	return m.guard.Validate(ErrRawMaterialIsNotConstructed)
}

func (m *RawMaterial) ID() kernel.UUID           { return m.id }
func (m *RawMaterial) Name() string              { return m.name }
func (m *RawMaterial) Category() string          { return m.category }
func (m *RawMaterial) Stock() float64            { return m.stock }
func (m *RawMaterial) MinStock() float64         { return m.minStock }
func (m *RawMaterial) TotalConsumption() float64 { return m.totalConsumption }

func (m *RawMaterial) Movements() []Movement {
	return append([]Movement(nil), m.movements...)
}

// IsBelowMinimum reports whether stock dropped under the reorder threshold.
func (m *RawMaterial) IsBelowMinimum() bool {
	return m.stock < m.minStock
}

// CheckAvailable fails with InsufficientStockError when weight cannot be covered.
func (m *RawMaterial) CheckAvailable(weight float64) error {
	if m.stock < weight {
		return errs.NewInsufficientStockError(m.name, weight, m.stock)
	}
	return nil
}

// Receive books an inward delivery.
func (m *RawMaterial) Receive(weight float64, reference string, at time.Time) error {
	if err := positive("weight", weight); err != nil {
		return err
	}
	m.stock += weight
	m.append(Inward, nil, reference, weight, at)
	return nil
}

// Consume deducts weight for an approved order and adds it to total consumption.
func (m *RawMaterial) Consume(orderID kernel.UUID, weight float64, at time.Time) error {
	if err := errors.Join(orderID.Validate(), positive("weight", weight)); err != nil {
		return err
	}
	if err := m.CheckAvailable(weight); err != nil {
		return err
	}
	m.stock -= weight
	m.totalConsumption += weight
	m.append(OrderApproval, &orderID, "", -weight, at)
	return nil
}

// Restore returns weight consumed by orderID to stock.
func (m *RawMaterial) Restore(orderID kernel.UUID, weight float64, at time.Time) error {
	if err := errors.Join(orderID.Validate(), positive("weight", weight)); err != nil {
		return err
	}
	m.stock += weight
	m.totalConsumption = max(0, m.totalConsumption-weight)
	m.append(Restoration, &orderID, "", weight, at)
	return nil
}

func (m *RawMaterial) append(kind MovementKind, orderID *kernel.UUID, reference string, delta float64, at time.Time) {
	m.movements = append(m.movements, Movement{
		seq:        m.lastSeq() + 1,
		kind:       kind,
		orderID:    orderID,
		reference:  reference,
		delta:      delta,
		balance:    m.stock,
		occurredAt: at,
	})
}

func (m *RawMaterial) lastSeq() int {
	if len(m.movements) == 0 {
		return 0
	}
	return m.movements[len(m.movements)-1].seq
}

func (m *RawMaterial) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *RawMaterial) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	m.name = name
	return nil
}

func (m *RawMaterial) setMinStock(minStock float64) error {
	if err := nonNegative("minimum stock", minStock); err != nil {
		return err
	}
	m.minStock = minStock
	return nil
}

func nonNegative(name string, value float64) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", fmt.Errorf("%.3f is negative", value))
	}
	return nil
}

func positive(name string, value float64) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", fmt.Errorf("%.3f is not greater than 0", value))
	}
	return nil
}
