package commands

import (
	"errors"
	"fmt"
	"strings"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"
	"textile/internal/pkg/guard"
)

var (
	ErrRegisterMaterialCommandIsNotConstructed = errors.New(
		"RegisterMaterialCommand must be created via NewRegisterMaterialCommand constructor",
	)
	ErrReceiveMaterialCommandIsNotConstructed = errors.New(
		"ReceiveMaterialCommand must be created via NewReceiveMaterialCommand constructor",
	)
)

// RegisterMaterialCommand adds a raw material with zero stock.
type RegisterMaterialCommand struct { //nolint:recvcheck //using for validation
	materialID kernel.UUID
	name       string
	category   string
	minStock   float64

	guard guard.ConstructorGuard
}

func NewRegisterMaterialCommand(materialID kernel.UUID, name, category string, minStock float64) (RegisterMaterialCommand, error) {
	name = strings.TrimSpace(name)
	var nameErr, minStockErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if minStock < 0 {
		minStockErr = errs.NewValueIsInvalidErrorWithCause("min stock", fmt.Errorf("%v is negative", minStock))
	}
	if err := errors.Join(materialID.Validate(), nameErr, minStockErr); err != nil {
		return RegisterMaterialCommand{}, err
	}

	return RegisterMaterialCommand{
		materialID: materialID,
		name:       name,
		category:   strings.TrimSpace(category),
		minStock:   minStock,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterMaterialCommand) Validate() error {
	return c.guard.Validate(ErrRegisterMaterialCommandIsNotConstructed)
}

func (c RegisterMaterialCommand) MaterialID() kernel.UUID { return c.materialID }
func (c RegisterMaterialCommand) Name() string            { return c.name }
func (c RegisterMaterialCommand) Category() string        { return c.category }
func (c RegisterMaterialCommand) MinStock() float64       { return c.minStock }

// ReceiveMaterialCommand books an inward delivery, e.g. a goods received note.
type ReceiveMaterialCommand struct { //nolint:recvcheck //using for validation
	materialID kernel.UUID
	weight     float64
	reference  string

	guard guard.ConstructorGuard
}

func NewReceiveMaterialCommand(materialID kernel.UUID, weight float64, reference string) (ReceiveMaterialCommand, error) {
	var weightErr error
	if weight <= 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	if err := errors.Join(materialID.Validate(), weightErr); err != nil {
		return ReceiveMaterialCommand{}, err
	}

	return ReceiveMaterialCommand{
		materialID: materialID,
		weight:     weight,
		reference:  strings.TrimSpace(reference),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReceiveMaterialCommand) Validate() error {
	return c.guard.Validate(ErrReceiveMaterialCommandIsNotConstructed)
}

func (c ReceiveMaterialCommand) MaterialID() kernel.UUID { return c.materialID }
func (c ReceiveMaterialCommand) Weight() float64         { return c.weight }
func (c ReceiveMaterialCommand) Reference() string       { return c.reference }
