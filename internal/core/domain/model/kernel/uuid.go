package kernel

import (
	"fmt"
	"sort"

	"textile/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies every aggregate and entity of the production floor: orders, jobs, machines,
// raw materials, products, customers and employees. The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn or hyphen-less text forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes restores an identifier from its 16-byte database form.
// The nil UUID is rejected with ErrUUIDIsNotConstructed.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}

	return restored, nil
}

// UUIDFromNullable restores an optional reference column; a nil column stays nil.
func UUIDFromNullable(raw *uuid.UUID) (*UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value used by persistence DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// NullableBytes maps an optional reference to its nullable column value.
func NullableBytes(u *UUID) *uuid.UUID {
	if u == nil {
		return nil
	}
	raw := u.id
	return &raw
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// SortUUIDs orders identifiers by their text form so that iteration over per-product
// vectors is deterministic.
func SortUUIDs(ids []UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
