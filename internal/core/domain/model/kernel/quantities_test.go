package kernel_test

import (
	"testing"

	"textile/internal/core/domain/model/kernel"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantities(t *testing.T) {
	productA := kernel.NewUUID()
	productB := kernel.NewUUID()

	t.Run("should create vector with positive quantities", func(t *testing.T) {
		q, err := kernel.NewQuantities(map[kernel.UUID]int{productA: 100, productB: 40})

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, 100, q.Of(productA))
		assert.Equal(t, 40, q.Of(productB))
		assert.Equal(t, 2, q.Len())
		assert.Equal(t, 140, q.Total())
		assert.True(t, q.Contains(productA))
	})

	t.Run("should fail on empty vector", func(t *testing.T) {
		_, err := kernel.NewQuantities(map[kernel.UUID]int{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail on zero and negative quantities", func(t *testing.T) {
		_, err := kernel.NewQuantities(map[kernel.UUID]int{productA: 0, productB: -5})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 for product "+productA.String())
		assert.Contains(t, err.Error(), "-5 for product "+productB.String())
	})

	t.Run("should fail on nil product", func(t *testing.T) {
		_, err := kernel.NewQuantities(map[kernel.UUID]int{{}: 10})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should not share the input map", func(t *testing.T) {
		input := map[kernel.UUID]int{productA: 10}
		q, _ := kernel.NewQuantities(input)

		input[productA] = 99
		copied := q.Map()
		copied[productA] = 7

		assert.Equal(t, 10, q.Of(productA))
	})
}

func TestQuantities_Absent(t *testing.T) {
	q, _ := kernel.NewQuantities(map[kernel.UUID]int{kernel.NewUUID(): 5})
	other := kernel.NewUUID()

	assert.Equal(t, 0, q.Of(other))
	assert.False(t, q.Contains(other))
}

func TestQuantities_ZeroValue(t *testing.T) {
	var q kernel.Quantities

	assert.Equal(t, kernel.ErrQuantitiesAreNotConstructed, q.Validate())
}

func TestQuantities_ProductIDsAreSorted(t *testing.T) {
	a, _ := kernel.UUIDFromString("00000000-0000-0000-0000-00000000000a")
	b, _ := kernel.UUIDFromString("00000000-0000-0000-0000-00000000000b")
	q, _ := kernel.NewQuantities(map[kernel.UUID]int{b: 1, a: 2})

	assert.Equal(t, []kernel.UUID{a, b}, q.ProductIDs())
}
