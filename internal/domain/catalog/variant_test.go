package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariant(t *testing.T) {
	productID := uuid.New()

	t.Run("creates variant with valid inputs", func(t *testing.T) {
		variant, err := NewVariant("tenant-1", productID, "SKU-001-RED-42", decimal.NewFromFloat(64.90))
		require.NoError(t, err)
		require.NotNil(t, variant)

		assert.Equal(t, "tenant-1", variant.TenantID)
		assert.Equal(t, productID, variant.ProductID)
		assert.Equal(t, "SKU-001-RED-42", variant.SKU)
		assert.True(t, variant.Price.Equal(decimal.NewFromFloat(64.90)))
		assert.True(t, variant.Active)
		assert.Zero(t, variant.Stock)
		assert.False(t, variant.InStock())
	})

	t.Run("converts SKU to uppercase", func(t *testing.T) {
		variant, err := NewVariant("tenant-1", productID, "sku-001-red-42", decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "SKU-001-RED-42", variant.SKU)
	})

	t.Run("fails without a product", func(t *testing.T) {
		_, err := NewVariant("tenant-1", uuid.Nil, "SKU-001-RED-42", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a product")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewVariant("tenant-1", productID, "SKU-001-RED-42", decimal.NewFromInt(-5))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestVariantOptions(t *testing.T) {
	variant, err := NewVariant("tenant-1", uuid.New(), "SKU-001-RED-42", decimal.Zero)
	require.NoError(t, err)

	t.Run("sets color and size", func(t *testing.T) {
		require.NoError(t, variant.SetOptions("red", "42"))
		assert.Equal(t, "red", variant.Color)
		assert.Equal(t, "42", variant.Size)
	})
}

func TestVariantStock(t *testing.T) {
	variant, err := NewVariant("tenant-1", uuid.New(), "SKU-001-RED-42", decimal.Zero)
	require.NoError(t, err)

	t.Run("sets stock and reports availability", func(t *testing.T) {
		require.NoError(t, variant.SetStock(12))
		assert.Equal(t, 12, variant.Stock)
		assert.True(t, variant.InStock())
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		require.Error(t, variant.SetStock(-1))
	})
}

func TestVariantActivation(t *testing.T) {
	variant, err := NewVariant("tenant-1", uuid.New(), "SKU-001-RED-42", decimal.Zero)
	require.NoError(t, err)

	variant.Deactivate()
	assert.False(t, variant.Active)

	variant.Activate()
	assert.True(t, variant.Active)
}
