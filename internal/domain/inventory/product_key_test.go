package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/inventory"
)

func TestProductKeyFromName(t *testing.T) {
	cases := map[string]string{
		"Gorra":            "merch_gorra",
		"  Gorra Azúl ":    "merch_gorra_azul",
		"Lapicero (metal)": "merch_lapicero_metal",
		"merch_tacos":      "merch_tacos",
		"Bolsa Ñandú 2025": "merch_bolsa_nandu_2025",
	}
	for name, want := range cases {
		got, err := inventory.ProductKeyFromName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestProductKeyFromName_Vacio(t *testing.T) {
	_, err := inventory.ProductKeyFromName("  ¡! ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateProductKey(t *testing.T) {
	assert.NoError(t, inventory.ValidateProductKey("merch_tacos_2"))
	for _, bad := range []string{"tacos", "merch_", "merch_Tacos", "merch_tacos;drop", "merch-tacos"} {
		assert.ErrorIs(t, inventory.ValidateProductKey(bad), domain.ErrInvalidInput, bad)
	}
}

func TestValidateQuantities_RechazaNegativos(t *testing.T) {
	err := inventory.ValidateQuantities(entity.Quantities{"merch_tacos": -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NoError(t, inventory.ValidateQuantities(entity.Quantities{"merch_tacos": 0}))
}

func TestValidateQuantities_RechazaSobreElMaximo(t *testing.T) {
	assert.NoError(t, inventory.ValidateQuantities(entity.Quantities{"merch_tacos": inventory.MaxQuantity}))
	err := inventory.ValidateQuantities(entity.Quantities{"merch_tacos": inventory.MaxQuantity + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidatePackCount(t *testing.T) {
	assert.NoError(t, inventory.ValidatePackCount(0))
	assert.NoError(t, inventory.ValidatePackCount(inventory.MaxPackCount))
	for _, bad := range []int64{-1, inventory.MaxPackCount + 1, 1 << 62} {
		assert.ErrorIs(t, inventory.ValidatePackCount(bad), domain.ErrInvalidInput, bad)
	}
}
