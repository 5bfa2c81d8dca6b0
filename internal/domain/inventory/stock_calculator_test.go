package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/inventory"
)

func TestComputeStock_RestaConfirmado(t *testing.T) {
	stock := inventory.ComputeStock(
		[]string{"merch_tacos"},
		entity.Quantities{"merch_tacos": 20},
		entity.Quantities{"merch_tacos": 5},
	)
	assert.Equal(t, entity.Quantities{"merch_tacos": 15}, stock)
}

func TestComputeStock_PermiteNegativo(t *testing.T) {
	stock := inventory.ComputeStock(
		[]string{"merch_tacos"},
		entity.Quantities{"merch_tacos": 3},
		entity.Quantities{"merch_tacos": 5},
	)
	assert.Equal(t, int64(-2), stock["merch_tacos"])
}

func TestComputeStock_ClavesSinMovimientoQuedanEnCero(t *testing.T) {
	stock := inventory.ComputeStock(
		[]string{"merch_gorra", "merch_tacos"},
		entity.Quantities{"merch_tacos": 4},
		nil,
	)
	assert.Equal(t, entity.Quantities{"merch_gorra": 0, "merch_tacos": 4}, stock)
}

func TestComputeStock_IgnoraConsumoDeProductoDesconocido(t *testing.T) {
	stock := inventory.ComputeStock(
		[]string{"merch_tacos"},
		entity.Quantities{"merch_tacos": 4},
		entity.Quantities{"merch_lapicero": 9},
	)
	_, ok := stock["merch_lapicero"]
	assert.False(t, ok)
	assert.Equal(t, int64(4), stock["merch_tacos"])
}

func TestComputeStock_Idempotente(t *testing.T) {
	inv := entity.Quantities{"merch_tacos": 20, "merch_gorra": 2}
	conf := entity.Quantities{"merch_tacos": 5}
	first := inventory.ComputeStock([]string{"merch_tacos"}, inv, conf)
	second := inventory.ComputeStock([]string{"merch_tacos"}, inv, conf)
	assert.Equal(t, first, second)
}

func TestMergeKeys_SinDuplicadosYOrdenado(t *testing.T) {
	keys := inventory.MergeKeys([]string{"merch_b", "merch_a"}, []string{"merch_a", "merch_c"})
	assert.Equal(t, []string{"merch_a", "merch_b", "merch_c"}, keys)
}

func TestFillMissing_NoModificaOriginal(t *testing.T) {
	orig := entity.Quantities{"merch_tacos": 5}
	filled := inventory.FillMissing(orig, []string{"merch_tacos", "merch_gorra"})
	assert.Equal(t, entity.Quantities{"merch_tacos": 5, "merch_gorra": 0}, filled)
	assert.Len(t, orig, 1)
}
