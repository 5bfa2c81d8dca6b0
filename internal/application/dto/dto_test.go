package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/domain"
)

func TestProductSelection_ListaYObjeto(t *testing.T) {
	var fromList dto.CreateRequestRequest
	require.NoError(t, json.Unmarshal([]byte(`{"productos":["merch_tacos"," merch_gorra ",""]}`), &fromList))
	assert.Equal(t, dto.ProductSelection{"merch_tacos": 1, "merch_gorra": 1}, fromList.Products)

	var fromMap dto.CreateRequestRequest
	require.NoError(t, json.Unmarshal([]byte(`{"productos":{"merch_tacos":"3"},"cantidad_packs":"2"}`), &fromMap))
	assert.Equal(t, dto.ProductSelection{"merch_tacos": 3}, fromMap.Products)
	assert.Equal(t, dto.Count(2), fromMap.PackCount)

	var bad dto.CreateRequestRequest
	err := json.Unmarshal([]byte(`{"productos":"merch_tacos"}`), &bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppendInventoryRequest_ListaBlanca(t *testing.T) {
	var in dto.AppendInventoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"responsable":" Ana ","observaciones":null,"merch_tacos":5}`), &in))
	assert.Equal(t, "Ana", in.Responsible)
	assert.Equal(t, int64(5), in.Quantities["merch_tacos"])

	err := json.Unmarshal([]byte(`{"id":1}`), &in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirmRequestRequest_CombinaProductosYClavesRaiz(t *testing.T) {
	var in dto.ConfirmRequestRequest
	require.NoError(t, json.Unmarshal([]byte(`{"confirmado_por":"Marta","productos":{"merch_tacos":2},"merch_gorra":1}`), &in))
	assert.Equal(t, "Marta", in.Confirmer)
	assert.Equal(t, int64(2), in.Quantities["merch_tacos"])
	assert.Equal(t, int64(1), in.Quantities["merch_gorra"])
}

func TestConfirmRequestRequest_RechazaListaDeProductos(t *testing.T) {
	var in dto.ConfirmRequestRequest
	err := json.Unmarshal([]byte(`{"confirmado_por":"Marta","productos":["merch_tacos"]}`), &in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, json.Unmarshal([]byte(`{"confirmado_por":"Marta","productos":null}`), &in))
	assert.Empty(t, in.Quantities)
}

func TestCount_FueraDeRango(t *testing.T) {
	var c dto.Count
	for _, raw := range []string{`1e19`, `-1e19`, `"1e19"`, `9223372036854775808`, `9.3e18`} {
		assert.ErrorIs(t, json.Unmarshal([]byte(raw), &c), domain.ErrInvalidInput, raw)
	}
	require.NoError(t, json.Unmarshal([]byte(`1e3`), &c))
	assert.Equal(t, dto.Count(1000), c)

	var in dto.AppendInventoryRequest
	err := json.Unmarshal([]byte(`{"merch_tacos":1e19}`), &in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fuera de rango")
}

func TestCount_RechazaDecimales(t *testing.T) {
	var c dto.Count
	assert.ErrorIs(t, json.Unmarshal([]byte(`2.5`), &c), domain.ErrInvalidInput)
	require.NoError(t, json.Unmarshal([]byte(`4.0`), &c))
	assert.Equal(t, dto.Count(4), c)
}

func TestStockResponse_FormaPlana(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	raw, err := json.Marshal(dto.StockResponse{ID: 1, Group: "kossodo", Quantities: map[string]int64{"merch_tacos": -2}, UpdatedAt: ts})
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.EqualValues(t, -2, flat["merch_tacos"])
	assert.Equal(t, "kossodo", flat["grupo"])
	assert.Equal(t, "2025-01-02T03:04:05Z", flat["timestamp"])
}
