package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossodo/merch-api/internal/application/inventory"
	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/infrastructure/memory"
)

func seedStock(t *testing.T, store *memory.Store, unit entity.BusinessUnit, inv, confirmed entity.Quantities) {
	t.Helper()
	ctx := context.Background()
	for k := range inv {
		require.NoError(t, store.Products().Ensure(ctx, &entity.Product{BusinessUnit: unit, Key: k, Name: k}))
	}
	require.NoError(t, store.Inventory().Create(ctx, &entity.InventoryEntry{BusinessUnit: unit, Quantities: inv}))
	if len(confirmed) == 0 {
		return
	}
	req := &entity.Request{BusinessUnit: unit, Status: entity.RequestStatusPending}
	require.NoError(t, store.Requests().Create(ctx, req))
	require.NoError(t, store.Confirmations().Create(ctx, &entity.Confirmation{
		RequestID: req.ID, BusinessUnit: unit, Confirmer: "x", Quantities: confirmed,
	}))
}

func newStockUC(store *memory.Store) *inventory.StockUseCase {
	return inventory.NewStockUseCase(store.Inventory(), store.Confirmations(), store.Products(), store.Stock())
}

func TestStock_InventarioMenosConfirmadoEsIdempotente(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, entity.UnitKossodo, entity.Quantities{"merch_tacos": 20}, entity.Quantities{"merch_tacos": 5})
	uc := newStockUC(store)

	first, err := uc.Compute(context.Background(), entity.UnitKossodo)
	require.NoError(t, err)
	assert.Equal(t, int64(15), first.Quantities["merch_tacos"])
	assert.Equal(t, entity.StockSummaryID, first.ID)
	assert.Equal(t, "kossodo", first.Group)

	second, err := uc.Compute(context.Background(), entity.UnitKossodo)
	require.NoError(t, err)
	assert.Equal(t, first.Quantities, second.Quantities)
}

func TestStock_PuedeSerNegativo(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, entity.UnitKossomet, entity.Quantities{"merch_tacos": 3}, entity.Quantities{"merch_tacos": 5})

	out, err := newStockUC(store).Compute(context.Background(), entity.UnitKossomet)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), out.Quantities["merch_tacos"])
}

func TestStock_NoMezclaUnidades(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, entity.UnitKossodo, entity.Quantities{"merch_tacos": 10}, nil)
	seedStock(t, store, entity.UnitKossomet, entity.Quantities{"merch_tacos": 1}, entity.Quantities{"merch_tacos": 1})

	out, err := newStockUC(store).Compute(context.Background(), entity.UnitKossodo)
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.Quantities["merch_tacos"])
}
