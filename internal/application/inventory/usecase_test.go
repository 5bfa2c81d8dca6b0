package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/application/inventory"
	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/infrastructure/memory"
)

func newInventoryUC() (*inventory.InventoryUseCase, *memory.Store) {
	store := memory.NewStore()
	return inventory.NewInventoryUseCase(store.Inventory(), store.Products()), store
}

func TestAppend_ListaConCerosParaProductosNoMencionados(t *testing.T) {
	ctx := context.Background()
	uc, _ := newInventoryUC()

	_, err := uc.Append(ctx, entity.UnitKossodo, dto.AppendInventoryRequest{
		Responsible: "Ana",
		Quantities:  entity.Quantities{"merch_gorra": 2},
	})
	require.NoError(t, err)
	id, err := uc.Append(ctx, entity.UnitKossodo, dto.AppendInventoryRequest{
		Responsible: "Luis",
		Quantities:  entity.Quantities{"merch_tacos": 5},
	})
	require.NoError(t, err)

	rows, err := uc.List(ctx, entity.UnitKossodo)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, id, rows[0].ID, "la fila más reciente va primero")
	assert.Equal(t, int64(5), rows[0].Quantities["merch_tacos"])
	assert.Equal(t, int64(0), rows[0].Quantities["merch_gorra"])
	assert.Equal(t, int64(0), rows[1].Quantities["merch_tacos"])
}

func TestAppend_UnidadesIndependientes(t *testing.T) {
	ctx := context.Background()
	uc, _ := newInventoryUC()

	_, err := uc.Append(ctx, entity.UnitKossomet, dto.AppendInventoryRequest{Quantities: entity.Quantities{"merch_tacos": 1}})
	require.NoError(t, err)

	rows, err := uc.List(ctx, entity.UnitKossodo)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAppend_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _ := newInventoryUC()

	_, err := uc.Append(ctx, entity.UnitKossodo, dto.AppendInventoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Append(ctx, entity.UnitKossodo, dto.AppendInventoryRequest{Quantities: entity.Quantities{"merch_tacos": -1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Append(ctx, entity.UnitKossodo, dto.AppendInventoryRequest{Quantities: entity.Quantities{"merch_Tacos; DROP": 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Append(ctx, entity.UnitKossodo, dto.AppendInventoryRequest{Quantities: entity.Quantities{"merch_tacos": 1 << 62}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewProduct_DosVecesNoFalla(t *testing.T) {
	ctx := context.Background()
	uc, _ := newInventoryUC()
	in := dto.NewProductRequest{Group: "kossodo", Name: "Polo Azúl", Quantity: 3}

	_, err := uc.NewProduct(ctx, in)
	require.NoError(t, err)
	_, err = uc.NewProduct(ctx, in)
	require.NoError(t, err)

	products, err := uc.ListProducts(ctx, entity.UnitKossodo)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "merch_polo_azul", products[0].Column)
	assert.Equal(t, "Polo Azúl", products[0].Name)

	rows, err := uc.List(ctx, entity.UnitKossodo)
	require.NoError(t, err)
	require.Len(t, rows, 2, "cada alta inserta su fila semilla")
	assert.Equal(t, int64(3), rows[0].Quantities["merch_polo_azul"])
}

func TestNewProduct_GrupoInvalido(t *testing.T) {
	uc, _ := newInventoryUC()
	_, err := uc.NewProduct(context.Background(), dto.NewProductRequest{Group: "otro", Column: "merch_x"})
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
}

func TestNewProduct_CantidadFueraDeRango(t *testing.T) {
	uc, _ := newInventoryUC()
	for _, q := range []dto.Count{-1, 1 << 62} {
		_, err := uc.NewProduct(context.Background(), dto.NewProductRequest{Group: "kossodo", Column: "merch_x", Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, q)
	}
}

func TestNewProduct_ColumnaInvalida(t *testing.T) {
	uc, _ := newInventoryUC()
	_, err := uc.NewProduct(context.Background(), dto.NewProductRequest{Group: "kossodo", Column: "tacos"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
