package request_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/application/request"
	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	domaininv "github.com/kossodo/merch-api/internal/domain/inventory"
	"github.com/kossodo/merch-api/internal/domain/repository"
	"github.com/kossodo/merch-api/internal/infrastructure/memory"
)

type recordingNotifier struct {
	mu  sync.Mutex
	got []entity.Request
}

func (n *recordingNotifier) Submit(req entity.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, req)
}

func newRequestUC() (*request.RequestUseCase, *memory.Store, *recordingNotifier) {
	store := memory.NewStore()
	n := &recordingNotifier{}
	uc := request.NewRequestUseCase(store, store.Requests(), store.Confirmations(), store.Products(), n)
	return uc, store, n
}

func validCreate() dto.CreateRequestRequest {
	return dto.CreateRequestRequest{
		Requester: "Ana",
		Group:     "kossodo",
		TaxID:     "20123456789",
		VisitDate: "2025-03-10",
		PackCount: 3,
		Products:  dto.ProductSelection{"merch_tacos": 2},
	}
}

func TestCreate_GuardaPendienteYNotifica(t *testing.T) {
	ctx := context.Background()
	uc, _, n := newRequestUC()

	id, err := uc.Create(ctx, validCreate())
	require.NoError(t, err)

	got, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, got.Status)
	assert.Equal(t, int64(2), got.Products["merch_tacos"])
	require.Len(t, n.got, 1)
	assert.Equal(t, id, n.got[0].ID)
}

func TestCreate_CamposRequeridos(t *testing.T) {
	uc, _, n := newRequestUC()
	in := validCreate()
	in.TaxID = ""

	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, n.got)
}

func TestCreate_GrupoYPacksInvalidos(t *testing.T) {
	uc, _, _ := newRequestUC()

	in := validCreate()
	in.Group = "acme"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)

	in = validCreate()
	in.PackCount = -1
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_RechazaCantidadesFueraDeRango(t *testing.T) {
	uc, store, n := newRequestUC()

	in := validCreate()
	in.PackCount = 1 << 62
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validCreate()
	in.Products = dto.ProductSelection{"merch_tacos": domaininv.MaxQuantity + 1}
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := store.Requests().List(context.Background(), repository.RequestFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, n.got)
}

func TestConfirm_TotalQueDesbordaNoSeGuarda(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRequestUC()

	// Fila heredada que no pasó por Create.
	req := &entity.Request{
		Requester:    "Ana",
		BusinessUnit: entity.UnitKossodo,
		TaxID:        "20123456789",
		VisitDate:    "2025-03-10",
		PackCount:    1 << 62,
		Products:     entity.Quantities{"merch_tacos": 3},
		Status:       entity.RequestStatusPending,
	}
	require.NoError(t, store.Requests().Create(ctx, req))

	_, err := uc.Confirm(ctx, req.ID, dto.ConfirmRequestRequest{Confirmer: "Marta"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, got.Status)

	list, err := uc.ListConfirmations(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConfirm_TotalSobreElMaximoNoSeGuarda(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRequestUC()

	req := &entity.Request{
		Requester:    "Ana",
		BusinessUnit: entity.UnitKossodo,
		TaxID:        "20123456789",
		VisitDate:    "2025-03-10",
		PackCount:    domaininv.MaxPackCount,
		Products:     entity.Quantities{"merch_tacos": domaininv.MaxQuantity},
		Status:       entity.RequestStatusPending,
	}
	require.NoError(t, store.Requests().Create(ctx, req))

	_, err := uc.Confirm(ctx, req.ID, dto.ConfirmRequestRequest{Confirmer: "Marta"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Confirm(ctx, req.ID, dto.ConfirmRequestRequest{Confirmer: "Marta", Quantities: entity.Quantities{"merch_tacos": 5}})
	require.NoError(t, err, "con cantidades explícitas sí se confirma")
}

func TestConfirm_SinCantidadesConfirmaLoPedido(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newRequestUC()
	id, err := uc.Create(ctx, validCreate())
	require.NoError(t, err)

	conf, err := uc.Confirm(ctx, id, dto.ConfirmRequestRequest{Confirmer: "Marta"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), conf.Quantities["merch_tacos"], "3 packs × 2 unidades")

	got, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusConfirmed, got.Status)
	assert.NotNil(t, got.ConfirmedAt)
}

func TestConfirm_DosVecesEsConflicto(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newRequestUC()
	id, err := uc.Create(ctx, validCreate())
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, id, dto.ConfirmRequestRequest{Confirmer: "Marta", Quantities: entity.Quantities{"merch_tacos": 4}})
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, id, dto.ConfirmRequestRequest{Confirmer: "Marta"})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "confirmed")

	list, err := uc.ListConfirmations(ctx, "kossodo")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(4), list[0].Quantities["merch_tacos"])
}

func TestConfirm_Concurrente(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newRequestUC()
	id, err := uc.Create(ctx, validCreate())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Confirm(ctx, id, dto.ConfirmRequestRequest{Confirmer: "x"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestConfirm_NoExiste(t *testing.T) {
	uc, _, _ := newRequestUC()
	_, err := uc.Confirm(context.Background(), 99, dto.ConfirmRequestRequest{Confirmer: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_SinConfirmador(t *testing.T) {
	uc, _, _ := newRequestUC()
	_, err := uc.Confirm(context.Background(), 1, dto.ConfirmRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_FalloDejaSolicitudPendiente(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRequestUC()
	id, err := uc.Create(ctx, validCreate())
	require.NoError(t, err)

	store.FailConfirmationCreate = errors.New("disco lleno")
	_, err = uc.Confirm(ctx, id, dto.ConfirmRequestRequest{Confirmer: "x", Quantities: entity.Quantities{"merch_nuevo": 1}})
	require.Error(t, err)

	got, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, got.Status)

	products, err := store.Products().ListByUnit(ctx, entity.UnitKossodo)
	require.NoError(t, err)
	for _, p := range products {
		assert.NotEqual(t, "merch_nuevo", p.Key, "el registro del producto también se revierte")
	}
}

func TestList_Filtros(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newRequestUC()
	first, err := uc.Create(ctx, validCreate())
	require.NoError(t, err)
	second, err := uc.Create(ctx, validCreate())
	require.NoError(t, err)
	_, err = uc.Confirm(ctx, first, dto.ConfirmRequestRequest{Confirmer: "x"})
	require.NoError(t, err)

	all, err := uc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].ID, "más recientes primero")

	pending, err := uc.List(ctx, "pending", "")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second, pending[0].ID)

	_, err = uc.List(ctx, "rejected", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(ctx, "", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
