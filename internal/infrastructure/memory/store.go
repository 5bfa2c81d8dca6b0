// Package memory implementa los repositorios en memoria. Se usa en tests de casos de uso y de
// la API HTTP; respeta las mismas reglas que PostgreSQL (orden, unicidad, transacción de confirmación).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

type state struct {
	nextInventory, nextRequest, nextConfirmation int64

	products      map[entity.BusinessUnit]map[string]entity.Product
	inventory     []entity.InventoryEntry
	requests      map[int64]entity.Request
	confirmations []entity.Confirmation
	stock         map[entity.BusinessUnit]entity.StockSummary
}

func newState() *state {
	return &state{
		products: map[entity.BusinessUnit]map[string]entity.Product{},
		requests: map[int64]entity.Request{},
		stock:    map[entity.BusinessUnit]entity.StockSummary{},
	}
}

// clone copia profunda para poder descartar una transacción fallida.
func (s *state) clone() *state {
	out := newState()
	out.nextInventory, out.nextRequest, out.nextConfirmation = s.nextInventory, s.nextRequest, s.nextConfirmation
	for u, m := range s.products {
		cp := make(map[string]entity.Product, len(m))
		for k, p := range m {
			cp[k] = p
		}
		out.products[u] = cp
	}
	for _, e := range s.inventory {
		e.Quantities = e.Quantities.Clone()
		out.inventory = append(out.inventory, e)
	}
	for id, r := range s.requests {
		r.Products = r.Products.Clone()
		out.requests[id] = r
	}
	for _, c := range s.confirmations {
		c.Quantities = c.Quantities.Clone()
		out.confirmations = append(out.confirmations, c)
	}
	for u, st := range s.stock {
		st.Quantities = st.Quantities.Clone()
		out.stock[u] = st
	}
	return out
}

// Store agrupa todos los repositorios sobre un mismo estado protegido por un mutex.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time

	// FailConfirmationCreate, si no es nil, hace fallar la inserción de confirmaciones (tests de rollback).
	FailConfirmationCreate error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

func (s *Store) guard(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Inventory repositorio del libro de inventario.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

// Products registro de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Requests repositorio de solicitudes.
func (s *Store) Requests() *RequestRepo { return &RequestRepo{s: s} }

// Confirmations libro de confirmaciones.
func (s *Store) Confirmations() *ConfirmationRepo { return &ConfirmationRepo{s: s} }

// Stock resumen de stock.
func (s *Store) Stock() *StockRepo { return &StockRepo{s: s} }

// RunConfirm ejecuta fn en exclusión mutua; si fn falla el estado vuelve al snapshot previo.
func (s *Store) RunConfirm(ctx context.Context, fn func(
	requestRepo repository.RequestRepository,
	confirmationRepo repository.ConfirmationRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.st.clone()
	err := fn(&RequestRepo{s: s, inTx: true}, &ConfirmationRepo{s: s, inTx: true}, &ProductRepo{s: s, inTx: true})
	if err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// InventoryRepo implementa repository.InventoryRepository.
type InventoryRepo struct {
	s    *Store
	inTx bool
}

// Create inserta la fila y completa ID y CreatedAt.
func (r *InventoryRepo) Create(_ context.Context, entry *entity.InventoryEntry) error {
	defer r.s.guard(r.inTx)()
	r.s.st.nextInventory++
	entry.ID = r.s.st.nextInventory
	entry.CreatedAt = r.s.now()
	cp := *entry
	cp.Quantities = entry.Quantities.Clone()
	r.s.st.inventory = append(r.s.st.inventory, cp)
	return nil
}

// ListByUnit filas de la unidad, más recientes primero.
func (r *InventoryRepo) ListByUnit(_ context.Context, unit entity.BusinessUnit) ([]*entity.InventoryEntry, error) {
	defer r.s.guard(r.inTx)()
	var out []*entity.InventoryEntry
	for _, e := range r.s.st.inventory {
		if e.BusinessUnit != unit {
			continue
		}
		cp := e
		cp.Quantities = e.Quantities.Clone()
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Totals suma por clave.
func (r *InventoryRepo) Totals(_ context.Context, unit entity.BusinessUnit) (entity.Quantities, error) {
	defer r.s.guard(r.inTx)()
	out := entity.Quantities{}
	for _, e := range r.s.st.inventory {
		if e.BusinessUnit != unit {
			continue
		}
		for k, v := range e.Quantities {
			out[k] += v
		}
	}
	return out, nil
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// Ensure registra el producto si no existe.
func (r *ProductRepo) Ensure(_ context.Context, p *entity.Product) error {
	defer r.s.guard(r.inTx)()
	m, ok := r.s.st.products[p.BusinessUnit]
	if !ok {
		m = map[string]entity.Product{}
		r.s.st.products[p.BusinessUnit] = m
	}
	if _, exists := m[p.Key]; exists {
		return nil
	}
	cp := *p
	cp.CreatedAt = r.s.now()
	m[p.Key] = cp
	return nil
}

// ListByUnit productos de la unidad ordenados por clave.
func (r *ProductRepo) ListByUnit(_ context.Context, unit entity.BusinessUnit) ([]*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	m := r.s.st.products[unit]
	out := make([]*entity.Product, 0, len(m))
	for _, p := range m {
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// RequestRepo implementa repository.RequestRepository.
type RequestRepo struct {
	s    *Store
	inTx bool
}

// Create inserta la solicitud y completa ID y CreatedAt.
func (r *RequestRepo) Create(_ context.Context, req *entity.Request) error {
	defer r.s.guard(r.inTx)()
	r.s.st.nextRequest++
	req.ID = r.s.st.nextRequest
	req.CreatedAt = r.s.now()
	cp := *req
	cp.Products = req.Products.Clone()
	r.s.st.requests[req.ID] = cp
	return nil
}

// GetByID devuelve nil si no existe.
func (r *RequestRepo) GetByID(_ context.Context, id int64) (*entity.Request, error) {
	defer r.s.guard(r.inTx)()
	return r.get(id), nil
}

// GetForUpdate equivale a GetByID; el bloqueo lo da RunConfirm.
func (r *RequestRepo) GetForUpdate(_ context.Context, id int64) (*entity.Request, error) {
	defer r.s.guard(r.inTx)()
	return r.get(id), nil
}

func (r *RequestRepo) get(id int64) *entity.Request {
	req, ok := r.s.st.requests[id]
	if !ok {
		return nil
	}
	req.Products = req.Products.Clone()
	return &req
}

// List solicitudes filtradas, más recientes primero.
func (r *RequestRepo) List(_ context.Context, filter repository.RequestFilter) ([]*entity.Request, error) {
	defer r.s.guard(r.inTx)()
	var out []*entity.Request
	for id := range r.s.st.requests {
		req := r.get(id)
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.ID != nil && req.ID != *filter.ID {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// MarkConfirmed pending -> confirmed; cualquier otro estado es conflicto.
func (r *RequestRepo) MarkConfirmed(_ context.Context, id int64) error {
	defer r.s.guard(r.inTx)()
	req, ok := r.s.st.requests[id]
	if !ok {
		return fmt.Errorf("%w: solicitud %d", domain.ErrNotFound, id)
	}
	if !req.IsPending() {
		return fmt.Errorf("%w: la solicitud %d ya está en estado '%s'", domain.ErrConflict, id, req.Status)
	}
	now := r.s.now()
	req.Status = entity.RequestStatusConfirmed
	req.ConfirmedAt = &now
	r.s.st.requests[id] = req
	return nil
}

// ConfirmationRepo implementa repository.ConfirmationRepository.
type ConfirmationRepo struct {
	s    *Store
	inTx bool
}

// Create inserta la confirmación; una segunda para la misma solicitud es conflicto.
func (r *ConfirmationRepo) Create(_ context.Context, conf *entity.Confirmation) error {
	defer r.s.guard(r.inTx)()
	if r.s.FailConfirmationCreate != nil {
		return r.s.FailConfirmationCreate
	}
	for _, c := range r.s.st.confirmations {
		if c.RequestID == conf.RequestID {
			return fmt.Errorf("%w: la solicitud %d ya tiene confirmación", domain.ErrConflict, conf.RequestID)
		}
	}
	r.s.st.nextConfirmation++
	conf.ID = r.s.st.nextConfirmation
	conf.CreatedAt = r.s.now()
	cp := *conf
	cp.Quantities = conf.Quantities.Clone()
	r.s.st.confirmations = append(r.s.st.confirmations, cp)
	return nil
}

// GetByRequestID devuelve nil si la solicitud no tiene confirmación.
func (r *ConfirmationRepo) GetByRequestID(_ context.Context, requestID int64) (*entity.Confirmation, error) {
	defer r.s.guard(r.inTx)()
	for _, c := range r.s.st.confirmations {
		if c.RequestID == requestID {
			c.Quantities = c.Quantities.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// List confirmaciones (de la unidad si unit != ""), más recientes primero.
func (r *ConfirmationRepo) List(_ context.Context, unit entity.BusinessUnit) ([]*entity.Confirmation, error) {
	defer r.s.guard(r.inTx)()
	var out []*entity.Confirmation
	for i := len(r.s.st.confirmations) - 1; i >= 0; i-- {
		c := r.s.st.confirmations[i]
		if unit != "" && c.BusinessUnit != unit {
			continue
		}
		c.Quantities = c.Quantities.Clone()
		out = append(out, &c)
	}
	return out, nil
}

// Totals suma lo confirmado de la unidad.
func (r *ConfirmationRepo) Totals(_ context.Context, unit entity.BusinessUnit) (entity.Quantities, error) {
	defer r.s.guard(r.inTx)()
	out := entity.Quantities{}
	for _, c := range r.s.st.confirmations {
		if c.BusinessUnit != unit {
			continue
		}
		for k, v := range c.Quantities {
			out[k] += v
		}
	}
	return out, nil
}

// StockRepo implementa repository.StockRepository.
type StockRepo struct {
	s    *Store
	inTx bool
}

// Upsert fusiona las cantidades con las guardadas; las claves viejas se conservan.
func (r *StockRepo) Upsert(_ context.Context, unit entity.BusinessUnit, computed entity.Quantities) (*entity.StockSummary, error) {
	defer r.s.guard(r.inTx)()
	row, ok := r.s.st.stock[unit]
	if !ok {
		row = entity.StockSummary{ID: entity.StockSummaryID, BusinessUnit: unit, Quantities: entity.Quantities{}}
	}
	merged := row.Quantities.Clone()
	for k, v := range computed {
		merged[k] = v
	}
	row.Quantities = merged
	row.UpdatedAt = r.s.now()
	r.s.st.stock[unit] = row

	out := row
	out.Quantities = merged.Clone()
	return &out, nil
}

var (
	_ repository.InventoryRepository    = (*InventoryRepo)(nil)
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.RequestRepository      = (*RequestRepo)(nil)
	_ repository.ConfirmationRepository = (*ConfirmationRepo)(nil)
	_ repository.StockRepository        = (*StockRepo)(nil)
)
