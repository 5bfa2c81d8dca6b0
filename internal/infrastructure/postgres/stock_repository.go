package postgres

import (
	"context"
	"fmt"

	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo fila de resumen de stock por unidad sobre PostgreSQL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Upsert crea la fila si falta y fusiona las cantidades: las claves calculadas se sobrescriben
// y las que ya no aparecen conservan su valor anterior (jsonb ||).
func (r *StockRepo) Upsert(ctx context.Context, unit entity.BusinessUnit, computed entity.Quantities) (*entity.StockSummary, error) {
	query := `
		INSERT INTO merch_stock (business_unit, id, quantities, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (business_unit)
		DO UPDATE SET quantities = merch_stock.quantities || EXCLUDED.quantities, updated_at = now()
		RETURNING id, business_unit, quantities, updated_at`
	var s entity.StockSummary
	var bu string
	err := r.q.QueryRow(ctx, query, unit.String(), entity.StockSummaryID, nonNil(computed)).Scan(
		&s.ID, &bu, &s.Quantities, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert stock: %w", err)
	}
	s.BusinessUnit = entity.BusinessUnit(bu)
	return &s, nil
}
