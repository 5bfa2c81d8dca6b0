package postgres

import (
	"context"
	"fmt"

	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo libro de entradas de inventario sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta la fila y completa ID y CreatedAt.
func (r *InventoryRepo) Create(ctx context.Context, entry *entity.InventoryEntry) error {
	query := `
		INSERT INTO merch_inventory (business_unit, responsible, observations, quantities)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		entry.BusinessUnit.String(), entry.Responsible, entry.Observations, nonNil(entry.Quantities),
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// ListByUnit devuelve todas las filas de la unidad, más recientes primero.
func (r *InventoryRepo) ListByUnit(ctx context.Context, unit entity.BusinessUnit) ([]*entity.InventoryEntry, error) {
	query := `
		SELECT id, business_unit, responsible, observations, quantities, created_at
		FROM merch_inventory WHERE business_unit = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, unit.String())
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryEntry
	for rows.Next() {
		var e entity.InventoryEntry
		var bu string
		if err := rows.Scan(&e.ID, &bu, &e.Responsible, &e.Observations, &e.Quantities, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		e.BusinessUnit = entity.BusinessUnit(bu)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Totals suma por clave todas las filas de la unidad. Las claves ausentes en una fila cuentan 0.
func (r *InventoryRepo) Totals(ctx context.Context, unit entity.BusinessUnit) (entity.Quantities, error) {
	const query = `
		SELECT kv.key, COALESCE(SUM(kv.value::bigint), 0)::bigint
		FROM merch_inventory i
		CROSS JOIN LATERAL jsonb_each_text(i.quantities) AS kv
		WHERE i.business_unit = $1
		GROUP BY kv.key`
	return queryTotals(ctx, r.q, "inventory totals", query, unit.String())
}
