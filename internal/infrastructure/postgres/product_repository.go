package postgres

import (
	"context"
	"fmt"

	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo registro de productos por unidad sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Ensure inserta el producto si no existe. ON CONFLICT DO NOTHING evita la carrera de dos altas simultáneas.
func (r *ProductRepo) Ensure(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO merch_products (business_unit, key, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (business_unit, key) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, product.BusinessUnit.String(), product.Key, product.Name); err != nil {
		return fmt.Errorf("ensure product %s: %w", product.Key, err)
	}
	return nil
}

// ListByUnit lista los productos de la unidad ordenados por clave.
func (r *ProductRepo) ListByUnit(ctx context.Context, unit entity.BusinessUnit) ([]*entity.Product, error) {
	query := `
		SELECT business_unit, key, name, created_at
		FROM merch_products WHERE business_unit = $1 ORDER BY key`
	rows, err := r.q.Query(ctx, query, unit.String())
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var bu string
		if err := rows.Scan(&bu, &p.Key, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.BusinessUnit = entity.BusinessUnit(bu)
		list = append(list, &p)
	}
	return list, rows.Err()
}
