package repository

import (
	"context"

	"github.com/kossodo/merch-api/internal/domain/entity"
)

// ProductRepository registro de productos conocidos por unidad.
type ProductRepository interface {
	// Ensure registra el producto si no existe. Idempotente y seguro ante llamadas concurrentes.
	Ensure(ctx context.Context, product *entity.Product) error
	ListByUnit(ctx context.Context, unit entity.BusinessUnit) ([]*entity.Product, error)
}
