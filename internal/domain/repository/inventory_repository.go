package repository

import (
	"context"

	"github.com/kossodo/merch-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para el libro de entradas de inventario.
type InventoryRepository interface {
	Create(ctx context.Context, entry *entity.InventoryEntry) error
	// ListByUnit devuelve todas las filas de la unidad, más recientes primero.
	ListByUnit(ctx context.Context, unit entity.BusinessUnit) ([]*entity.InventoryEntry, error)
	// Totals suma por clave de producto todas las filas de la unidad.
	Totals(ctx context.Context, unit entity.BusinessUnit) (entity.Quantities, error)
}
