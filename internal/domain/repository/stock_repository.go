package repository

import (
	"context"

	"github.com/kossodo/merch-api/internal/domain/entity"
)

// StockRepository persiste la fila de resumen de stock de cada unidad.
type StockRepository interface {
	// Upsert fusiona las cantidades calculadas con las existentes (nunca elimina claves)
	// y devuelve la fila completa resultante.
	Upsert(ctx context.Context, unit entity.BusinessUnit, computed entity.Quantities) (*entity.StockSummary, error)
}
