package repository

import (
	"context"

	"github.com/kossodo/merch-api/internal/domain/entity"
)

// ConfirmationRepository libro append-only de confirmaciones.
type ConfirmationRepository interface {
	Create(ctx context.Context, conf *entity.Confirmation) error
	// GetByRequestID devuelve la confirmación de la solicitud o nil si aún no se confirmó.
	GetByRequestID(ctx context.Context, requestID int64) (*entity.Confirmation, error)
	// List devuelve las confirmaciones (de una unidad si unit != ""), más recientes primero.
	List(ctx context.Context, unit entity.BusinessUnit) ([]*entity.Confirmation, error)
	// Totals suma las cantidades confirmadas de la unidad por clave de producto.
	Totals(ctx context.Context, unit entity.BusinessUnit) (entity.Quantities, error)
}
