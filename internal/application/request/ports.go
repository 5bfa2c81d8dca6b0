package request

import (
	"context"

	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la confirmación y el cambio de estado se apliquen juntos o no se apliquen.
type TxRunner interface {
	RunConfirm(ctx context.Context, fn func(
		requestRepo repository.RequestRepository,
		confirmationRepo repository.ConfirmationRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Notifier canal de salida para avisar que se creó una solicitud.
// Submit nunca bloquea ni falla: la notificación es best-effort.
type Notifier interface {
	Submit(req entity.Request)
}

// SheetRenderer genera la hoja imprimible (PDF) de una solicitud.
type SheetRenderer interface {
	RenderRequestSheet(ctx context.Context, req *entity.Request, conf *entity.Confirmation) ([]byte, error)
}
