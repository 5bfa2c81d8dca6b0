package request

import (
	"context"
	"fmt"

	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

// SheetUseCase genera la hoja PDF de una solicitud (con lo confirmado, si ya se confirmó).
type SheetUseCase struct {
	requestRepo      repository.RequestRepository
	confirmationRepo repository.ConfirmationRepository
	renderer         SheetRenderer
}

// NewSheetUseCase construye el caso de uso.
func NewSheetUseCase(
	requestRepo repository.RequestRepository,
	confirmationRepo repository.ConfirmationRepository,
	renderer SheetRenderer,
) *SheetUseCase {
	return &SheetUseCase{requestRepo: requestRepo, confirmationRepo: confirmationRepo, renderer: renderer}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *SheetUseCase) Download(ctx context.Context, id int64) ([]byte, string, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if req == nil {
		return nil, "", fmt.Errorf("%w: solicitud %d", domain.ErrNotFound, id)
	}
	conf, err := uc.confirmationRepo.GetByRequestID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.RenderRequestSheet(ctx, req, conf)
	if err != nil {
		return nil, "", fmt.Errorf("generar hoja de solicitud: %w", err)
	}
	return pdf, fmt.Sprintf("solicitud-%d.pdf", id), nil
}
