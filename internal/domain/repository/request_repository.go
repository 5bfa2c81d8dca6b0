package repository

import (
	"context"

	"github.com/kossodo/merch-api/internal/domain/entity"
)

// RequestFilter filtros opcionales para listar solicitudes.
type RequestFilter struct {
	Status string
	ID     *int64
}

// RequestRepository define el puerto de persistencia para solicitudes.
type RequestRepository interface {
	Create(ctx context.Context, req *entity.Request) error
	GetByID(ctx context.Context, id int64) (*entity.Request, error)
	// GetForUpdate obtiene la solicitud y bloquea la fila (SELECT FOR UPDATE). Solo dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]*entity.Request, error)
	MarkConfirmed(ctx context.Context, id int64) error
}
