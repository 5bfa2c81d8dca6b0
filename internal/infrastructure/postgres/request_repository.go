package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo solicitudes sobre PostgreSQL (usable con pool o tx).
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

const requestColumns = `id, requester, business_unit, tax_id, visit_date, pack_count, products, catalogs, status, created_at, confirmed_at`

// Create inserta la solicitud y completa ID y CreatedAt.
func (r *RequestRepo) Create(ctx context.Context, req *entity.Request) error {
	query := `
		INSERT INTO merch_requests (requester, business_unit, tax_id, visit_date, pack_count, products, catalogs, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		req.Requester, req.BusinessUnit.String(), req.TaxID, req.VisitDate,
		req.PackCount, nonNil(req.Products), req.Catalogs, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID; nil si no existe.
func (r *RequestRepo) GetByID(ctx context.Context, id int64) (*entity.Request, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM merch_requests WHERE id = $1`, id)
}

// GetForUpdate obtiene la solicitud y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *RequestRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Request, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM merch_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *RequestRepo) getOne(ctx context.Context, query string, id int64) (*entity.Request, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// List lista solicitudes más recientes primero, con filtros opcionales.
func (r *RequestRepo) List(ctx context.Context, filter repository.RequestFilter) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM merch_requests WHERE 1=1`
	var args []any
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.ID != nil {
		query += fmt.Sprintf(" AND id = $%d", pos)
		args = append(args, *filter.ID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// MarkConfirmed cambia el estado a confirmed solo si sigue pending.
func (r *RequestRepo) MarkConfirmed(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE merch_requests SET status = $2, confirmed_at = now()
		WHERE id = $1 AND status = $3`,
		id, entity.RequestStatusConfirmed, entity.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("confirm request: %w", err)
	}
	if cmd.RowsAffected() != 1 {
		return fmt.Errorf("confirm request %d: %d filas actualizadas", id, cmd.RowsAffected())
	}
	return nil
}

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var req entity.Request
	var bu string
	if err := row.Scan(
		&req.ID, &req.Requester, &bu, &req.TaxID, &req.VisitDate, &req.PackCount,
		&req.Products, &req.Catalogs, &req.Status, &req.CreatedAt, &req.ConfirmedAt,
	); err != nil {
		return nil, err
	}
	req.BusinessUnit = entity.BusinessUnit(bu)
	return &req, nil
}
