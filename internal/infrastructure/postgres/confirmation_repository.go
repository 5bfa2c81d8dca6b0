package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

var _ repository.ConfirmationRepository = (*ConfirmationRepo)(nil)

// ConfirmationRepo libro de confirmaciones sobre PostgreSQL (usable con pool o tx).
type ConfirmationRepo struct {
	q Querier
}

// NewConfirmationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConfirmationRepository(q Querier) *ConfirmationRepo {
	return &ConfirmationRepo{q: q}
}

const confirmationColumns = `id, request_id, business_unit, confirmer, observations, quantities, created_at`

// Create inserta la confirmación. UNIQUE(request_id) impide confirmar dos veces la misma solicitud.
func (r *ConfirmationRepo) Create(ctx context.Context, conf *entity.Confirmation) error {
	query := `
		INSERT INTO merch_confirmations (request_id, business_unit, confirmer, observations, quantities)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		conf.RequestID, conf.BusinessUnit.String(), conf.Confirmer, conf.Observations, nonNil(conf.Quantities),
	).Scan(&conf.ID, &conf.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la solicitud %d ya fue confirmada", domain.ErrConflict, conf.RequestID)
		}
		return fmt.Errorf("insert confirmation: %w", err)
	}
	return nil
}

// GetByRequestID obtiene la confirmación de una solicitud; nil si no existe.
func (r *ConfirmationRepo) GetByRequestID(ctx context.Context, requestID int64) (*entity.Confirmation, error) {
	query := `SELECT ` + confirmationColumns + ` FROM merch_confirmations WHERE request_id = $1`
	c, err := scanConfirmation(r.q.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get confirmation: %w", err)
	}
	return c, nil
}

// List devuelve confirmaciones más recientes primero; unit vacío = todas.
func (r *ConfirmationRepo) List(ctx context.Context, unit entity.BusinessUnit) ([]*entity.Confirmation, error) {
	query := `SELECT ` + confirmationColumns + ` FROM merch_confirmations`
	var args []any
	if unit != "" {
		query += ` WHERE business_unit = $1`
		args = append(args, unit.String())
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list confirmations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Confirmation
	for rows.Next() {
		c, err := scanConfirmation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan confirmation: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Totals suma las cantidades confirmadas de la unidad por clave.
func (r *ConfirmationRepo) Totals(ctx context.Context, unit entity.BusinessUnit) (entity.Quantities, error) {
	const query = `
		SELECT kv.key, COALESCE(SUM(kv.value::bigint), 0)::bigint
		FROM merch_confirmations c
		CROSS JOIN LATERAL jsonb_each_text(c.quantities) AS kv
		WHERE c.business_unit = $1
		GROUP BY kv.key`
	return queryTotals(ctx, r.q, "confirmation totals", query, unit.String())
}

func scanConfirmation(row pgx.Row) (*entity.Confirmation, error) {
	var c entity.Confirmation
	var bu string
	if err := row.Scan(&c.ID, &c.RequestID, &bu, &c.Confirmer, &c.Observations, &c.Quantities, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.BusinessUnit = entity.BusinessUnit(bu)
	return &c, nil
}
