package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kossodo/merch-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// scanTotals lee filas (key, total) en un mapa de cantidades.
func scanTotals(rows pgx.Rows, op string) (entity.Quantities, error) {
	defer rows.Close()
	out := entity.Quantities{}
	for rows.Next() {
		var key string
		var total int64
		if err := rows.Scan(&key, &total); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		out[key] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// nonNil evita guardar null en columnas JSONB NOT NULL.
func nonNil(q entity.Quantities) entity.Quantities {
	if q == nil {
		return entity.Quantities{}
	}
	return q
}

// queryTotals ejecuta una consulta de totales por clave.
func queryTotals(ctx context.Context, q Querier, op, query string, args ...any) (entity.Quantities, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanTotals(rows, op)
}
