package postgres

import (
	"context"
	"fmt"

	"github.com/kossodo/merch-api/pkg/logger"
)

// schemaStatements DDL idempotente de todas las tablas. Se ejecuta en orden al arrancar.
// Las cantidades por producto viven en columnas JSONB {"merch_xxx": n}: no hay ALTER TABLE en runtime.
var schemaStatements = []struct {
	name string
	sql  string
}{
	{"merch_products", `
		CREATE TABLE IF NOT EXISTS merch_products (
			business_unit TEXT        NOT NULL,
			key           TEXT        NOT NULL,
			name          TEXT        NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (business_unit, key)
		)`},
	{"merch_inventory", `
		CREATE TABLE IF NOT EXISTS merch_inventory (
			id            BIGSERIAL   PRIMARY KEY,
			business_unit TEXT        NOT NULL,
			responsible   TEXT        NOT NULL DEFAULT '',
			observations  TEXT        NOT NULL DEFAULT '',
			quantities    JSONB       NOT NULL DEFAULT '{}'::jsonb,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{"merch_inventory_unit_idx", `
		CREATE INDEX IF NOT EXISTS merch_inventory_unit_idx
			ON merch_inventory (business_unit, created_at DESC)`},
	{"merch_requests", `
		CREATE TABLE IF NOT EXISTS merch_requests (
			id            BIGSERIAL   PRIMARY KEY,
			requester     TEXT        NOT NULL,
			business_unit TEXT        NOT NULL,
			tax_id        TEXT        NOT NULL,
			visit_date    TEXT        NOT NULL,
			pack_count    BIGINT      NOT NULL DEFAULT 0,
			products      JSONB       NOT NULL DEFAULT '{}'::jsonb,
			catalogs      TEXT        NOT NULL DEFAULT '',
			status        TEXT        NOT NULL DEFAULT 'pending',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			confirmed_at  TIMESTAMPTZ
		)`},
	{"merch_confirmations", `
		CREATE TABLE IF NOT EXISTS merch_confirmations (
			id            BIGSERIAL   PRIMARY KEY,
			request_id    BIGINT      NOT NULL UNIQUE REFERENCES merch_requests (id),
			business_unit TEXT        NOT NULL,
			confirmer     TEXT        NOT NULL,
			observations  TEXT        NOT NULL DEFAULT '',
			quantities    JSONB       NOT NULL DEFAULT '{}'::jsonb,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
	{"merch_stock", `
		CREATE TABLE IF NOT EXISTS merch_stock (
			business_unit TEXT        PRIMARY KEY,
			id            INT         NOT NULL DEFAULT 1,
			quantities    JSONB       NOT NULL DEFAULT '{}'::jsonb,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`},
}

// Bootstrap crea las tablas que falten. Es idempotente y no hace rollback:
// si una sentencia falla, registra el error y lo devuelve; las ya creadas quedan.
func Bootstrap(ctx context.Context, q Querier, log *logger.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt.sql); err != nil {
			log.Warn().Err(err).Str("objeto", stmt.name).Msg("no se pudo crear el esquema")
			return fmt.Errorf("bootstrap %s: %w", stmt.name, err)
		}
		log.Debug().Str("objeto", stmt.name).Msg("esquema verificado")
	}
	log.Info().Int("objetos", len(schemaStatements)).Msg("esquema listo")
	return nil
}
