package submit

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) the postgres sink needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS base_figures (
	title                TEXT PRIMARY KEY,
	base_mobile_postpaid BIGINT NOT NULL CHECK (base_mobile_postpaid > 0),
	base_mobile_prepaid  BIGINT NOT NULL CHECK (base_mobile_prepaid > 0),
	base_fixed           BIGINT NOT NULL CHECK (base_fixed > 0),
	base_consumer        BIGINT NOT NULL CHECK (base_consumer > 0),
	base_enterprise      BIGINT NOT NULL CHECK (base_enterprise > 0),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertSQL = `
INSERT INTO base_figures (
	title, base_mobile_postpaid, base_mobile_prepaid, base_fixed, base_consumer, base_enterprise
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (title) DO UPDATE SET
	base_mobile_postpaid = EXCLUDED.base_mobile_postpaid,
	base_mobile_prepaid  = EXCLUDED.base_mobile_prepaid,
	base_fixed           = EXCLUDED.base_fixed,
	base_consumer        = EXCLUDED.base_consumer,
	base_enterprise      = EXCLUDED.base_enterprise,
	updated_at           = now()`

// Postgres stores records in the base_figures table, one row per market.
type Postgres struct {
	db DBTX
}

// NewPostgres creates a postgres sink over db.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the base_figures table when it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create base_figures: %w", err)
	}
	return nil
}

// Submit inserts the record or replaces the figures already stored for its market.
func (p *Postgres) Submit(ctx context.Context, rec core.Record) error {
	_, err := p.db.Exec(ctx, upsertSQL,
		rec.Title,
		rec.BaseMobilePostpaid,
		rec.BaseMobilePrepaid,
		rec.BaseFixed,
		rec.BaseConsumer,
		rec.BaseEnterprise,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", rec.Title, err)
	}
	return nil
}
