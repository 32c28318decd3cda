package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema statements are idempotent; Bootstrap runs at startup
var schema = []string{
	`CREATE TABLE IF NOT EXISTS review_rules (
		rule_id        TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		category       TEXT NOT NULL,
		severity       TEXT NOT NULL,
		check_spec     JSONB NOT NULL,
		platform       TEXT NOT NULL,
		is_active      BOOLEAN NOT NULL DEFAULT TRUE,
		built_in       BOOLEAN NOT NULL DEFAULT FALSE,
		recommendation TEXT NOT NULL DEFAULT '',
		impact         TEXT NOT NULL DEFAULT '',
		version        INTEGER NOT NULL DEFAULT 1,
		tenant_id      TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_rules_platform ON review_rules (platform)`,
	`CREATE INDEX IF NOT EXISTS idx_review_rules_tenant ON review_rules (tenant_id)`,
	`CREATE TABLE IF NOT EXISTS workflow_structures (
		workflow_id TEXT PRIMARY KEY,
		platform    TEXT NOT NULL,
		payload     JSONB NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Bootstrap creates the engine's tables if they do not exist
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
