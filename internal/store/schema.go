package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id UUID PRIMARY KEY,
		batch_id UUID NOT NULL,
		algo TEXT NOT NULL,
		params TEXT NOT NULL,
		instance TEXT NOT NULL,
		seed BIGINT NOT NULL,
		evaluations INTEGER NOT NULL,
		generations INTEGER NOT NULL,
		duration_ms DOUBLE PRECISION NOT NULL,
		front_size INTEGER NOT NULL,
		warning TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createFrontQuery := `
	CREATE TABLE IF NOT EXISTS front_solutions (
		run_id UUID NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		total_distance DOUBLE PRECISION NOT NULL,
		route_balance DOUBLE PRECISION NOT NULL,
		routes JSONB NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	`

	createSummaryQuery := `
	CREATE TABLE IF NOT EXISTS summaries (
		batch_id UUID NOT NULL,
		algo TEXT NOT NULL,
		params TEXT NOT NULL,
		instance TEXT NOT NULL,
		runs INTEGER NOT NULL,
		time_mean_ms DOUBLE PRECISION NOT NULL,
		evaluations_mean DOUBLE PRECISION NOT NULL,
		front_size_mean DOUBLE PRECISION NOT NULL,
		hv_mean DOUBLE PRECISION NOT NULL,
		hv_std DOUBLE PRECISION NOT NULL,
		igd_mean DOUBLE PRECISION NOT NULL,
		igd_std DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (batch_id, algo, params, instance)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_runs_batch_instance
	ON runs(batch_id, instance);
	`

	for _, q := range []string{createRunsQuery, createFrontQuery, createSummaryQuery, createIndexQuery} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("init schema: exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}
