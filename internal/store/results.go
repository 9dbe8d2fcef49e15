package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"moVRP/internal/bench"
	"moVRP/internal/obs"
)

// Results persists benchmark runs, their fronts and per-group summaries.
type Results struct {
	DB *sql.DB
}

func NewResults(db *sql.DB) *Results {
	return &Results{DB: db}
}

// SaveRuns stores runs and every front member in one transaction.
func (s *Results) SaveRuns(ctx context.Context, batchID uuid.UUID, runs []bench.Run) (err error) {
	defer obs.Time(ctx, "store.SaveRuns")(&err)

	if s.DB == nil {
		return errors.New("save runs: db is nil")
	}
	if len(runs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save runs: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO runs (run_id, batch_id, algo, params, instance, seed, evaluations, generations, duration_ms, front_size, warning)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (run_id) DO NOTHING;
	`)
	if err != nil {
		return fmt.Errorf("save runs: db prepare: %w", err)
	}
	defer runStmt.Close()

	frontStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO front_solutions (run_id, position, total_distance, route_balance, routes)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (run_id, position) DO NOTHING;
	`)
	if err != nil {
		return fmt.Errorf("save runs: db prepare front: %w", err)
	}
	defer frontStmt.Close()

	for _, r := range runs {
		res := r.Result
		if _, err := runStmt.ExecContext(ctx,
			r.ID, batchID, r.Algo, r.Params, r.Instance, r.Seed,
			res.Evaluations, res.Iterations,
			float64(res.Duration.Microseconds())/1000.0,
			len(res.Front), warningText(res.Warning),
		); err != nil {
			return fmt.Errorf("save runs run=%s: %w", r.ID, err)
		}

		for i, sol := range res.Front {
			routes, err := json.Marshal(sol.Routes)
			if err != nil {
				return fmt.Errorf("save runs run=%s: encode routes: %w", r.ID, err)
			}
			if _, err := frontStmt.ExecContext(ctx, r.ID, i, sol.TotalDistance, sol.RouteBalance, string(routes)); err != nil {
				return fmt.Errorf("save runs run=%s position=%d: %w", r.ID, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save runs commit: %w", err)
	}
	return nil
}

// SaveSummaries upserts one row per record. Non-finite IGD values are stored as -1.
func (s *Results) SaveSummaries(ctx context.Context, batchID uuid.UUID, records []bench.Record) (err error) {
	defer obs.Time(ctx, "store.SaveSummaries")(&err)

	if s.DB == nil {
		return errors.New("save summaries: db is nil")
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save summaries: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO summaries (batch_id, algo, params, instance, runs, time_mean_ms, evaluations_mean, front_size_mean, hv_mean, hv_std, igd_mean, igd_std)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (batch_id, algo, params, instance) DO UPDATE
	SET runs = EXCLUDED.runs,
		time_mean_ms = EXCLUDED.time_mean_ms,
		evaluations_mean = EXCLUDED.evaluations_mean,
		front_size_mean = EXCLUDED.front_size_mean,
		hv_mean = EXCLUDED.hv_mean,
		hv_std = EXCLUDED.hv_std,
		igd_mean = EXCLUDED.igd_mean,
		igd_std = EXCLUDED.igd_std;
	`)
	if err != nil {
		return fmt.Errorf("save summaries: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			batchID, r.Algo, r.Params, r.Instance, r.Runs,
			r.TimeMeanMs, r.EvaluationsMean, r.FrontSizeMean,
			r.HVMean, r.HVStd, finite(r.IGDMean), finite(r.IGDStd),
		); err != nil {
			return fmt.Errorf("save summaries algo=%q instance=%q: %w", r.Algo, r.Instance, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save summaries commit: %w", err)
	}
	return nil
}

func warningText(err error) sql.NullString {
	if err == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: err.Error(), Valid: true}
}

func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return -1
	}
	return v
}
