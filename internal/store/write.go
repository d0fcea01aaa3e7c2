package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/posixtime/internal/config"
	"github.com/roach88/posixtime/internal/harness"
)

// RecordRun stores a vector file result and its outcomes in one transaction.
// The run's seq is one past the highest recorded seq.
func (s *Store) RecordRun(ctx context.Context, vectorFile string, cfg config.Config, result *harness.Result) (Run, error) {
	if result == nil {
		return Run{}, fmt.Errorf("record run: nil result")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}

	run := Run{
		ID:         s.newID(),
		Seq:        seq,
		VectorFile: vectorFile,
		Name:       result.Name,
		TickRateHz: cfg.TickRateHz,
		TickWidth:  cfg.TickWidth,
		Pass:       result.Pass,
		Total:      len(result.Outcomes),
		Failed:     result.Failed(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, vector_file, name, tick_rate_hz, tick_width, pass, total, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.VectorFile,
		run.Name,
		int64(run.TickRateHz),
		int(run.TickWidth),
		boolToInt(run.Pass),
		run.Total,
		run.Failed,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: insert run: %w", err)
	}

	for _, o := range result.Outcomes {
		if err := insertOutcome(ctx, tx, run.ID, o); err != nil {
			return Run{}, fmt.Errorf("record run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}

	s.logger.Debug("run recorded", "id", run.ID, "seq", run.Seq, "name", run.Name, "pass", run.Pass)
	return run, nil
}

func insertOutcome(ctx context.Context, tx *sql.Tx, runID string, o harness.Outcome) error {
	actual, err := harness.MarshalCanonical(o.Actual.CanonicalMap())
	if err != nil {
		return fmt.Errorf("outcome %q: marshal actual: %w", o.Name, err)
	}

	mismatches := o.Mismatches
	if mismatches == nil {
		mismatches = []string{}
	}
	mismatchJSON, err := json.Marshal(mismatches)
	if err != nil {
		return fmt.Errorf("outcome %q: marshal mismatches: %w", o.Name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO outcomes
		(run_id, idx, case_name, op, pass, actual, mismatches)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		o.Index,
		o.Name,
		o.Op,
		boolToInt(o.Pass),
		string(actual),
		string(mismatchJSON),
	)
	if err != nil {
		return fmt.Errorf("outcome %q: insert: %w", o.Name, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
