package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Run is a recorded vector file evaluation.
type Run struct {
	ID         string `json:"id"`
	Seq        int64  `json:"seq"`
	VectorFile string `json:"vector_file"`
	Name       string `json:"name"`
	TickRateHz uint32 `json:"tick_rate_hz"`
	TickWidth  uint8  `json:"tick_width"`
	Pass       bool   `json:"pass"`
	Total      int    `json:"total"`
	Failed     int    `json:"failed"`
}

// OutcomeRecord is a recorded case outcome.
type OutcomeRecord struct {
	RunID      string   `json:"run_id"`
	Index      int      `json:"index"`
	CaseName   string   `json:"case_name"`
	Op         string   `json:"op"`
	Pass       bool     `json:"pass"`
	Actual     string   `json:"actual"`
	Mismatches []string `json:"mismatches"`
}

// ListFilter narrows ListRuns.
type ListFilter struct {
	// Name limits results to runs of one vector file name.
	Name string

	// Limit caps the number of runs returned. Zero means no limit.
	Limit int
}

// ListRuns returns recorded runs, newest first.
// Ordering is deterministic: ORDER BY seq DESC, id COLLATE BINARY ASC.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListRuns(ctx context.Context, filter ListFilter) ([]Run, error) {
	query := `
		SELECT id, seq, vector_file, name, tick_rate_hz, tick_width, pass, total, failed
		FROM runs
		WHERE (? = '' OR name = ?)
		ORDER BY seq DESC, id COLLATE BINARY ASC
	`
	args := []any{filter.Name, filter.Name}
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var pass int
		if err := rows.Scan(&r.ID, &r.Seq, &r.VectorFile, &r.Name, &r.TickRateHz, &r.TickWidth, &pass, &r.Total, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Pass = pass == 1
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadOutcomes returns the outcomes of one run in case order.
//
// Returns an empty slice (not nil) if the run has no outcomes or does not
// exist.
func (s *Store) ReadOutcomes(ctx context.Context, runID string) ([]OutcomeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, idx, case_name, op, pass, actual, mismatches
		FROM outcomes
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []OutcomeRecord{}
	for rows.Next() {
		var o OutcomeRecord
		var pass int
		var mismatchJSON string
		if err := rows.Scan(&o.RunID, &o.Index, &o.CaseName, &o.Op, &pass, &o.Actual, &mismatchJSON); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Pass = pass == 1
		if err := json.Unmarshal([]byte(mismatchJSON), &o.Mismatches); err != nil {
			return nil, fmt.Errorf("outcome %q: decode mismatches: %w", o.CaseName, err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}
