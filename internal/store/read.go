package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadRun returns all evaluations for a run token in deterministic
// order: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) when the run has no records.
func (s *Store) ReadRun(ctx context.Context, runToken string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_token, func_name, input, output_case, output, violation, seq
		FROM evaluations
		WHERE run_token = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := []Evaluation{}
	for rows.Next() {
		var ev Evaluation
		var output sql.NullInt64
		var violation sql.NullString
		if err := rows.Scan(
			&ev.ID,
			&ev.RunToken,
			&ev.FuncName,
			&ev.Input,
			&ev.OutputCase,
			&output,
			&violation,
			&ev.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		if output.Valid {
			ev.Output = output.Int64
		}
		if violation.Valid {
			ev.Violation = violation.String
		}
		evaluations = append(evaluations, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	return evaluations, nil
}

// ListRuns returns all distinct run tokens, most recent first (tokens
// are UUIDv7, so lexical order is creation order).
func (s *Store) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT run_token FROM evaluations ORDER BY run_token DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan run token: %w", err)
		}
		runs = append(runs, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
