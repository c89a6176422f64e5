package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/qsafe/qloop/internal/ir"
)

// OutputCaseSuccess marks an evaluation that produced a value. Failed
// evaluations carry the violation code as their output case instead.
const OutputCaseSuccess = "Success"

// evaluationDomain prefixes content-addressed evaluation IDs. The
// version suffix leaves room for algorithm migration.
const evaluationDomain = "qloop/evaluation/v1"

// Evaluation is one recorded call through a checked function.
type Evaluation struct {
	ID         string `json:"id"` // content-addressed
	RunToken   string `json:"run_token"`
	FuncName   string `json:"func_name"`
	Input      int64  `json:"input"`
	OutputCase string `json:"output_case"` // Success or a violation code
	Output     int64  `json:"output"`      // meaningful only on Success
	Violation  string `json:"violation,omitempty"`
	Seq        int64  `json:"seq"` // logical clock within the run
}

// EvaluationID computes the content-addressed ID for an evaluation.
// Format: SHA256(domain + 0x00 + canonical JSON). The null separator
// prevents domain/data boundary ambiguity. The ID covers what was asked
// (run, function, input, seq), not what came out, so a replayed run
// writes the same rows instead of duplicating them.
func EvaluationID(runToken, funcName string, input, seq int64) (string, error) {
	data, err := ir.MarshalCanonical(map[string]any{
		"run_token": runToken,
		"func_name": funcName,
		"input":     input,
		"seq":       seq,
	})
	if err != nil {
		return "", fmt.Errorf("evaluation id: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(evaluationDomain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteEvaluation inserts an evaluation record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - replaying a run
// writes the same content-addressed rows and they are silently ignored.
func (s *Store) WriteEvaluation(ctx context.Context, ev Evaluation) error {
	if ev.ID == "" {
		id, err := EvaluationID(ev.RunToken, ev.FuncName, ev.Input, ev.Seq)
		if err != nil {
			return fmt.Errorf("write evaluation: %w", err)
		}
		ev.ID = id
	}

	var output sql.NullInt64
	if ev.OutputCase == OutputCaseSuccess {
		output = sql.NullInt64{Int64: ev.Output, Valid: true}
	}
	var violation sql.NullString
	if ev.Violation != "" {
		violation = sql.NullString{String: ev.Violation, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, run_token, func_name, input, output_case, output, violation, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.ID,
		ev.RunToken,
		ev.FuncName,
		ev.Input,
		ev.OutputCase,
		output,
		violation,
		ev.Seq,
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}
	return nil
}
