package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsafe/qloop/internal/store"
)

func TestRun_ValidSpec(t *testing.T) {
	path := writeLoopFile(t, validLoopCUE)

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "xor_one(0) = 1")
	assert.Contains(t, output, "xor_one(1) = 0")
	assert.Contains(t, output, "Repetitions: 3")
	assert.Contains(t, output, "q0: ──■──■──■──")
}

func TestRun_JSON(t *testing.T) {
	path := writeLoopFile(t, validLoopCUE)

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "xor_one", data["function"])
	assert.Equal(t, []any{float64(1), float64(0)}, data["outputs"])
}

func TestRun_IrreversibleSpecFails(t *testing.T) {
	path := writeLoopFile(t, `loop: {
	function:   "zero"
	iterations: 1
	inputs: [0, 1]
}
`)

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "IRREVERSIBLE_FUNCTION")
}

func TestRun_ValidationFailureSkipsEvaluation(t *testing.T) {
	path := writeLoopFile(t, `loop: {
	function:   "xor_one"
	iterations: -1
}
`)

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "E003")
}

func TestRun_TraceRecordsEvaluations(t *testing.T) {
	path := writeLoopFile(t, validLoopCUE)
	dbPath := filepath.Join(t.TempDir(), "trace.db")

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--trace", dbPath})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	runToken, ok := data["run_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, runToken)

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	evaluations, err := db.ReadRun(context.Background(), runToken)
	require.NoError(t, err)
	require.Len(t, evaluations, 2)
	assert.Equal(t, int64(0), evaluations[0].Input)
	assert.Equal(t, int64(1), evaluations[0].Output)
	assert.Equal(t, store.OutputCaseSuccess, evaluations[0].OutputCase)
	assert.Equal(t, int64(1), evaluations[1].Input)
	assert.Equal(t, int64(0), evaluations[1].Output)
}

func TestRun_TraceRecordsViolation(t *testing.T) {
	path := writeLoopFile(t, `loop: {
	function:   "zero"
	iterations: 1
	inputs: [0, 1]
}
`)
	dbPath := filepath.Join(t.TempDir(), "trace.db")

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--trace", dbPath})

	err := cmd.Execute()
	require.Error(t, err)

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)

	evaluations, err := db.ReadRun(context.Background(), runs[0])
	require.NoError(t, err)
	require.Len(t, evaluations, 2, "the violating probe is recorded too")
	assert.Equal(t, store.OutputCaseSuccess, evaluations[0].OutputCase)
	assert.Equal(t, "IRREVERSIBLE_FUNCTION", evaluations[1].OutputCase)
	assert.Contains(t, evaluations[1].Violation, "not reversible")
}

func TestRun_MissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.cue")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
