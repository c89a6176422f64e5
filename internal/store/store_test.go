package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// =============================================================================
// Open/Close Tests
// =============================================================================

func TestOpen_CreatesAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Idempotent on an existing database.
	s, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestClose_NilDBIsSafe(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}

// =============================================================================
// Write/Read Tests
// =============================================================================

func TestWriteEvaluation_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteEvaluation(ctx, Evaluation{
		RunToken:   "run-1",
		FuncName:   "xor_one",
		Input:      0,
		OutputCase: OutputCaseSuccess,
		Output:     1,
		Seq:        1,
	}))
	require.NoError(t, s.WriteEvaluation(ctx, Evaluation{
		RunToken:   "run-1",
		FuncName:   "xor_one",
		Input:      1,
		OutputCase: OutputCaseSuccess,
		Output:     0,
		Seq:        2,
	}))

	evs, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, evs, 2)

	assert.Equal(t, int64(0), evs[0].Input)
	assert.Equal(t, int64(1), evs[0].Output)
	assert.Equal(t, OutputCaseSuccess, evs[0].OutputCase)
	assert.NotEmpty(t, evs[0].ID, "missing ID is derived on write")

	assert.Equal(t, int64(1), evs[1].Input)
	assert.Equal(t, int64(2), evs[1].Seq)
}

func TestWriteEvaluation_ViolationRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteEvaluation(ctx, Evaluation{
		RunToken:   "run-v",
		FuncName:   "zero",
		Input:      1,
		OutputCase: "IRREVERSIBLE_FUNCTION",
		Violation:  `IRREVERSIBLE_FUNCTION: function "zero" is not reversible: inputs 0 and 1 both map to 0`,
		Seq:        2,
	}))

	evs, err := s.ReadRun(ctx, "run-v")
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "IRREVERSIBLE_FUNCTION", evs[0].OutputCase)
	assert.Contains(t, evs[0].Violation, "not reversible")
	assert.Equal(t, int64(0), evs[0].Output, "no output recorded on violation")
}

func TestWriteEvaluation_IdempotentOnReplay(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ev := Evaluation{
		RunToken:   "run-r",
		FuncName:   "xor_one",
		Input:      0,
		OutputCase: OutputCaseSuccess,
		Output:     1,
		Seq:        1,
	}
	require.NoError(t, s.WriteEvaluation(ctx, ev))
	require.NoError(t, s.WriteEvaluation(ctx, ev), "duplicate write is a no-op")

	n, err := s.CountEvaluations(ctx, "run-r")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReadRun_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	evs, err := s.ReadRun(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, evs)
	assert.Empty(t, evs)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, run := range []string{"run-a", "run-b"} {
		require.NoError(t, s.WriteEvaluation(ctx, Evaluation{
			RunToken:   run,
			FuncName:   "identity",
			Input:      int64(i),
			OutputCase: OutputCaseSuccess,
			Output:     int64(i),
			Seq:        1,
		}))
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-b", "run-a"}, runs)
}

// =============================================================================
// EvaluationID Tests
// =============================================================================

func TestEvaluationID_StableAndDistinct(t *testing.T) {
	a, err := EvaluationID("run", "xor_one", 0, 1)
	require.NoError(t, err)
	b, err := EvaluationID("run", "xor_one", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same request hashes to the same ID")

	c, err := EvaluationID("run", "xor_one", 1, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different input, different ID")

	d, err := EvaluationID("run", "xor_one", 0, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, d, "different seq, different ID")
}
