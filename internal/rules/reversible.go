package rules

import (
	"fmt"

	"github.com/qsafe/qloop/internal/ir"
)

// Ledger records every observed output and the unique input that
// produced it. One ledger belongs to exactly one wrapped function
// instance; it is created empty at wrap time and grows for as long as
// the wrapped function lives.
//
// Invariant: at most one input maps to each output. A call that would
// break the invariant fails and leaves the prior entry intact.
//
// Not safe for concurrent use. The design assumes single-threaded
// evaluation; callers needing concurrency must serialize access to the
// wrapped function themselves.
type Ledger struct {
	seen map[int64]int64 // output -> input
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[int64]int64)}
}

// Lookup returns the input previously recorded for output y.
func (l *Ledger) Lookup(y int64) (int64, bool) {
	x, ok := l.seen[y]
	return x, ok
}

// Record associates output y with input x.
func (l *Ledger) Record(y, x int64) {
	l.seen[y] = x
}

// Size returns the number of distinct outputs observed so far.
// Used for testing and introspection.
func (l *Ledger) Size() int {
	return len(l.seen)
}

// ReversibilityChecker wraps one function with runtime injectivity
// detection. Each checker owns a private ledger; wrapping the same raw
// function twice yields two independent checkers.
type ReversibilityChecker struct {
	funcName string
	fn       ir.Checked
	ledger   *Ledger
}

// NewReversibilityChecker creates a checker around fn with a fresh
// empty ledger.
func NewReversibilityChecker(funcName string, fn ir.Checked) *ReversibilityChecker {
	return &ReversibilityChecker{
		funcName: funcName,
		fn:       fn,
		ledger:   NewLedger(),
	}
}

// Ledger exposes the checker's ledger for testing and introspection.
func (c *ReversibilityChecker) Ledger() *Ledger {
	return c.ledger
}

// Call evaluates the wrapped function on a single integer argument and
// records the observed (output -> input) pair.
//
// The first observation of any output seeds the ledger. Re-evaluating
// the same input is idempotent and never fails: only distinct inputs
// colliding on one output constitute irreversibility. A colliding call
// fails with an IRREVERSIBLE_FUNCTION violation identifying both inputs
// and the shared output, and does not update the ledger.
//
// Detection is per call, over outputs observed so far. It can refute
// injectivity from a counterexample but can never prove it.
func (c *ReversibilityChecker) Call(args ...ir.Value) (ir.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("reversibility check requires a unary call, got %d arguments", len(args))
	}
	x, ok := ir.AsInt(args[0])
	if !ok {
		return nil, fmt.Errorf("reversibility check requires an integer argument, got %s", ir.String(args[0]))
	}

	result, err := c.fn(args...)
	if err != nil {
		return nil, err
	}

	// Absent results carry no output to ledger; the preservation rule
	// owns that failure mode.
	y, ok := ir.AsInt(result)
	if !ok {
		return result, nil
	}

	if prev, seen := c.ledger.Lookup(y); seen && prev != x {
		return nil, NewIrreversibleViolation(c.funcName, prev, x, y)
	}
	c.ledger.Record(y, x)
	return result, nil
}

// WrapReversible returns fn with runtime injectivity detection scoped to
// a fresh private ledger. The returned function computes exactly what fn
// computes; the ledger update is its only side effect.
func WrapReversible(funcName string, fn ir.Checked) ir.Checked {
	c := NewReversibilityChecker(funcName, fn)
	return c.Call
}
