package loop

import (
	"errors"
	"fmt"

	"github.com/qsafe/qloop/internal/circuit"
)

// ErrNonPositiveIterations rejects repetition counts that are zero or
// negative. Quantum-valid repetition is a fixed positive count decided
// at construction, never computed from runtime data.
var ErrNonPositiveIterations = errors.New("bounded repetition requires a fixed positive iteration count")

// BoundedLoop is an immutable pair of a fixed iteration count and a
// validated body function. Building it replicates one structural unit
// count times.
//
// Two states: unbuilt and built. Build performs the transition once and
// caches the result; later calls return the same composition.
type BoundedLoop struct {
	iterations int
	body       *SafeFunc
	unitName   string

	built *circuit.Composition
}

// LoopOption configures NewBounded.
type LoopOption func(*BoundedLoop)

// WithUnitName overrides the structural unit name used at build time.
func WithUnitName(name string) LoopOption {
	return func(l *BoundedLoop) { l.unitName = name }
}

// NewBounded constructs a bounded loop of iterations repetitions of
// body. Fails with ErrNonPositiveIterations when iterations <= 0.
func NewBounded(iterations int, body *SafeFunc, opts ...LoopOption) (*BoundedLoop, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrNonPositiveIterations, iterations)
	}
	if body == nil {
		return nil, fmt.Errorf("bounded repetition requires a validated body function")
	}
	l := &BoundedLoop{
		iterations: iterations,
		body:       body,
		unitName:   circuit.DefaultUnitName,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Iterations returns the fixed repetition count.
func (l *BoundedLoop) Iterations() int {
	return l.iterations
}

// Body returns the validated body function.
func (l *BoundedLoop) Body() *SafeFunc {
	return l.body
}

// Built reports whether Build has already run.
func (l *BoundedLoop) Built() bool {
	return l.built != nil
}

// Build assembles the repeated composition.
//
// The body's structural unit is synthesized exactly once and replicated
// by reference: all iterations are the same object, so the repetitions
// are identical by construction rather than by re-synthesis. The result
// is cached; Build is idempotent and the built composition immutable.
func (l *BoundedLoop) Build() (*circuit.Composition, error) {
	if l.built != nil {
		return l.built, nil
	}

	unit, err := l.body.Unit(l.unitName)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s unit: %w", l.body.Name(), err)
	}

	units := make([]*circuit.Unit, l.iterations)
	for i := range units {
		units[i] = unit
	}
	comp, err := circuit.Compose(unit.Width, units...)
	if err != nil {
		return nil, fmt.Errorf("assemble %s composition: %w", l.body.Name(), err)
	}

	l.built = comp
	return comp, nil
}
