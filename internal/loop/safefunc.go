// Package loop provides the quantum-safe function wrapper and the
// bounded repetition builder: the only constructors that turn classical
// functions into repeatable structural elements, and they accept only
// functions that pass the physical-rule checks in package rules.
package loop

import (
	"fmt"

	"github.com/qsafe/qloop/internal/circuit"
	"github.com/qsafe/qloop/internal/ir"
	"github.com/qsafe/qloop/internal/rules"
)

// Option configures Wrap.
type Option func(*SafeFunc)

// WithSynthesizer supplies the structural-unit synthesizer. Without it,
// Unit falls back to the illustrative circuit.Placeholder.
func WithSynthesizer(s circuit.Synthesizer) Option {
	return func(sf *SafeFunc) { sf.synth = s }
}

// SafeFunc is an immutable association between a classical function and
// the evidence that it passed the physical-rule checks. The association
// is made once, at Wrap time; there is no re-validation.
//
// A SafeFunc holds no loop state. The reversibility ledger inside its
// checked chain is the only mutable state, scoped to this instance:
// wrapping the same spec twice yields two independent ledgers.
type SafeFunc struct {
	spec  *ir.FuncSpec
	fn    ir.Checked
	synth circuit.Synthesizer
}

// Wrap validates spec and boxes it into a SafeFunc.
//
// The control-flow check runs here, once, before any call is possible;
// a branching body never produces a SafeFunc. The reversibility and
// preservation checks are then layered into the call chain
// (preservation outermost, reversibility inner, evaluation innermost)
// and re-run on every Evaluate, since reversibility is detectable only
// from observed calls.
func Wrap(spec *ir.FuncSpec, opts ...Option) (*SafeFunc, error) {
	if spec == nil {
		return nil, fmt.Errorf("wrap: nil function spec")
	}
	if err := rules.CheckControlFlow(spec); err != nil {
		return nil, err
	}

	sf := &SafeFunc{
		spec: spec,
		fn: rules.WrapPreserving(spec.Name,
			rules.WrapReversible(spec.Name,
				ir.Lift(spec.Fn()))),
		synth: circuit.Placeholder{},
	}
	for _, opt := range opts {
		opt(sf)
	}
	return sf, nil
}

// Name returns the wrapped function's name.
func (s *SafeFunc) Name() string {
	return s.spec.Name
}

// Spec returns the wrapped function's spec.
func (s *SafeFunc) Spec() *ir.FuncSpec {
	return s.spec
}

// Evaluate runs the checked function on x. Violations detected by the
// per-call checks propagate unchanged.
func (s *SafeFunc) Evaluate(x int64) (int64, error) {
	result, err := s.fn(ir.Int(x))
	if err != nil {
		return 0, err
	}
	y, ok := ir.AsInt(result)
	if !ok {
		// The preservation wrapper already rejects absent results;
		// reaching this means the chain was bypassed.
		return 0, fmt.Errorf("evaluate %s(%d): non-integer result %s", s.spec.Name, x, ir.String(result))
	}
	return y, nil
}

// Unit synthesizes the structural element embedding this function into
// a reversible composition. name defaults to circuit.DefaultUnitName.
//
// Fidelity is entirely the synthesizer's: with the default placeholder
// the returned unit is a fixed illustrative exchange, not an embedding
// of the function's semantics.
func (s *SafeFunc) Unit(name string) (*circuit.Unit, error) {
	return s.synth.Synthesize(s.spec, name)
}
