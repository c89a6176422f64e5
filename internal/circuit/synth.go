package circuit

import "github.com/qsafe/qloop/internal/ir"

// Synthesizer turns a validated function into a structural unit.
//
// This is the collaborator seam for real reversible-logic synthesis:
// qloop itself ships only the Placeholder below, and anything that needs
// a faithful embedding must supply its own implementation.
type Synthesizer interface {
	Synthesize(spec *ir.FuncSpec, name string) (*Unit, error)
}

// DefaultUnitName is the unit name used when a caller supplies none.
const DefaultUnitName = "U_f"

// Placeholder is the stub synthesizer. It emits the same fixed two-wire
// controlled-exchange unit for every function, regardless of the
// function's actual semantics.
//
// This is NOT synthesis. The emitted unit is a stand-in so compositions
// can be assembled and rendered; treating it as a faithful embedding of
// the function is a consumer error.
type Placeholder struct{}

// Synthesize returns the fixed two-wire exchange unit named after the
// function. The spec's body is deliberately ignored.
func (Placeholder) Synthesize(spec *ir.FuncSpec, name string) (*Unit, error) {
	if name == "" {
		name = DefaultUnitName
	}
	return NewUnit(name, 2, Op{Kind: OpCX, Control: 0, Target: 1}), nil
}
