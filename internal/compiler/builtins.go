// Package compiler resolves declarative loop programs into the ir
// types the rule checkers operate on: it holds the builtin function
// registry, the CUE loop-spec compiler, and schema validation.
package compiler

import (
	"fmt"
	"slices"

	"github.com/qsafe/qloop/internal/ir"
)

// builtins maps function names to their AST-bodied specs. The registry
// is the only place function bodies are defined: both evaluation and
// static checking flow from these ASTs.
//
// The registry deliberately includes rule-breaking functions (zero,
// discard, collatz_step). They exist so violations are demonstrable,
// not because they are usable loop bodies.
var builtins = map[string]*ir.FuncSpec{
	// Bijective on {0,1}; the canonical demo body.
	"xor_one": ir.NewFuncSpec("xor_one", "x", ir.Xor(ir.Param("x"), ir.Const(1))),

	"identity": ir.NewFuncSpec("identity", "x", ir.Param("x")),
	"negate":   ir.NewFuncSpec("negate", "x", ir.Neg(ir.Param("x"))),
	"add_one":  ir.NewFuncSpec("add_one", "x", ir.Add(ir.Param("x"), ir.Const(1))),

	// Injective but information-expanding; passes every check.
	"double": ir.NewFuncSpec("double", "x", ir.Shl(ir.Param("x"), ir.Const(1))),

	// Constant: the reversibility counterexample.
	"zero": ir.NewFuncSpec("zero", "x", ir.Const(0)),

	// Produces no output: the information-deletion counterexample.
	"discard": ir.NewFuncSpec("discard", "x", ir.AbsentResult()),

	// Branches on its argument: the control-flow counterexample.
	// (The real Collatz step halves or triples depending on parity.)
	"collatz_step": ir.NewFuncSpec("collatz_step", "x",
		ir.If(ir.And(ir.Param("x"), ir.Const(1)),
			ir.Add(ir.Mul(ir.Param("x"), ir.Const(3)), ir.Const(1)))),
}

// LookupBuiltin returns the registered spec for name.
func LookupBuiltin(name string) (*ir.FuncSpec, error) {
	spec, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin function %q (known: %v)", name, BuiltinNames())
	}
	return spec, nil
}

// BuiltinNames returns all registered names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
