package rules

import "github.com/qsafe/qloop/internal/ir"

// forbiddenKinds is the closed set of branching node kinds a quantum
// embedding cannot express: the executed operation sequence must not
// depend on runtime data.
var forbiddenKinds = map[ir.NodeKind]bool{
	ir.KindIf:       true,
	ir.KindWhile:    true,
	ir.KindBreak:    true,
	ir.KindContinue: true,
}

// CheckControlFlow verifies that a function body is a fixed,
// data-independent operation sequence.
//
// The check runs once, at decoration time, not per call: it walks the
// body AST and fails with a CONTROL_FLOW_DIVERGENCE violation at the
// first forbidden node kind, naming the surface keyword and the
// function. On success the spec is usable as-is (the check is identity).
//
// Matching on node kinds rather than identifier text means an unrelated
// name that happens to spell "if" cannot produce a false positive, and a
// branching construct cannot hide behind a synonym. Branching buried in
// a helper the body calls out to is still invisible here; the check is
// only as deep as the representation it walks.
func CheckControlFlow(spec *ir.FuncSpec) error {
	return ir.Walk(spec.Body, func(n *ir.Node) error {
		if forbiddenKinds[n.Kind] {
			return NewControlFlowViolation(spec.Name, n.Kind.Keyword())
		}
		return nil
	})
}
