package ir

import "fmt"

// NodeKind tags the variant of an expression AST node.
//
// The evaluable kinds form a straight-line arithmetic language: every
// program is a fixed, data-independent sequence of operations, which is
// exactly the shape a quantum embedding requires.
//
// The control-flow kinds (KindIf, KindWhile, KindBreak, KindContinue)
// exist only so the control-flow rule can reject them structurally.
// They are never evaluable.
type NodeKind uint8

const (
	// KindConst is an integer literal. Value holds the literal.
	KindConst NodeKind = iota

	// KindParam references the function's single parameter by name.
	KindParam

	// Binary operators. X and Y hold the operands.
	KindXor
	KindAnd
	KindOr
	KindAdd
	KindSub
	KindMul
	KindShl
	KindShr

	// Unary operators. X holds the operand.
	KindNeg
	KindNot

	// KindAbsentResult produces the absent sentinel: the function
	// discards its inputs. Exists so the information-preservation rule
	// has a violating body to detect.
	KindAbsentResult

	// Forbidden control-flow kinds. X holds the condition where one
	// exists, Y the taken branch / loop body.
	KindIf
	KindWhile
	KindBreak
	KindContinue
)

// Keyword returns the surface keyword for a control-flow kind, or ""
// for evaluable kinds. Violation messages name the keyword, not the
// internal kind number.
func (k NodeKind) Keyword() string {
	switch k {
	case KindIf:
		return "if"
	case KindWhile:
		return "while"
	case KindBreak:
		return "break"
	case KindContinue:
		return "continue"
	default:
		return ""
	}
}

func (k NodeKind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindParam:
		return "param"
	case KindXor:
		return "xor"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindAdd:
		return "add"
	case KindSub:
		return "sub"
	case KindMul:
		return "mul"
	case KindShl:
		return "shl"
	case KindShr:
		return "shr"
	case KindNeg:
		return "neg"
	case KindNot:
		return "not"
	case KindAbsentResult:
		return "absent"
	case KindIf, KindWhile, KindBreak, KindContinue:
		return k.Keyword()
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node is one expression AST node. Which fields are meaningful depends
// on Kind; unused fields stay zero.
type Node struct {
	Kind  NodeKind
	Value int64  // KindConst literal
	Name  string // KindParam parameter name
	X     *Node  // left operand / unary operand / condition
	Y     *Node  // right operand / branch body
}

// Constructors for the evaluable kinds. Bodies read naturally:
// Xor(Param("x"), Const(1)).

func Const(v int64) *Node           { return &Node{Kind: KindConst, Value: v} }
func Param(name string) *Node       { return &Node{Kind: KindParam, Name: name} }
func Xor(x, y *Node) *Node          { return &Node{Kind: KindXor, X: x, Y: y} }
func And(x, y *Node) *Node          { return &Node{Kind: KindAnd, X: x, Y: y} }
func Or(x, y *Node) *Node           { return &Node{Kind: KindOr, X: x, Y: y} }
func Add(x, y *Node) *Node          { return &Node{Kind: KindAdd, X: x, Y: y} }
func Sub(x, y *Node) *Node          { return &Node{Kind: KindSub, X: x, Y: y} }
func Mul(x, y *Node) *Node          { return &Node{Kind: KindMul, X: x, Y: y} }
func Shl(x, y *Node) *Node          { return &Node{Kind: KindShl, X: x, Y: y} }
func Shr(x, y *Node) *Node          { return &Node{Kind: KindShr, X: x, Y: y} }
func Neg(x *Node) *Node             { return &Node{Kind: KindNeg, X: x} }
func Not(x *Node) *Node             { return &Node{Kind: KindNot, X: x} }
func AbsentResult() *Node           { return &Node{Kind: KindAbsentResult} }
func If(cond, then *Node) *Node     { return &Node{Kind: KindIf, X: cond, Y: then} }
func While(cond, body *Node) *Node  { return &Node{Kind: KindWhile, X: cond, Y: body} }
func Break() *Node                  { return &Node{Kind: KindBreak} }
func Continue() *Node               { return &Node{Kind: KindContinue} }

// Walk visits n and every reachable child in depth-first pre-order,
// calling visit on each. Walk stops at the first non-nil error and
// returns it.
func Walk(n *Node, visit func(*Node) error) error {
	if n == nil {
		return nil
	}
	if err := visit(n); err != nil {
		return err
	}
	if err := Walk(n.X, visit); err != nil {
		return err
	}
	return Walk(n.Y, visit)
}

// EvalError reports a body that cannot be evaluated as a fixed sequence
// of operations.
type EvalError struct {
	Kind NodeKind
}

func (e *EvalError) Error() string {
	if kw := e.Kind.Keyword(); kw != "" {
		return fmt.Sprintf("body contains %q: not evaluable as a fixed operation sequence", kw)
	}
	return fmt.Sprintf("body contains unevaluable node kind %s", e.Kind)
}

// Eval evaluates a body for the given parameter binding.
//
// Control-flow kinds are not evaluable: they would make the executed
// operation sequence depend on runtime data, and Eval refuses them with
// an EvalError. Bodies that pass the control-flow rule never hit this
// path; bodies that would fail it are unevaluable by the same token.
func Eval(n *Node, param string, x int64) (Value, error) {
	if n == nil {
		return Absent{}, nil
	}
	switch n.Kind {
	case KindConst:
		return Int(n.Value), nil
	case KindParam:
		if n.Name != param {
			return nil, fmt.Errorf("unknown parameter %q (have %q)", n.Name, param)
		}
		return Int(x), nil
	case KindAbsentResult:
		return Absent{}, nil
	case KindNeg, KindNot:
		v, err := evalInt(n.X, param, x)
		if err != nil {
			return nil, err
		}
		if n.Kind == KindNeg {
			return Int(-v), nil
		}
		return Int(^v), nil
	case KindXor, KindAnd, KindOr, KindAdd, KindSub, KindMul, KindShl, KindShr:
		a, err := evalInt(n.X, param, x)
		if err != nil {
			return nil, err
		}
		b, err := evalInt(n.Y, param, x)
		if err != nil {
			return nil, err
		}
		switch n.Kind {
		case KindXor:
			return Int(a ^ b), nil
		case KindAnd:
			return Int(a & b), nil
		case KindOr:
			return Int(a | b), nil
		case KindAdd:
			return Int(a + b), nil
		case KindSub:
			return Int(a - b), nil
		case KindMul:
			return Int(a * b), nil
		case KindShl:
			return Int(a << uint64(b)), nil
		default:
			return Int(a >> uint64(b)), nil
		}
	default:
		return nil, &EvalError{Kind: n.Kind}
	}
}

// evalInt evaluates a subexpression that must produce an integer.
func evalInt(n *Node, param string, x int64) (int64, error) {
	v, err := Eval(n, param, x)
	if err != nil {
		return 0, err
	}
	i, ok := AsInt(v)
	if !ok {
		return 0, fmt.Errorf("subexpression produced no value")
	}
	return i, nil
}
