package ir

// FuncSpec is an immutable description of a unary classical function:
// its name, its single parameter, and its body AST.
//
// The body is the single source of truth. Both static rule checks
// (walking the AST) and runtime evaluation (the evaluator) read the same
// representation, so a function cannot pass validation with one body and
// execute another.
type FuncSpec struct {
	Name  string `json:"name"`
	Param string `json:"param"`
	Body  *Node  `json:"-"`
}

// NewFuncSpec builds a FuncSpec. Param defaults to "x" when empty.
func NewFuncSpec(name, param string, body *Node) *FuncSpec {
	if param == "" {
		param = "x"
	}
	return &FuncSpec{Name: name, Param: param, Body: body}
}

// Fn derives the runtime closure from the body AST.
//
// Call-shape errors and unevaluable bodies surface as Absent rather than
// panicking; the rule checkers wrapped around the closure turn that into
// a structured failure.
func (s *FuncSpec) Fn() Fn {
	return func(args ...Value) Value {
		if len(args) != 1 {
			return Absent{}
		}
		x, ok := AsInt(args[0])
		if !ok {
			return Absent{}
		}
		v, err := Eval(s.Body, s.Param, x)
		if err != nil {
			return Absent{}
		}
		return v
	}
}

// LoopSpec is a declarative loop program as loaded from a CUE file:
// which builtin function forms the body, how many times it repeats, and
// which probe inputs to evaluate before building.
//
// Iterations is fixed at load time. There is deliberately no way to
// express a data-dependent count.
type LoopSpec struct {
	// Function names a builtin in the compiler registry.
	Function string `json:"function"`

	// Iterations is the fixed repetition count. Must be positive.
	Iterations int `json:"iterations"`

	// Inputs are optional probe values evaluated through the checked
	// function before the loop is built.
	Inputs []int64 `json:"inputs,omitempty"`

	// UnitName overrides the default structural unit name ("U_f").
	UnitName string `json:"unit_name,omitempty"`
}
