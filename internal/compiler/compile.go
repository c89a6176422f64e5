package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"

	"github.com/qsafe/qloop/internal/ir"
)

// CompileError reports a malformed loop spec with source position when
// CUE can supply one.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileLoop parses a CUE value into a LoopSpec.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the loop struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`loop: { function: "xor_one", iterations: 3 }`)
//	spec, err := CompileLoop(v.LookupPath(cue.ParsePath("loop")))
func CompileLoop(v cue.Value) (*ir.LoopSpec, error) {
	if err := v.Err(); err != nil {
		return nil, &CompileError{Field: "loop", Message: err.Error(), Pos: v.Pos()}
	}

	spec := &ir.LoopSpec{}

	// function (required)
	fnVal := v.LookupPath(cue.ParsePath("function"))
	if !fnVal.Exists() {
		return nil, &CompileError{Field: "function", Message: "function is required", Pos: v.Pos()}
	}
	fn, err := fnVal.String()
	if err != nil {
		return nil, &CompileError{Field: "function", Message: "function must be a string", Pos: fnVal.Pos()}
	}
	spec.Function = fn

	// iterations (required)
	//
	// CUE evaluates to a concrete integer before compilation sees it, so
	// the count is fixed at load time by construction: there is no
	// runtime input for it to depend on.
	iterVal := v.LookupPath(cue.ParsePath("iterations"))
	if !iterVal.Exists() {
		return nil, &CompileError{Field: "iterations", Message: "iterations is required", Pos: v.Pos()}
	}
	iterations, err := iterVal.Int64()
	if err != nil {
		return nil, &CompileError{Field: "iterations", Message: "iterations must be an integer", Pos: iterVal.Pos()}
	}
	spec.Iterations = int(iterations)

	// inputs (optional)
	inputsVal := v.LookupPath(cue.ParsePath("inputs"))
	if inputsVal.Exists() {
		iter, err := inputsVal.List()
		if err != nil {
			return nil, &CompileError{Field: "inputs", Message: "inputs must be a list of integers", Pos: inputsVal.Pos()}
		}
		for iter.Next() {
			n, err := iter.Value().Int64()
			if err != nil {
				return nil, &CompileError{Field: "inputs", Message: "inputs must be integers", Pos: iter.Value().Pos()}
			}
			spec.Inputs = append(spec.Inputs, n)
		}
	}

	// unit_name (optional)
	nameVal := v.LookupPath(cue.ParsePath("unit_name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, &CompileError{Field: "unit_name", Message: "unit_name must be a string", Pos: nameVal.Pos()}
		}
		spec.UnitName = name
	}

	return spec, nil
}
