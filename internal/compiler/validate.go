package compiler

import (
	"fmt"

	"github.com/qsafe/qloop/internal/ir"
	"github.com/qsafe/qloop/internal/rules"
)

// Validation error codes (E100-E199).
const (
	ErrUnknownFunction       = "E101" // function not in the builtin registry
	ErrNonPositiveIterations = "E102" // iterations must be a positive integer
	ErrControlFlow           = "E103" // body contains forbidden control flow
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled loop spec against schema rules and the
// static physical rules. Returns all errors found (does not fail-fast).
//
// Only the statically decidable checks run here: registry membership,
// the iteration-count domain, and the control-flow rule. Reversibility
// and preservation are runtime properties and stay with evaluation.
func Validate(spec *ir.LoopSpec) []ValidationError {
	var errs []ValidationError

	fnSpec, err := LookupBuiltin(spec.Function)
	if err != nil {
		errs = append(errs, ValidationError{
			Field:   "function",
			Message: err.Error(),
			Code:    ErrUnknownFunction,
		})
	}

	if spec.Iterations <= 0 {
		errs = append(errs, ValidationError{
			Field:   "iterations",
			Message: fmt.Sprintf("must be a fixed positive integer, got %d", spec.Iterations),
			Code:    ErrNonPositiveIterations,
		})
	}

	if fnSpec != nil {
		if err := rules.CheckControlFlow(fnSpec); err != nil {
			errs = append(errs, ValidationError{
				Field:   "function",
				Message: err.Error(),
				Code:    ErrControlFlow,
			})
		}
	}

	return errs
}
