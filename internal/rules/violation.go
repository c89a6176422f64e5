package rules

import (
	"errors"
	"fmt"

	"github.com/qsafe/qloop/internal/ir"
)

// ViolationCode categorizes physical-rule violations.
type ViolationCode string

const (
	// CodeIrreversible indicates two distinct inputs collided on one output.
	CodeIrreversible ViolationCode = "IRREVERSIBLE_FUNCTION"

	// CodeInformationDeletion indicates a call produced no output.
	CodeInformationDeletion ViolationCode = "INFORMATION_DELETION"

	// CodeControlFlowDivergence indicates the body contains a forbidden
	// branching construct.
	CodeControlFlowDivergence ViolationCode = "CONTROL_FLOW_DIVERGENCE"
)

// Violation reports that a function broke one of the physical rules.
//
// Violations are unrecoverable at the point of detection: no retry, no
// default substitution. They propagate to whoever attempted to validate
// or evaluate the offending function. Callers distinguish violations by
// Code (via the Is* predicates), never by parsing Message.
type Violation struct {
	// Code identifies the violated rule.
	Code ViolationCode

	// FuncName identifies the offending function.
	FuncName string

	// Message is a human-readable description.
	Message string

	// Details carries the concrete violating values or tokens.
	Details map[string]string
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return fmt.Sprintf("%s: function %q %s", v.Code, v.FuncName, v.Message)
}

// IsIrreversible reports whether err is an irreversibility violation.
// Uses errors.As to handle wrapped errors.
func IsIrreversible(err error) bool {
	var v *Violation
	return errors.As(err, &v) && v.Code == CodeIrreversible
}

// IsInformationDeletion reports whether err is an information-deletion
// violation. Uses errors.As to handle wrapped errors.
func IsInformationDeletion(err error) bool {
	var v *Violation
	return errors.As(err, &v) && v.Code == CodeInformationDeletion
}

// IsControlFlowDivergence reports whether err is a control-flow
// violation. Uses errors.As to handle wrapped errors.
func IsControlFlowDivergence(err error) bool {
	var v *Violation
	return errors.As(err, &v) && v.Code == CodeControlFlowDivergence
}

// AsViolation extracts a *Violation from err, unwrapping as needed.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	ok := errors.As(err, &v)
	return v, ok
}

// NewIrreversibleViolation reports inputs prev and next colliding on out.
func NewIrreversibleViolation(funcName string, prev, next, out int64) *Violation {
	return &Violation{
		Code:     CodeIrreversible,
		FuncName: funcName,
		Message:  fmt.Sprintf("is not reversible: inputs %d and %d both map to %d", prev, next, out),
		Details: map[string]string{
			"prior_input": fmt.Sprintf("%d", prev),
			"input":       fmt.Sprintf("%d", next),
			"output":      fmt.Sprintf("%d", out),
		},
	}
}

// NewInformationDeletionViolation reports a call that produced no output.
func NewInformationDeletionViolation(funcName string, args []ir.Value) *Violation {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = ir.String(a)
	}
	return &Violation{
		Code:     CodeInformationDeletion,
		FuncName: funcName,
		Message:  "discards information: call produced no output",
		Details: map[string]string{
			"args": fmt.Sprintf("%v", rendered),
		},
	}
}

// NewControlFlowViolation reports a forbidden branching construct.
func NewControlFlowViolation(funcName, keyword string) *Violation {
	return &Violation{
		Code:     CodeControlFlowDivergence,
		FuncName: funcName,
		Message:  fmt.Sprintf("contains forbidden control flow: %s", keyword),
		Details: map[string]string{
			"keyword": keyword,
		},
	}
}
