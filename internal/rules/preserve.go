package rules

import "github.com/qsafe/qloop/internal/ir"

// WrapPreserving returns fn with the information-preservation rule
// applied per call: all arguments are forwarded unchanged and the result
// is returned as-is, unless the result is absent, in which case the call
// fails with an INFORMATION_DELETION violation naming the function and
// its arguments.
//
// This is deliberately a coarse proxy for "no information deletion". It
// forbids only the total-absence case; a function that returns a strict
// subset of its input's distinguishing bits passes. That limitation is
// inherited from the rule's operational definition, not an oversight.
func WrapPreserving(funcName string, fn ir.Checked) ir.Checked {
	return func(args ...ir.Value) (ir.Value, error) {
		result, err := fn(args...)
		if err != nil {
			return nil, err
		}
		if ir.IsAbsent(result) {
			return nil, NewInformationDeletionViolation(funcName, args)
		}
		return result, nil
	}
}
