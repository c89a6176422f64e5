package rules

import (
	"fmt"

	"github.com/qsafe/qloop/internal/ir"
)

// CheckBijectiveOn exhaustively evaluates fn over a finite domain and
// verifies that no two domain elements collide on one output and that
// every element produces an output.
//
// This is the stronger, opt-in alternative to the runtime ledger: where
// WrapReversible can only refute injectivity from the calls that happen
// to occur, CheckBijectiveOn proves it for the enumerated domain. It
// proves nothing about inputs outside the domain.
//
// The scan uses its own throwaway ledger; it never touches the ledger of
// any wrapped instance of fn.
func CheckBijectiveOn(funcName string, fn ir.Checked, domain []int64) error {
	if len(domain) == 0 {
		return fmt.Errorf("exhaustive check requires a non-empty domain")
	}

	seen := NewLedger()
	for _, x := range domain {
		result, err := fn(ir.Int(x))
		if err != nil {
			return err
		}
		y, ok := ir.AsInt(result)
		if !ok {
			return NewInformationDeletionViolation(funcName, []ir.Value{ir.Int(x)})
		}
		if prev, dup := seen.Lookup(y); dup && prev != x {
			return NewIrreversibleViolation(funcName, prev, x, y)
		}
		seen.Record(y, x)
	}
	return nil
}
