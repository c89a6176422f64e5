package ir

import "fmt"

// Value is a sealed interface representing the result of a classical
// function embedded in a quantum composition. Only Int and Absent
// implement it.
//
// Absent is the designated "no output" sentinel: a function that produces
// Absent has discarded its inputs entirely, which the information
// preservation rule forbids. Using an explicit variant (instead of a nil
// interface) keeps the sentinel distinguishable from a forgotten return.
type Value interface {
	value() // Sealed - only Int and Absent implement it
}

// Int is a classical integer value. Always int64.
type Int int64

func (Int) value() {}

// Absent is the designated empty result.
type Absent struct{}

func (Absent) value() {}

// IsAbsent reports whether v is the absent sentinel.
// A nil Value is treated as absent too: a function returning an untyped
// nil has equally produced nothing.
func IsAbsent(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Absent)
	return ok
}

// AsInt extracts the int64 from an Int value.
// Returns false for Absent or nil.
func AsInt(v Value) (int64, bool) {
	n, ok := v.(Int)
	return int64(n), ok
}

// String renders a Value for diagnostics.
func String(v Value) string {
	switch val := v.(type) {
	case Int:
		return fmt.Sprintf("%d", int64(val))
	case Absent:
		return "<absent>"
	default:
		return "<absent>"
	}
}

// Fn is a raw classical function as supplied by a caller: it takes
// values and produces a value, with no failure channel of its own.
type Fn func(args ...Value) Value

// Checked is a rule-checked function: it forwards to an underlying Fn
// and may fail with a rules violation instead of returning a value.
type Checked func(args ...Value) (Value, error)

// Lift adapts a raw Fn to the Checked shape without adding any check.
// Checker wrappers compose over the lifted form.
func Lift(fn Fn) Checked {
	return func(args ...Value) (Value, error) {
		return fn(args...), nil
	}
}

// Unary adapts a plain unary integer function to the Fn shape.
// Extra or non-integer arguments yield Absent; checkers surface that as
// a call-shape or preservation failure rather than panicking.
func Unary(f func(int64) int64) Fn {
	return func(args ...Value) Value {
		if len(args) != 1 {
			return Absent{}
		}
		x, ok := AsInt(args[0])
		if !ok {
			return Absent{}
		}
		return Int(f(x))
	}
}
