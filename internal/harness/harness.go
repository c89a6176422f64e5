package harness

import (
	"fmt"

	"github.com/qsafe/qloop/internal/circuit"
	"github.com/qsafe/qloop/internal/compiler"
	"github.com/qsafe/qloop/internal/loop"
	"github.com/qsafe/qloop/internal/rules"
)

// Trace event types.
const (
	EventWrap       = "wrap"       // decoration-time check outcome
	EventEvaluation = "evaluation" // one probe call
)

// TraceEvent is one observed step of a scenario execution.
type TraceEvent struct {
	Type       string // EventWrap or EventEvaluation
	Input      int64  // meaningful for evaluations only
	OutputCase string // "Success" or a violation code
	Output     int64  // meaningful on Success only
	Violation  string // full violation message when failed
	Seq        int64
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates the scenario's expectation was met.
	Pass bool

	// Trace holds all observed events in order.
	Trace []TraceEvent

	// Composition is the built repetition, nil when a violation
	// aborted the pipeline before building.
	Composition *circuit.Composition

	// Errors contains expectation mismatches. Empty if Pass.
	Errors []string
}

// Run executes a scenario: resolve the builtin, wrap it through the
// rule checks, evaluate the probes in order, and build the bounded
// repetition. The first violation aborts the pipeline, mirroring the
// unrecoverable propagation the checkers specify.
func Run(s *Scenario) (*Result, error) {
	result := &Result{Pass: true}
	seq := int64(0)

	spec, err := compiler.LookupBuiltin(s.Function)
	if err != nil {
		return nil, err
	}

	sf, err := loop.Wrap(spec)
	if err != nil {
		seq++
		code, msg := violationOf(err)
		if code == "" {
			return nil, err
		}
		result.Trace = append(result.Trace, TraceEvent{
			Type:       EventWrap,
			OutputCase: code,
			Violation:  msg,
			Seq:        seq,
		})
		checkExpectation(s, result, code)
		return result, nil
	}

	var outputs []int64
	for _, x := range s.Inputs {
		seq++
		y, err := sf.Evaluate(x)
		if err != nil {
			code, msg := violationOf(err)
			if code == "" {
				return nil, err
			}
			result.Trace = append(result.Trace, TraceEvent{
				Type:       EventEvaluation,
				Input:      x,
				OutputCase: code,
				Violation:  msg,
				Seq:        seq,
			})
			checkExpectation(s, result, code)
			return result, nil
		}
		outputs = append(outputs, y)
		result.Trace = append(result.Trace, TraceEvent{
			Type:       EventEvaluation,
			Input:      x,
			OutputCase: "Success",
			Output:     y,
			Seq:        seq,
		})
	}

	bounded, err := loop.NewBounded(s.Iterations, sf)
	if err != nil {
		return nil, err
	}
	comp, err := bounded.Build()
	if err != nil {
		return nil, err
	}
	result.Composition = comp

	checkOutputs(s, result, outputs)
	return result, nil
}

// checkExpectation validates a violation outcome against the scenario.
func checkExpectation(s *Scenario, result *Result, code string) {
	if s.Expect == nil || s.Expect.Violation == "" {
		result.AddError(fmt.Sprintf("unexpected violation %s", code))
		return
	}
	if s.Expect.Violation != code {
		result.AddError(fmt.Sprintf("expected violation %s, got %s", s.Expect.Violation, code))
	}
}

// checkOutputs validates a clean run against the scenario.
func checkOutputs(s *Scenario, result *Result, outputs []int64) {
	if s.Expect == nil {
		return
	}
	if s.Expect.Violation != "" {
		result.AddError(fmt.Sprintf("expected violation %s, but the run completed", s.Expect.Violation))
		return
	}
	if len(s.Expect.Outputs) != len(outputs) {
		result.AddError(fmt.Sprintf("expected %d outputs, got %d", len(s.Expect.Outputs), len(outputs)))
		return
	}
	for i, want := range s.Expect.Outputs {
		if outputs[i] != want {
			result.AddError(fmt.Sprintf("input %d: expected output %d, got %d", s.Inputs[i], want, outputs[i]))
		}
	}
}

// AddError records an expectation mismatch and fails the result.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// violationOf extracts a violation code and message from err.
// Returns "" for non-violation errors.
func violationOf(err error) (code, msg string) {
	v, ok := rules.AsViolation(err)
	if !ok {
		return "", ""
	}
	return string(v.Code), v.Error()
}
