package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/qsafe/qloop/internal/ir"
)

// Snapshot captures a scenario execution for deterministic comparison.
// Tokens (run, unit, assembly) are excluded; structure is everything.
func Snapshot(s *Scenario, result *Result) map[string]any {
	trace := make([]any, len(result.Trace))
	for i, event := range result.Trace {
		eventMap := map[string]any{
			"type":        event.Type,
			"output_case": event.OutputCase,
			"seq":         event.Seq,
		}
		if event.Type == EventEvaluation {
			eventMap["input"] = event.Input
		}
		if event.OutputCase == "Success" {
			eventMap["output"] = event.Output
		}
		if event.Violation != "" {
			eventMap["violation"] = event.Violation
		}
		trace[i] = eventMap
	}

	snapshot := map[string]any{
		"scenario_name": s.Name,
		"function":      s.Function,
		"iterations":    s.Iterations,
		"pass":          result.Pass,
		"trace":         trace,
	}
	if result.Composition != nil {
		snapshot["composition"] = result.Composition.Snapshot()
	}
	if len(result.Errors) > 0 {
		snapshot["errors"] = result.Errors
	}
	return snapshot
}

// RunWithGolden executes a scenario and compares its canonical-JSON
// snapshot against the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := ir.MarshalCanonical(Snapshot(scenario, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
