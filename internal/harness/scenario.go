package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a loop program plus the
// behavior it is expected to exhibit.
type Scenario struct {
	// Name uniquely identifies this scenario; it names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Function names a builtin in the compiler registry.
	Function string `yaml:"function"`

	// Iterations is the fixed repetition count for the built loop.
	Iterations int `yaml:"iterations"`

	// Inputs are probe values evaluated in order through the checked
	// function before the loop is built.
	Inputs []int64 `yaml:"inputs,omitempty"`

	// Expect specifies the expected behavior. A nil Expect means the
	// scenario passes iff no violation occurs.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected pipeline behavior. Exactly one of
// Outputs or Violation should be set.
type ExpectClause struct {
	// Outputs are the expected probe results, in input order.
	Outputs []int64 `yaml:"outputs,omitempty"`

	// Violation is the expected violation code (e.g.
	// "IRREVERSIBLE_FUNCTION"). The scenario passes iff the pipeline
	// fails with exactly this code.
	Violation string `yaml:"violation,omitempty"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Function == "" {
		return nil, fmt.Errorf("scenario %s: function is required", path)
	}
	return &s, nil
}
