// Package harness executes declarative conformance scenarios against
// the rule-checking pipeline.
//
// A scenario names a builtin function, an iteration count, and probe
// inputs, plus an expectation: either the outputs the probes should
// produce or the violation code the pipeline should fail with. The
// harness wraps the function, evaluates the probes, builds the bounded
// repetition, and returns an ordered trace of everything observed.
//
// Traces serialize to canonical JSON and compare against golden files
// via goldie, making scenario behavior the tested source of truth.
package harness
