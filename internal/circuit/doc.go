// Package circuit provides the structural-unit layer that consumes
// validated functions: named fixed-width units, ordered compositions of
// units, and an ASCII renderer.
//
// This layer is illustrative plumbing, not logic. It performs no real
// reversible-logic synthesis and no state-evolution simulation; the
// Placeholder synthesizer emits the same fixed two-wire exchange unit
// for every function and says so loudly in its documentation. Callers
// that need faithful synthesis must supply their own Synthesizer.
package circuit
