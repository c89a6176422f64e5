// Package store provides durable storage for qloop evaluation traces.
//
// A trace row records one call through a checked function: which
// function, which input, what came out (or which rule it violated), and
// a logical sequence number within its run. Traces exist for audit and
// inspection only - the rule checkers never read them back, and ledger
// state stays in-memory and instance-scoped regardless of tracing.
//
// Uses SQLite with WAL mode for concurrent read access.
package store
