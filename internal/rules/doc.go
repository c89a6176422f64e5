// Package rules enforces the three physical constraints a classical
// function must satisfy before it can be embedded in a quantum
// composition:
//
//   - Reversibility: the function must be injective. Enforced at runtime
//     by a per-wrap ledger of observed output->input pairs. This is a
//     counterexample detector, not a proof: it refutes injectivity from
//     collisions seen so far and can never establish it over an
//     unbounded domain. CheckBijectiveOn offers the stronger exhaustive
//     alternative for finite domains.
//
//   - Information preservation: the function must never discard its
//     inputs entirely. Approximated as "the result is never absent";
//     partial information loss is out of scope of the rule's
//     operational definition.
//
//   - Control-flow uniformity: the function body must be a fixed,
//     data-independent operation sequence. Enforced once at decoration
//     time by a visitor over the body AST rejecting the forbidden
//     node kinds (if/while/break/continue).
//
// The three checks are independent: each inspects only what it owns
// (ledger, result value, body AST) and they compose in any order.
//
// Checker state is instance-scoped. Wrapping the same function twice
// yields two independent ledgers; there are no process-wide registries.
// Wrapped functions are not safe for concurrent use - the ledger is
// read-then-written without serialization and callers needing
// concurrency must serialize access themselves.
package rules
