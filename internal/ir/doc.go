// Package ir provides the foundational representation types for qloop.
//
// This package contains type definitions, the function-body AST, and
// canonical JSON serialization. All other internal packages import ir;
// ir imports nothing internal. This keeps the representation layer free
// of circular dependencies.
//
// Key design constraints:
//   - All classical values are int64 - no floats anywhere (floats break
//     deterministic golden comparison and have no place in a bit-level
//     reversibility model)
//   - The "absent" result is an explicit Value variant, never a nil
//     interface
//   - Function bodies are tagged-variant AST nodes; control-flow
//     constructs are node kinds of their own so rule checkers can reject
//     them structurally instead of scraping identifier text
package ir
