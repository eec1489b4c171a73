// Package tiny provides a minimal fluent Chain[T] for synchronous
// composition of rop.Result[T] values.
//
// - Start/FromValue: create a Chain
// - Then/ThenTry: compose result-returning or error-returning functions
// - Map: transform the successful value
// - RepeatUntil/While: loop a step while the chain stays successful
// - Or/And: pick among alternative chains
// - Ensure: trigger side effects
// - Finally: reduce to a concrete value via handlers
package tiny
