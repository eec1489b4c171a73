// Package solo contains single-value, synchronous primitives that operate
// on rop.Result[T]. They are the building blocks for composing server
// actions without branching on every intermediate result.
//
// Highlights:
// - Succeed/Fail: construct Result[T]
// - Validate/AndValidate/ValidateAll: turn invalid input into a failure
// - Switch: move from Result[In] to Result[Out]
// - Map: transform successful values
// - Try: call a function (Out, error) through rop.TryCatch
// - Tee/DoubleTee: side-effect helpers
// - Finally: reduce to a concrete value via success/error/cancel handlers
//
// A failure travels through every primitive untouched, message and error
// included.
package solo
