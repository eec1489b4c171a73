package rop

import (
	"context"

	"github.com/codepalette/palette/internal/logging"
)

// TryCatch waits for operation and wraps its value as a success with the
// default message. An error or a panic raised by the operation becomes a
// failure with the default error message and is logged. TryCatch itself
// never panics.
func TryCatch[T any](ctx context.Context, operation Awaiter[T]) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = caught[T](ctx, Recovered(r), true)
		}
	}()

	data, err := operation.Get(ctx)
	if err != nil {
		return caught[T](ctx, err, false)
	}

	return Success(data, DefaultSuccessMessage)
}

// TryCatchResult is TryCatch for operations that already produce a Result.
// A produced Result is returned as is, so it is never wrapped twice.
func TryCatchResult[T any](ctx context.Context, operation Awaiter[Result[T]]) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = caught[T](ctx, Recovered(r), true)
		}
	}()

	produced, err := operation.Get(ctx)
	if err != nil {
		return caught[T](ctx, err, false)
	}

	return produced
}

// TryCatchAny is TryCatch for operations whose value type is unknown. A value
// that Probe recognizes as a result passes through, anything else is wrapped.
func TryCatchAny(ctx context.Context, operation Awaiter[any]) (res Untyped) {
	defer func() {
		if r := recover(); r != nil {
			res = caught[any](ctx, Recovered(r), true).untyped()
		}
	}()

	v, err := operation.Get(ctx)
	if err != nil {
		return caught[any](ctx, err, false).untyped()
	}

	if r, ok := Probe(v); ok {
		return r
	}

	return Succeed[any, any](v, DefaultSuccessMessage)
}

func caught[T any](ctx context.Context, err error, panicked bool) Result[T] {
	res := Fail[T](DefaultErrorMessage, err)

	logging.FromContext(ctx).Error("operation failed",
		logging.Error(err),
		logging.String(logging.ResultIDKey, res.Id().String()),
		logging.Bool(logging.PanicKey, panicked))

	return res
}
