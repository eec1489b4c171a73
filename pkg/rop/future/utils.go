package future

import (
	"context"

	"github.com/codepalette/palette/pkg/rop"
)

// AwaitAll waits for every future and returns one rop.Result per future, at the index of that future.
// A failed future yields a failure result; the other futures are still awaited.
func AwaitAll[T any](ctx context.Context, fs []*Future[T]) []rop.Result[T] {
	res := make([]rop.Result[T], 0, len(fs))

	for _, f := range fs {
		res = append(res, rop.TryCatch[T](ctx, f))
	}

	return res
}

// AwaitAllResults is AwaitAll for futures that already hold a rop.Result. A held result is returned as is,
// a failed future yields a failure result.
func AwaitAllResults[T any](ctx context.Context, fs []*Future[rop.Result[T]]) []rop.Result[T] {
	res := make([]rop.Result[T], 0, len(fs))

	for _, f := range fs {
		res = append(res, rop.TryCatchResult[T](ctx, f))
	}

	return res
}
