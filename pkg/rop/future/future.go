// Package future provides a Future, a value computed asynchronously that can be
// read by any number of consumers. A channel value can only be received once;
// a Future keeps its value for every reader.
//
// A Future satisfies rop.Awaiter, so it can be handed to rop.TryCatch directly.
package future

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/codepalette/palette/pkg/rop"
)

var (
	// ErrCanceled is the error reported when a future is completed by calling Cancel.
	// It matches context.Canceled, so rop.IsCanceled holds for its results.
	ErrCanceled = fmt.Errorf("future canceled: %w", context.Canceled)
)

// Func is the function signature required to start a Future via Go
type Func[T any] func(ctx context.Context) (T, error)

// Future is a structure that represents an asynchronous computation.
// Once a future has been created it can be completed exactly once. The first completion value
// wins and all other completions are silently ignored.
//
// Get blocks until the future completes or until the context passed to it ends.
// Get can be called by multiple goroutines simultaneously and they will all receive the same value.
type Future[T any] struct {
	isCompleted atomic.Bool
	completed   chan struct{}

	value T
	err   error
}

// New creates a new uncompleted Future. It must be completed by calling Complete, Fail, or Cancel.
func New[T any]() *Future[T] {
	return &Future[T]{
		completed: make(chan struct{}),
	}
}

// Resolved creates a Future already completed with value.
func Resolved[T any](value T) *Future[T] {
	f := New[T]()
	f.Complete(value)
	return f
}

// Rejected creates a Future already failed with err.
func Rejected[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Go creates a Future that will contain the outcome of do, which starts running on its own goroutine
// right away. A panic inside do fails the future with a rop.PanicError instead of crashing the process.
func Go[T any](ctx context.Context, do Func[T]) *Future[T] {
	f := New[T]()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.Fail(rop.Recovered(r))
			}
		}()

		t, err := do(ctx)
		if err != nil {
			f.Fail(err)
			return
		}
		f.Complete(t)
	}()

	return f
}

// Complete completes this Future with the provided value. If the future has already been completed this call is ignored.
func (f *Future[T]) Complete(value T) {
	f.complete(value, nil)
}

// Cancel completes this Future with the ErrCanceled error. If the future has already been completed this call is ignored.
func (f *Future[T]) Cancel() {
	f.Fail(ErrCanceled)
}

// Fail completes this Future with the provided error. If the future has already been completed this call is ignored.
func (f *Future[T]) Fail(err error) {
	f.complete(*new(T), err)
}

func (f *Future[T]) complete(val T, err error) {
	if f.isCompleted.CompareAndSwap(false, true) {
		f.value = val
		f.err = err
		close(f.completed)
	}
}

// Done is closed once the future is completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.completed
}

// Get retrieves the value of this Future. If the future is not yet completed this call will block until the future is
// completed or until the provided context ends, in which case the context error is returned. The computation itself
// keeps running.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.completed:
		return f.value, f.err
	default:
	}

	select {
	case <-f.completed:
		return f.value, f.err
	case <-ctx.Done():
		return *new(T), ctx.Err()
	}
}
