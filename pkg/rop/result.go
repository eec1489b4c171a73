package rop

import (
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/errs"
)

const (
	DefaultSuccessMessage = "Success"
	DefaultErrorMessage   = "Error"
)

// Response is the outcome of a single operation attempt: either a success
// carrying data or a failure carrying an error. Exactly one of the two is set.
type Response[T, E any] struct {
	id         uuid.UUID
	createdAt  time.Time
	data       T
	err        E
	message    string
	hasMessage bool
	isSuccess  bool
}

// Result is a Response whose failure payload is a plain error.
type Result[T any] = Response[T, error]

// Untyped is the Response shape used where values arrive as any.
type Untyped = Response[any, any]

func Succeed[T, E any](data T, message ...string) Response[T, E] {
	r := Response[T, E]{
		data:      data,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
	if len(message) > 0 {
		r.message = message[0]
		r.hasMessage = true
	}
	return r
}

func Fail[T, E any](message string, err E) Response[T, E] {
	return Response[T, E]{
		err:        err,
		message:    message,
		hasMessage: true,
		isSuccess:  false,
		createdAt:  time.Now().UTC(),
		id:         uuid.New(),
	}
}

// Success builds a successful Result around data. The message is optional.
func Success[T any](data T, message ...string) Result[T] {
	return Succeed[T, error](data, message...)
}

// Failure builds a failed Result. When no non-nil error is given one is made
// from the message so that Err is never nil on a failure.
func Failure[T any](message string, err ...error) Result[T] {
	var cause error
	if len(err) > 0 {
		cause = err[0]
	}
	if IsNil(cause) {
		cause = errs.New("%s", message)
	}
	return Fail[T](message, cause)
}

func (r Response[T, E]) Data() T {
	return r.data
}

func (r Response[T, E]) Err() E {
	return r.err
}

// Message returns the human readable note, empty when none was given.
func (r Response[T, E]) Message() string {
	return r.message
}

func (r Response[T, E]) HasMessage() bool {
	return r.hasMessage
}

func (r Response[T, E]) IsSuccess() bool {
	return r.isSuccess
}

func (r Response[T, E]) IsFailure() bool {
	return !r.isSuccess
}

func (r Response[T, E]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Response[T, E]) Id() uuid.UUID {
	return r.id
}

func (r Response[T, E]) untyped() Untyped {
	u := Untyped{
		id:         r.id,
		createdAt:  r.createdAt,
		message:    r.message,
		hasMessage: r.hasMessage,
		isSuccess:  r.isSuccess,
	}
	if r.isSuccess {
		u.data = r.data
	} else {
		u.err = r.err
	}
	return u
}

// FailFrom carries a failure over to another data type, keeping its
// identity, message and error.
func FailFrom[In, Out, E any](from Response[In, E]) Response[Out, E] {
	return Response[Out, E]{
		err:        from.err,
		message:    from.message,
		hasMessage: from.hasMessage,
		isSuccess:  false,
		createdAt:  from.createdAt,
		id:         from.id,
	}
}

// IsCanceled reports whether r failed because a context ended.
func IsCanceled[T any](r Result[T]) bool {
	return r.IsFailure() && IsCancellationError(r.Err())
}
