package rop

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Awaiter is a deferred computation that eventually yields a value or an error.
type Awaiter[T any] interface {
	// Get blocks until the value is available
	Get(ctx context.Context) (T, error)
}

// Func adapts a plain function to an Awaiter. The function runs on Get.
type Func[T any] func(ctx context.Context) (T, error)

func (f Func[T]) Get(ctx context.Context) (T, error) {
	return f(ctx)
}

// Outcome is implemented by every Response, whatever its type parameters.
type Outcome interface {
	// IsSuccess returns true if the operation was successful
	IsSuccess() bool
	// Message returns the human readable note
	Message() string
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
	Id() uuid.UUID

	untyped() Untyped
}
