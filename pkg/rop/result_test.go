package rop

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	require := require.New(t)

	r := Success(42, "msg")
	require.True(r.IsSuccess())
	require.False(r.IsFailure())
	require.Equal(42, r.Data())
	require.Equal("msg", r.Message())
	require.True(r.HasMessage())
	require.NoError(r.Err())
	require.NotEqual(uuid.Nil, r.Id())
	require.False(r.CreatedAt().IsZero())
}

func TestSuccessWithoutMessage(t *testing.T) {
	require := require.New(t)

	r := Success("x")
	require.True(r.IsSuccess())
	require.Equal("x", r.Data())
	require.False(r.HasMessage())
	require.Empty(r.Message())
	require.NoError(r.Err())
}

func TestSuccessKeepsNilData(t *testing.T) {
	require := require.New(t)

	r := Success[*int](nil)
	require.True(r.IsSuccess())
	require.Nil(r.Data())
}

func TestFailureSynthesizesError(t *testing.T) {
	require := require.New(t)

	r := Failure[int]("msg")
	require.True(r.IsFailure())
	require.Equal(0, r.Data())
	require.Equal("msg", r.Message())
	require.Error(r.Err())
	require.Equal("msg", r.Err().Error())

	r = Failure[int]("nil given", nil)
	require.Error(r.Err())
	require.Equal("nil given", r.Err().Error())
}

func TestFailureKeepsCustomError(t *testing.T) {
	require := require.New(t)

	custom := errors.New("custom")
	r := Failure[string]("msg", custom)
	require.False(r.IsSuccess())
	require.Empty(r.Data())
	require.Equal("msg", r.Message())
	require.Same(custom, r.Err())
}

type code int

func TestFailWithCustomErrorType(t *testing.T) {
	require := require.New(t)

	r := Fail[string, code]("not found", 404)
	require.True(r.IsFailure())
	require.Equal(code(404), r.Err())
	require.Equal("not found", r.Message())

	s := Succeed[string, code]("ok")
	require.Equal(code(0), s.Err())
}

func TestFailFromKeepsIdentity(t *testing.T) {
	require := require.New(t)

	custom := errors.New("custom")
	in := Failure[int]("msg", custom)
	out := FailFrom[int, string](in)

	require.True(out.IsFailure())
	require.Equal(in.Id(), out.Id())
	require.Equal(in.CreatedAt(), out.CreatedAt())
	require.Equal("msg", out.Message())
	require.Same(custom, out.Err())
	require.Empty(out.Data())
}

func TestRecovered(t *testing.T) {
	require := require.New(t)

	err := Recovered("boom")
	require.True(PanicError.Has(err))
	require.Equal("panic: boom", err.Error())

	cause := errors.New("cause")
	err = Recovered(cause)
	require.True(PanicError.Has(err))
	require.Contains(err.Error(), "cause")
}
