package rop

import "github.com/zeebo/errs"

// PanicError is the class of errors made from recovered panics.
var PanicError = errs.Class("panic")

// Recovered turns a value returned by recover into an error of PanicError class.
func Recovered(r any) error {
	if err, ok := r.(error); ok {
		return PanicError.Wrap(err)
	}
	return PanicError.New("%v", r)
}
