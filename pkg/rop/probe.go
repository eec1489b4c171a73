package rop

import (
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/errs"
)

const (
	successKey = "success"
	messageKey = "message"
	dataKey    = "data"
	errorKey   = "error"
)

// Probe reports whether v is already a result and returns it in untyped form.
//
// Any Response qualifies. A map qualifies as soon as its "success" key holds
// a bool; the rest of its shape is not checked, so a plain map that happens
// to carry such a key is taken for a result.
func Probe(v any) (Untyped, bool) {
	switch t := v.(type) {
	case Outcome:
		if IsNil(t) {
			return Untyped{}, false
		}
		return t.untyped(), true
	case map[string]any:
		if success, ok := t[successKey].(bool); ok {
			return fromEnvelope(success, t), true
		}
	}
	return Untyped{}, false
}

func fromEnvelope(success bool, m map[string]any) Untyped {
	r := Untyped{
		isSuccess: success,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
	if msg, ok := m[messageKey].(string); ok {
		r.message = msg
		r.hasMessage = true
	}
	if success {
		r.data = m[dataKey]
		return r
	}

	if !r.hasMessage {
		r.message = DefaultErrorMessage
		r.hasMessage = true
	}
	r.err = m[errorKey]
	if IsNil(r.err) {
		r.err = errs.New("%s", r.message)
	}
	return r
}
