package rop

import (
	"encoding/json"

	"github.com/zeebo/errs"
)

type envelope struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Data    any     `json:"data"`
	Error   any     `json:"error"`
}

// MarshalJSON encodes r as {"success", "message", "data", "error"}. The
// message is left out when none was given and errors are encoded by text.
func (r Response[T, E]) MarshalJSON() ([]byte, error) {
	env := envelope{Success: r.isSuccess}
	if r.hasMessage {
		msg := r.message
		env.Message = &msg
	}
	if r.isSuccess {
		env.Data = r.data
	} else {
		env.Error = encodeError(r.err)
	}
	return json.Marshal(env)
}

func encodeError(e any) any {
	if IsNil(e) {
		return nil
	}
	if err, ok := e.(error); ok {
		return err.Error()
	}
	return e
}

// Decode reads a JSON payload coming from outside. An object whose "success"
// key holds a bool is read as a result envelope, any other payload is read
// as T and wrapped as a success.
func Decode[T any](raw []byte) (Result[T], error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err == nil {
		var success *bool
		if json.Unmarshal(fields[successKey], &success) == nil && success != nil {
			return decodeEnvelope[T](*success, fields)
		}
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return Result[T]{}, errs.Wrap(err)
	}
	return Success(data, DefaultSuccessMessage), nil
}

func decodeEnvelope[T any](success bool, fields map[string]json.RawMessage) (Result[T], error) {
	var message *string
	if raw, ok := fields[messageKey]; ok {
		if err := json.Unmarshal(raw, &message); err != nil {
			return Result[T]{}, errs.New("invalid %q field: %v", messageKey, err)
		}
	}

	if success {
		var data T
		if raw, ok := fields[dataKey]; ok {
			if err := json.Unmarshal(raw, &data); err != nil {
				return Result[T]{}, errs.New("invalid %q field: %v", dataKey, err)
			}
		}
		if message != nil {
			return Success(data, *message), nil
		}
		return Success(data), nil
	}

	msg := DefaultErrorMessage
	if message != nil {
		msg = *message
	}
	return Failure[T](msg, decodeError(fields[errorKey])), nil
}

func decodeError(raw json.RawMessage) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return errs.New("%s", text)
	}
	return errs.New("%s", string(raw))
}
