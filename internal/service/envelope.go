package service

import (
	"errors"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

// Envelope wraps successful JSON output.
type Envelope struct {
	Data any `json:"data"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

const (
	ErrCodeNotFound = "not_found"
	ErrCodeFailed   = "command_failed"
)

func NewEnvelope(data any) Envelope {
	return Envelope{Data: data}
}

func NewErrorEnvelope(err error, details any) ErrorEnvelope {
	code := ErrCodeFailed
	if errors.Is(err, store.ErrNotFound) {
		code = ErrCodeNotFound
	}
	return ErrorEnvelope{Error: ErrorBody{Code: code, Message: err.Error(), Details: details}}
}
