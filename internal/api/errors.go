package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed call.
type ErrorKind string

const (
	// ErrTransport means no response was received.
	ErrTransport ErrorKind = "transport"
	// ErrRemote means the service answered with a non-2xx status.
	ErrRemote ErrorKind = "remote"
)

// DefaultMessage is used when a failure carries no usable text.
const DefaultMessage = "An error occurred"

// Error is returned by Client for every failed call.
type Error struct {
	Kind       ErrorKind
	StatusCode int // 0 for transport errors
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// remoteError builds an Error from a non-2xx response. The message is
// taken from the body's "error" field, then its "message" field, then
// the status code.
func remoteError(status int, body errorBody) *Error {
	msg := strings.TrimSpace(body.Error)
	if msg == "" {
		msg = strings.TrimSpace(body.Message)
	}
	if msg == "" && status > 0 {
		msg = fmt.Sprintf("Request failed with status code %d", status)
	}
	if msg == "" {
		msg = DefaultMessage
	}
	return &Error{Kind: ErrRemote, StatusCode: status, Message: msg}
}

func transportError(err error) *Error {
	msg := DefaultMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: ErrTransport, Message: msg, Cause: err}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FieldProblem names one rejected input field.
type FieldProblem struct {
	Field   string
	Problem string
}

// ValidationError is returned before anything is sent when the input
// cannot form a valid request.
type ValidationError struct {
	Fields []FieldProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Problem)
			continue
		}
		parts = append(parts, f.Field+" "+f.Problem)
	}
	if len(parts) == 0 {
		return "invalid request"
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Message extracts the single user-facing message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultMessage
}
