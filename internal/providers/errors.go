package providers

import (
	"errors"
	"fmt"
)

// Kind categorizes failures surfaced by the dispatch layer
type Kind string

const (
	KindConfig     Kind = "config"
	KindValidation Kind = "validation"
	KindTimeout    Kind = "timeout"
	KindConnection Kind = "connection"
	KindParse      Kind = "parse"
	KindAPI        Kind = "api"
	// KindResponse covers bodies that are empty or not JSON at all
	KindResponse Kind = "response"
)

var kindLabels = map[Kind]string{
	KindConfig:     "configuration error",
	KindValidation: "validation error",
	KindTimeout:    "timeout",
	KindConnection: "connection error",
	KindParse:      "parse error",
	KindAPI:        "API error",
	KindResponse:   "invalid response",
}

// Error is the typed error returned by providers and the transport
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	label := kindLabels[e.Kind]
	if label == "" {
		label = string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", label, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error of the given kind
func NewError(kind Kind, message string, err error) *Error {
	return newError(kind, message, err)
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err wraps an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
