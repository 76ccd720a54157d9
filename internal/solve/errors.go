package solve

import (
	"errors"
	"fmt"

	"github.com/example/sketchcalc/internal/encode"
	"github.com/example/sketchcalc/internal/recognize"
)

// Kind classifies a failed submission.
type Kind int

const (
	// KindValidation covers local checks that stop a submission before any
	// network call.
	KindValidation Kind = iota
	// KindNetwork covers transport failures reaching the endpoint.
	KindNetwork
	// KindResponseFormat covers replies without a usable data list.
	KindResponseFormat
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindResponseFormat:
		return "response format"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified submission failure. None of them end the session.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("%s error: %v", e.Kind, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

const (
	msgEmpty    = "Error: Please draw something before running."
	msgInvalid  = "Error: Image data is invalid."
	msgNetwork  = "Network error. Check backend server."
	msgResponse = "Error: Unexpected backend response."
)

// classify wraps err in an *Error unless it already is one or reports a
// stale reply.
func classify(err error) error {
	if err == nil || errors.Is(err, recognize.ErrStale) {
		return err
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	switch {
	case errors.Is(err, encode.ErrEmptySurface), errors.Is(err, encode.ErrEncoding):
		return &Error{Kind: KindValidation, Err: err}
	case errors.Is(err, recognize.ErrMalformedResponse):
		return &Error{Kind: KindResponseFormat, Err: err}
	default:
		return &Error{Kind: KindNetwork, Err: err}
	}
}

// UserMessage returns the status text shown for err, or "" for nil and
// stale replies.
func UserMessage(err error) string {
	if err == nil || errors.Is(err, recognize.ErrStale) {
		return ""
	}
	switch {
	case errors.Is(err, encode.ErrEmptySurface):
		return msgEmpty
	case errors.Is(err, encode.ErrEncoding):
		return msgInvalid
	}
	var se *Error
	if errors.As(err, &se) {
		switch se.Kind {
		case KindValidation:
			return msgInvalid
		case KindResponseFormat:
			return msgResponse
		}
		return msgNetwork
	}
	if errors.Is(err, recognize.ErrMalformedResponse) {
		return msgResponse
	}
	return msgNetwork
}
