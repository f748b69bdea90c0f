package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies why a remote call failed.
type Kind string

const (
	KindTransport    Kind = "transport"
	KindTimeout      Kind = "timeout"
	KindCanceled     Kind = "canceled"
	KindDecode       Kind = "decode"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindRejected     Kind = "rejected"
	KindServer       Kind = "server"
	KindUnknown      Kind = "unknown"
)

// Error is the single failure type returned by every remote operation.
type Error struct {
	Kind    Kind
	Status  int
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("remote %s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("remote %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf classifies any error; nil yields "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}
	return KindUnknown
}

// Is reports whether err is a remote failure of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the human readable message carried by err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var re *Error
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return err.Error()
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		return KindRejected
	case status >= 500:
		return KindServer
	}
	return KindUnknown
}

func transportError(op string, err error) *Error {
	kind := KindTransport
	message := "cannot reach server"
	switch {
	case errors.Is(err, context.Canceled):
		kind, message = KindCanceled, "request canceled"
	case errors.Is(err, context.DeadlineExceeded), isNetTimeout(err):
		kind, message = KindTimeout, "server did not respond in time"
	}
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
