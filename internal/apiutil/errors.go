package apiutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"syscall"

	"github.com/rs/zerolog/log"
)

// ErrorKind is the closed set of user-facing failure categories.
type ErrorKind string

const (
	ErrAuthenticationFailed ErrorKind = "authentication_failed"
	ErrPermissionDenied     ErrorKind = "permission_denied"
	ErrNotFound             ErrorKind = "not_found"
	ErrRateLimited          ErrorKind = "rate_limited"
	ErrServerError          ErrorKind = "server_error"
	ErrTimeout              ErrorKind = "timeout"
	ErrNetworkError         ErrorKind = "network_error"
	// ErrValidationError is never produced here; callers use it for their own
	// input checks.
	ErrValidationError ErrorKind = "validation_error"
)

var messages = map[ErrorKind]string{
	ErrAuthenticationFailed: "Authentication failed. Please log in again.",
	ErrPermissionDenied:     "You don't have permission to perform this action.",
	ErrNotFound:             "The requested resource was not found.",
	ErrRateLimited:          "Too many requests. Please wait a moment and try again.",
	ErrServerError:          "Server error. Please try again later.",
	ErrTimeout:              "Request timed out. Please try again.",
	ErrNetworkError:         "Network error. Please check your connection.",
	ErrValidationError:      "Please check your input and try again.",
}

// Message returns the fixed user-facing text for k.
func (k ErrorKind) Message() string {
	if m, ok := messages[k]; ok {
		return m
	}
	return messages[ErrServerError]
}

// FetchError wraps a failed fetch. Status is zero when no HTTP response was
// received; Timeout is set when the transport gave up waiting for one.
type FetchError struct {
	Status  int    `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Timeout bool   `json:"-"`
	Err     error  `json:"-"`
}

func (e *FetchError) Error() string {
	switch {
	case e.Status > 0 && e.Message != "":
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	case e.Status > 0:
		return fmt.Sprintf("http %d: %s", e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return e.Err.Error()
	case e.Message != "":
		return e.Message
	}
	return "fetch failed"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassifyError maps err onto the taxonomy. A nil error classifies as
// ErrNetworkError.
func ClassifyError(err error) ErrorKind {
	kind, _ := classify(err)
	return kind
}

// HandleError logs err along with scope (what was being fetched) and returns
// the message to show the user. It never fails.
func HandleError(err error, scope string) string {
	log.Error().
		Err(err).
		Str("context", scope).
		Msg("API request failed")

	kind, msg := classify(err)
	if msg != "" {
		return msg
	}
	return kind.Message()
}

// classify returns the kind plus, when the error itself carries text that
// should be shown verbatim, that text.
func classify(err error) (ErrorKind, string) {
	if err == nil {
		return ErrNetworkError, ""
	}

	var fe *FetchError
	if errors.As(err, &fe) && fe.Status > 0 {
		switch fe.Status {
		case http.StatusUnauthorized:
			return ErrAuthenticationFailed, ""
		case http.StatusForbidden:
			return ErrPermissionDenied, ""
		case http.StatusNotFound:
			return ErrNotFound, ""
		case http.StatusTooManyRequests:
			return ErrRateLimited, ""
		case http.StatusInternalServerError:
			return ErrServerError, ""
		default:
			return ErrServerError, fe.Message
		}
	}

	if isTimeout(err) || (fe != nil && fe.Timeout) {
		return ErrTimeout, ""
	}

	if isTransport(err) {
		return ErrNetworkError, ""
	}

	if msg := err.Error(); msg != "" {
		return ErrServerError, msg
	}
	return ErrNetworkError, ""
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isTransport(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue)
}
