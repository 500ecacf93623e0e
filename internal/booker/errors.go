package booker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"

	"github.com/mwork/booker-qa/internal/pkg/validator"
)

var (
	// ErrAuthentication is returned when /auth rejects the credentials
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound is returned for 404 on a booking id
	ErrNotFound = errors.New("not found")

	// ErrMethodNotAllowed is returned for 405, which the service answers on
	// deleting an id that is already gone
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrBadRequest is returned for 400-class validation rejections
	ErrBadRequest = errors.New("bad request")

	// ErrForbidden is returned for 401/403 on mutating calls without a valid token
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned when a response body does not have the expected shape
	ErrValidation = errors.New("response validation failed")

	// ErrUnexpectedStatus covers every other non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// HTTPError describes a non-2xx response.
type HTTPError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s http error: status=%d %s body=%s",
		e.Op, e.StatusCode, http.StatusText(e.StatusCode), truncate(e.Body, 512))
}

// Unwrap maps the status code onto the sentinel errors so callers can use errors.Is.
func (e *HTTPError) Unwrap() error {
	return statusError(e.StatusCode)
}

func statusError(code int) error {
	switch {
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return ErrBadRequest
	default:
		return ErrUnexpectedStatus
	}
}

// AuthError carries the reason the auth endpoint gave for refusing a token.
type AuthError struct {
	Reason     string
	StatusCode int
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return ErrAuthentication
}

// ValidationError lists the fields of a response body that did not match
// the expected shape.
type ValidationError struct {
	Op     string
	Fields map[string]string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s validation error: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s validation error: %s", e.Op, validator.Summary(e.Fields))
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}

func classifyRequestError(ctx context.Context, op string, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("%s timeout: %w", op, err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("%s network error: %w", op, err)
	}
	return fmt.Errorf("%s request error: %w", op, err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "...<truncated>"
	}
	return s
}
