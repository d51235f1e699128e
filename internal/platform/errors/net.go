package errors

// Transport helpers for classifying HTTP client failures and retry semantics

import (
	"context"
	stderrs "errors"
	"net"
	"net/http"
	"strings"
)

// FromStatus maps an unexpected HTTP response status to an ErrorCode
func FromStatus(status int) ErrorCode {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrorCodeTooManyRequests
	case status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		return ErrorCodeUnavailable
	case status == http.StatusNotFound, status == http.StatusGone:
		return ErrorCodeNotFound
	default:
		return ErrorCodeUnknown
	}
}

// FromTransport wraps a client transport error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromTransport(err error, msg string) error {
	if err == nil {
		return nil
	}
	var ne net.Error
	if stderrs.As(err, &ne) && ne.Timeout() {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	var dnsErr *net.DNSError
	if stderrs.As(err, &dnsErr) {
		if dnsErr.IsTemporary {
			return Wrap(err, ErrorCodeUnavailable, msg)
		}
		return Wrap(err, ErrorCodeNotFound, msg)
	}
	var opErr *net.OpError
	if stderrs.As(err, &opErr) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return Wrap(err, ErrorCodeUnknown, msg)
}

// IsRetryable reports whether a transport error represents a transient condition
// worth retrying: rate limiting, transient upstream status, timeouts, and reset connections
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Do not retry local cancellations/timeouts; let the caller decide higher-level retries
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	switch CodeOf(err) {
	case ErrorCodeUnavailable, ErrorCodeTooManyRequests:
		return true
	case ErrorCodeNotFound, ErrorCodeInvalidArgument:
		return false
	}

	root := Root(err)
	var ne net.Error
	if stderrs.As(root, &ne) && ne.Timeout() {
		return true
	}

	s := strings.ToLower(root.Error())
	switch {
	case strings.Contains(s, "connection reset by peer"),
		strings.Contains(s, "broken pipe"),
		strings.Contains(s, "unexpected eof"),
		strings.Contains(s, "server closed idle connection"):
		return true
	default:
		return false
	}
}
