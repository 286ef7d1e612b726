package hn

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ClientError. The taxonomy is closed: every
// failure a client call can raise is one of these four kinds.
type ErrorKind string

const (
	// KindNetwork covers transport failures (DNS, connection refused).
	KindNetwork ErrorKind = "network"

	// KindTimeout means the configured request timeout elapsed.
	KindTimeout ErrorKind = "timeout"

	// KindStatus means the upstream responded with a non-2xx status.
	KindStatus ErrorKind = "status"

	// KindDecode means the response body was not valid JSON.
	KindDecode ErrorKind = "decode"
)

// ClientError is the single error type raised by Client operations. It
// carries the kind discriminant, the HTTP status code for KindStatus,
// and the wrapped cause. Clean not-found results are nil returns, not
// errors.
type ClientError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *ClientError) Error() string {
	if e.Kind == KindStatus && e.StatusCode > 0 {
		return fmt.Sprintf("hackernews api: HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("hackernews api: %s: %v", e.Kind, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func newClientError(kind ErrorKind, statusCode int, err error) *ClientError {
	return &ClientError{Kind: kind, StatusCode: statusCode, Err: err}
}

// IsTimeout reports whether err is a client timeout error.
func IsTimeout(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Kind == KindTimeout
}

// StatusCode returns the HTTP status code carried by err, or 0 when
// err is not a status error.
func StatusCode(err error) int {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Kind == KindStatus {
		return ce.StatusCode
	}
	return 0
}

// IsTransient reports whether err is worth retrying by a caller that
// chooses to: timeouts and upstream 429/5xx responses. The client
// itself never retries.
func IsTransient(err error) bool {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Kind {
	case KindTimeout:
		return true
	case KindStatus:
		return ce.StatusCode == 429 || ce.StatusCode >= 500
	}
	return false
}
