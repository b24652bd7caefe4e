package ledger

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrGroupNotFound is returned per element when a queried group id is not on
// the ledger.
var ErrGroupNotFound = errors.New("group not found")

// TransientError marks a failure worth retrying: network trouble, timeouts,
// or a ledger node answering 5xx. Ledger rule rejections are never wrapped.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient ledger error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as retryable. Returns nil for nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err should be retried with backoff rather than
// surfaced as a terminal failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
