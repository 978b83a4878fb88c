package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a network backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// transientError marks a backend failure worth another attempt, such as a
// dropped connection or a server-side timeout.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Retryable marks err as transient. A nil error stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var t transientError
	return errors.As(err, &t)
}

const retryAttempts = 3

// retryDelay is the wait before the second attempt. It doubles after each
// failure.
var retryDelay = time.Second

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// with [Retryable], or has been tried three times. Waiting between attempts
// stops early when ctx is done.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	err := fn()
	for attempt, delay := 1, retryDelay; attempt < retryAttempts && IsRetryable(err); attempt, delay = attempt+1, delay*2 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		err = fn()
	}
	return err
}
