package utils

import (
	"context"
	"errors"
	"time"
)

// MaxDelay caps the wait between two attempts.
const MaxDelay = 30 * time.Second

// Backoff retries with exponential delay. maxRetries == 0 means a single attempt.
type Backoff struct {
	base       time.Duration
	maxRetries int
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return Backoff{base: base, maxRetries: maxRetries}
}

func (b Backoff) Attempts() int { return b.maxRetries + 1 }

// Delay is the wait after failed attempt i: base*2^i, capped at MaxDelay.
func (b Backoff) Delay(i int) time.Duration {
	if b.base <= 0 {
		return 0
	}
	if b.base >= MaxDelay {
		return MaxDelay
	}
	d := b.base
	for ; i > 0; i-- {
		d *= 2
		if d >= MaxDelay {
			return MaxDelay
		}
	}
	return d
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying; Do returns it unwrapped.
func Permanent(err error) error { return permanentError{err: err} }

func (b Backoff) Do(ctx context.Context, fn func(i int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return nil
		}
		var p permanentError
		if errors.As(err, &p) {
			return p.err
		}
		if i == b.maxRetries {
			break
		}
		t := time.NewTimer(b.Delay(i))
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
	}
	return err
}
