package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a backend that could not be reached.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrCacheMiss is returned by [GetJSON] when no usable entry exists.
	ErrCacheMiss = errors.New("cache miss")
)

type retryable struct{ err error }

func (r retryable) Error() string { return r.err.Error() }
func (r retryable) Unwrap() error { return r.err }

// Retryable marks err as transient for [Backoff.Do].
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r)
}

// Backoff retries an operation with doubling delays.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// connectBackoff is used by the network backends while connecting.
var connectBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do runs fn until it succeeds, fails with an error not marked retryable, or
// runs out of attempts. The last error is returned.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}

// GetJSON decodes the entry at key into v. A missing or undecodable entry
// yields [ErrCacheMiss]; backend failures are returned as is.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit || json.Unmarshal(data, v) != nil {
		return ErrCacheMiss
	}
	return nil
}
