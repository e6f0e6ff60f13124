package retry

import (
	"context"
	"time"
)

// Predicate determines whether an error should be retried.
type Predicate func(error) bool

// Config controls retry behavior. Delays grow linearly: the wait after
// attempt n is Backoff * n.
type Config struct {
	// Attempts is the total number of tries, including the first. Values
	// below 1 are treated as 1.
	Attempts int

	// Backoff is the base delay between attempts.
	Backoff time.Duration

	// Sleep waits between attempts. Tests substitute a recording stub;
	// when nil, a context-aware time.Sleep equivalent is used.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() Config {
	return Config{
		Attempts: 3,
		Backoff:  time.Second,
	}
}

// Do executes fn until it succeeds, the attempts are exhausted, or
// shouldRetry rejects the error. A nil shouldRetry retries everything.
func Do(ctx context.Context, config Config, shouldRetry Predicate, fn func() error) error {
	if config.Attempts < 1 {
		config.Attempts = 1
	}
	wait := config.Sleep
	if wait == nil {
		wait = sleep
	}

	var err error
	for attempt := 1; attempt <= config.Attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		if attempt == config.Attempts || (shouldRetry != nil && !shouldRetry(err)) {
			return err
		}

		delay := config.Backoff * time.Duration(attempt)
		if delay <= 0 {
			continue
		}
		if werr := wait(ctx, delay); werr != nil {
			return werr
		}
	}

	return err
}

func sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
