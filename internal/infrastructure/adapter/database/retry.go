package database

import (
	"context"
	"strings"
	"time"

	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// RetryConfig bounds how often and how long a transient failure is retried
type RetryConfig struct {
	MaxAttempts  int
	BaseInterval time.Duration
	MaxInterval  time.Duration
	// JitterFactor spreads concurrent retries apart (0.0-1.0)
	JitterFactor float64
}

// DefaultRetryConfig covers startup races like the database container still
// coming up when migrations run
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  5,
		BaseInterval: 100 * time.Millisecond,
		MaxInterval:  2 * time.Second,
		JitterFactor: 0.2,
	}
}

// RetryOnTransientError runs the operation, retrying with exponential backoff
// while the error looks transient. Permanent errors return immediately.
func RetryOnTransientError(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	logger coreport.Logger,
) error {
	var err error
	var attempt int

	for attempt = 0; attempt < config.MaxAttempts; attempt++ {
		err = operation()
		if err == nil {
			return nil
		}

		if !isTransientError(err) {
			return err
		}

		backoff := backoffWithJitter(attempt, config)
		logger.Warn("Retrying after transient database error", map[string]any{
			"attempt":      attempt + 1,
			"max_attempts": config.MaxAttempts,
			"backoff":      backoff.String(),
			"error":        err.Error(),
		})

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			logger.Warn("Retry abandoned, context canceled", map[string]any{
				"attempts": attempt + 1,
				"error":    ctx.Err().Error(),
			})
			return ctx.Err()
		}
	}

	logger.Error("Operation still failing after all retry attempts", map[string]any{
		"attempts": attempt,
		"error":    err.Error(),
	})

	return err
}

func backoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.BaseInterval * (1 << uint(attempt))
	if backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		jitter := time.Duration(float64(backoff) * config.JitterFactor * (float64(time.Now().UnixNano()%100) / 100.0))
		backoff += jitter
	}

	return backoff
}

// isTransientError matches failures worth retrying: lock contention and
// connectivity drops, not constraint or syntax errors
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	message := strings.ToLower(err.Error())
	for _, marker := range []string{
		"deadlock",
		"serialization",
		"lock timeout",
		"timeout",
		"connection reset",
		"connection refused",
		"too many connections",
		"server closed",
		"broken pipe",
		"eof",
	} {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
