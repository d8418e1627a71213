package retrylimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		RateLimitDelay: time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestWithRetrySucceedsEventually(t *testing.T) {
	attempts := 0
	err := WithRetryConfig(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, nil, fastConfig())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryStopsOnFatal(t *testing.T) {
	attempts := 0
	fatal := &FatalError{Err: errors.New("missing permissions")}

	err := WithRetryConfig(context.Background(), func() error {
		attempts++
		return fatal
	}, nil, fastConfig())

	assert.Equal(t, 1, attempts)
	assert.Equal(t, fatal, err)
	assert.EqualError(t, err, "missing permissions")
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := WithRetryConfig(context.Background(), func() error {
		attempts++
		return errors.New("always")
	}, nil, fastConfig())

	require.Error(t, err)
	assert.Equal(t, 5, attempts)
	assert.Contains(t, err.Error(), "max attempts")
	assert.ErrorContains(t, err, "always")
}

func TestWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error { return errors.New("never reached") }, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestThrottlingCutsLimiter(t *testing.T) {
	lim := NewAdaptiveLimiter(8, 1, 20, 1, 0.5)
	attempts := 0

	cfg := fastConfig()
	err := WithRetryConfig(context.Background(), func() error {
		attempts++
		if attempts == 1 {
			return &StatusError{Code: 429, Err: errors.New("rate limited")}
		}
		return nil
	}, lim, cfg)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 4.0, lim.CurrentLimit())
}

func TestAdaptiveLimiterBounds(t *testing.T) {
	lim := NewAdaptiveLimiter(2, 1, 4, 1, 0.5)

	// repeated throttling never drops below min
	for i := 0; i < 10; i++ {
		lim.Throttled()
	}
	assert.Equal(t, 1.0, lim.CurrentLimit())

	// success within 10s of a throttle does not raise the rate
	lim.Success()
	assert.Equal(t, 1.0, lim.CurrentLimit())
}

func TestStatusErrorUnwraps(t *testing.T) {
	base := errors.New("boom")
	err := &StatusError{Code: 502, Err: base}

	assert.ErrorIs(t, err, base)
	assert.Equal(t, 502, err.StatusCode())
	assert.True(t, isServerError(err))
	assert.False(t, isRateLimit(err))
}

func TestRetryLogf(t *testing.T) {
	var lines []string
	cfg := fastConfig()
	cfg.Logf = func(format string, args ...any) {
		lines = append(lines, format)
	}

	attempts := 0
	err := WithRetryConfig(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	}, nil, cfg)

	require.NoError(t, err)
	assert.NotEmpty(t, lines)
}
