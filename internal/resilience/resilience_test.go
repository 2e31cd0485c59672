package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flaky struct{ retry bool }

func (f flaky) Error() string   { return "flaky" }
func (f flaky) Retryable() bool { return f.retry }

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func TestWithBackoff_RetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastRetry(3), func() error {
		calls++
		if calls < 3 {
			return flaky{retry: true}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoff_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastRetry(5), func() error {
		calls++
		return flaky{retry: false}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "flaky", err.Error())
}

func TestWithBackoff_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastRetry(2), func() error {
		calls++
		return flaky{retry: true}
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "max retry attempts (2) exceeded")
	var f flaky
	assert.True(t, errors.As(err, &f))
}

func TestWithBackoff_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Second}
	err := WithBackoff(ctx, cfg, func() error { return flaky{retry: true} })
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(ErrCircuitOpen))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.True(t, IsRetryable(flaky{retry: true}))
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	cfg := BreakerConfig{Name: "test", MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 0.5, MinRequests: 2}
	b := NewBreaker(cfg, nil)
	boom := errors.New("boom")

	assert.ErrorIs(t, b.Do(func() error { return boom }), boom)
	assert.ErrorIs(t, b.Do(func() error { return boom }), boom)
	assert.True(t, b.IsOpen())

	ran := false
	err := b.Do(func() error { ran = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, ran)
}

func TestBreaker_IgnoresNonFailures(t *testing.T) {
	cfg := BreakerConfig{Name: "test", MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 0.5, MinRequests: 1}
	notFound := errors.New("not found")
	b := NewBreaker(cfg, func(err error) bool { return !errors.Is(err, notFound) })

	for range 5 {
		assert.ErrorIs(t, b.Do(func() error { return notFound }), notFound)
	}
	assert.False(t, b.IsOpen())
	assert.Equal(t, "closed", b.State())
}
