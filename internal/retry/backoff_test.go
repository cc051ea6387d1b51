package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		MaxRetries: 2,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
		Multiplier: 2.0,
		Jitter:     false,
		LogRetries: false,
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries=3, got %d", config.MaxRetries)
	}
	if config.BaseDelay != time.Second {
		t.Errorf("Expected BaseDelay=1s, got %v", config.BaseDelay)
	}
	if config.MaxDelay != 30*time.Second {
		t.Errorf("Expected MaxDelay=30s, got %v", config.MaxDelay)
	}
	if !config.Jitter {
		t.Error("Expected Jitter=true")
	}
}

func TestLLMConfig(t *testing.T) {
	config := LLMConfig()

	if config.BaseDelay != 2*time.Second {
		t.Errorf("Expected BaseDelay=2s, got %v", config.BaseDelay)
	}
	if config.MaxDelay != 60*time.Second {
		t.Errorf("Expected MaxDelay=60s, got %v", config.MaxDelay)
	}
	if config.Multiplier != 2.5 {
		t.Errorf("Expected Multiplier=2.5, got %f", config.Multiplier)
	}
}

func TestDoSuccessFirstAttempt(t *testing.T) {
	result := Do(context.Background(), testConfig(), func() error {
		return nil
	})

	if !result.Success {
		t.Error("Expected success=true")
	}
	if result.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", result.Attempts)
	}
	if result.LastError != nil {
		t.Errorf("Expected no error, got %v", result.LastError)
	}
}

func TestDoRetriesRetryableError(t *testing.T) {
	calls := 0
	result := Do(context.Background(), testConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("429 too many requests")
		}
		return nil
	})

	if !result.Success {
		t.Error("Expected eventual success")
	}
	if result.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", result.Attempts)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	result := Do(context.Background(), testConfig(), func() error {
		calls++
		return errors.New("invalid api key")
	})

	if result.Success {
		t.Error("Expected failure")
	}
	if calls != 1 {
		t.Errorf("Expected 1 call for non-retryable error, got %d", calls)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	calls := 0
	result := Do(context.Background(), testConfig(), func() error {
		calls++
		return errors.New("service unavailable")
	})

	if result.Success {
		t.Error("Expected failure")
	}
	if calls != 3 {
		t.Errorf("Expected MaxRetries+1=3 calls, got %d", calls)
	}
	if result.LastError == nil {
		t.Error("Expected LastError to be set")
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	result := Do(ctx, testConfig(), func() error {
		calls++
		cancel()
		return errors.New("timeout")
	})

	if result.Success {
		t.Error("Expected failure after cancellation")
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
	if !errors.Is(result.LastError, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", result.LastError)
	}
}

func TestCalculateDelayExponentialGrowth(t *testing.T) {
	config := testConfig()

	d0 := calculateDelay(config, 0)
	d1 := calculateDelay(config, 1)
	d2 := calculateDelay(config, 2)

	if d0 != 10*time.Millisecond {
		t.Errorf("Expected 10ms, got %v", d0)
	}
	if d1 != 20*time.Millisecond {
		t.Errorf("Expected 20ms, got %v", d1)
	}
	if d2 != 40*time.Millisecond {
		t.Errorf("Expected 40ms, got %v", d2)
	}
}

func TestCalculateDelayCapped(t *testing.T) {
	config := testConfig()

	if d := calculateDelay(config, 10); d != config.MaxDelay {
		t.Errorf("Expected cap at %v, got %v", config.MaxDelay, d)
	}
}

func TestIsRetryableError(t *testing.T) {
	retryable := []string{
		"429 Too Many Requests",
		"rate limit exceeded",
		"Quota exceeded for model",
		"connection refused",
		"context deadline exceeded: timeout",
		"502 bad gateway",
	}
	for _, msg := range retryable {
		if !IsRetryableError(errors.New(msg)) {
			t.Errorf("Expected %q to be retryable", msg)
		}
	}

	nonRetryable := []string{
		"invalid api key",
		"model not found",
		"prompt too long",
	}
	for _, msg := range nonRetryable {
		if IsRetryableError(errors.New(msg)) {
			t.Errorf("Expected %q to be non-retryable", msg)
		}
	}
}

func TestIsRetryableErrorNil(t *testing.T) {
	if IsRetryableError(nil) {
		t.Error("nil error must not be retryable")
	}
}
