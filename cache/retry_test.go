package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
)

var fastRetry = RetryConfig{
	MaxRetries: 3,
	BaseDelay:  time.Millisecond,
	MaxDelay:   5 * time.Millisecond,
}

func dialError() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}

func TestWithRetry_Success(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastRetry, func() (string, error) {
		callCount++
		return "success", nil
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got %q", result)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
}

func TestWithRetry_RetryableError(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), fastRetry, func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", dialError()
		}
		return "connected", nil
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result != "connected" {
		t.Errorf("Expected 'connected', got %q", result)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestWithRetry_GivesUp(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), fastRetry, func() (int, error) {
		callCount++
		return 0, dialError()
	})

	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if callCount != fastRetry.MaxRetries+1 {
		t.Errorf("Expected %d calls, got %d", fastRetry.MaxRetries+1, callCount)
	}
}

func TestWithRetry_NonRetryableError(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), fastRetry, func() (int, error) {
		callCount++
		return 0, errors.New("WRONGPASS invalid username-password pair")
	})

	if err == nil {
		t.Fatal("Expected error")
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call for a non-retryable error, got %d", callCount)
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	callCount := 0
	_, err := WithRetry(ctx, fastRetry, func() (int, error) {
		callCount++
		return 0, nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if callCount != 0 {
		t.Errorf("Expected no calls, got %d", callCount)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"dial", dialError(), true},
		{"wrapped dial", fmt.Errorf("ping redis: %w", dialError()), true},
		{"plain", errors.New("boom"), false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("ping: %w", context.DeadlineExceeded), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryConfig_Delay(t *testing.T) {
	cfg := RetryConfig{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond, 800 * time.Millisecond, time.Second, time.Second}
	for attempt, w := range want {
		if got := cfg.delay(attempt); got != w {
			t.Errorf("delay(%d) = %v, want %v", attempt, got, w)
		}
	}
}
