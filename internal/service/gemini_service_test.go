package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/evaldesk/evaldesk/pkg/retry"
)

func TestIsRetryableLLMError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", errors.New("googleapi: Error 429: rate limit exceeded"), true},
		{"server error", errors.New("Error 503: service unavailable"), true},
		{"deadline", errors.New("context deadline exceeded"), true},
		{"invalid api key", errors.New("Error 400: API key not valid"), false},
		{"malformed request", errors.New("invalid argument: contents must not be empty"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableLLMError(tt.err); got != tt.want {
				t.Errorf("isRetryableLLMError(%v) = %t, want %t", tt.err, got, tt.want)
			}
		})
	}
}

// A non-retryable provider failure must surface after a single attempt
// even though the retry config has no RetryableErrors list.
func TestPermanentProviderErrorIsNotRetried(t *testing.T) {
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = time.Millisecond

	apiErr := errors.New("API key not valid")
	calls := 0
	_, err := retry.DoWithResult(context.Background(), cfg, func() (string, error) {
		calls++
		if !isRetryableLLMError(apiErr) {
			return "", retry.Permanent(fmt.Errorf("generate content failed: %w", apiErr))
		}
		return "", apiErr
	})
	if !errors.Is(err, apiErr) {
		t.Fatalf("err = %v, want wrapped %v", err, apiErr)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTruncateOnRuneBoundary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
	}{
		{"ascii", "hello world", 5},
		{"short input untouched", "hi", 100},
		{"cut inside multibyte rune", "aaé", 3},
		{"cjk", "評価管理システム", 10},
		{"exact boundary", "aé", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateOnRuneBoundary(tt.in, tt.max)
			if len(got) > tt.max {
				t.Errorf("len = %d, want <= %d", len(got), tt.max)
			}
			if !utf8.ValidString(got) {
				t.Errorf("result %q is not valid UTF-8", got)
			}
		})
	}
}
