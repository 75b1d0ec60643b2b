package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func TestRetryOnConflict(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 4, InitialDelay: time.Millisecond, MaxDelay: 3 * time.Millisecond, BackoffFactor: 2}
	businessErr := errors.New("business")

	tests := []struct {
		name      string
		results   []error
		wantCalls int
		wantErr   error
	}{
		{name: "first try", results: []error{nil}, wantCalls: 1},
		{name: "after conflicts", results: []error{domain.ErrConcurrentUpdate, domain.ErrConcurrentUpdate, nil}, wantCalls: 3},
		{name: "non retryable", results: []error{businessErr}, wantCalls: 1, wantErr: businessErr},
		{
			name:      "exhausted",
			results:   []error{domain.ErrConcurrentUpdate, domain.ErrConcurrentUpdate, domain.ErrConcurrentUpdate, domain.ErrConcurrentUpdate},
			wantCalls: 4,
			wantErr:   domain.ErrCheckoutConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			retries := 0
			err := retryOnConflict(context.Background(), cfg, func(int, time.Duration, error) { retries++ }, func() error {
				result := tt.results[calls]
				calls++
				return result
			})

			if calls != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, calls)
			}
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == domain.ErrCheckoutConflict && retries != tt.wantCalls-1 {
				t.Fatalf("expected %d retry callbacks, got %d", tt.wantCalls-1, retries)
			}
		})
	}
}

func TestRetryConfigNormalized(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 0, InitialDelay: 10 * time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 0}.normalized()

	if cfg.MaxAttempts != DefaultRetryConfig().MaxAttempts {
		t.Fatalf("expected default attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.MaxDelay != cfg.InitialDelay {
		t.Fatalf("max delay must not be below initial delay: %+v", cfg)
	}
	if cfg.BackoffFactor != 2 {
		t.Fatalf("expected default backoff factor, got %v", cfg.BackoffFactor)
	}
}
