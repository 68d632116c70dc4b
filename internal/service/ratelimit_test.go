package service

import (
	"errors"
	"testing"
	"time"

	"inkwell/internal/domain"
)

func TestSubmissionLimiterCheck(t *testing.T) {
	limiter := NewSubmissionLimiter()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	ms := func(d time.Duration) int64 {
		return now.Add(-d).UnixMilli()
	}

	tests := []struct {
		name    string
		history []int64
		allowed bool
	}{
		{
			name:    "empty history",
			history: nil,
			allowed: true,
		},
		{
			name:    "two recent submissions",
			history: []int64{ms(2 * time.Hour), ms(1 * time.Hour)},
			allowed: true,
		},
		{
			name:    "three recent submissions",
			history: []int64{ms(3 * time.Hour), ms(2 * time.Hour), ms(1 * time.Hour)},
			allowed: false,
		},
		{
			name: "old submissions age out",
			history: []int64{
				ms(30 * time.Hour),
				ms(25 * time.Hour),
				ms(2 * time.Hour),
			},
			allowed: true,
		},
		{
			name: "exactly at window boundary is out",
			history: []int64{
				ms(24 * time.Hour),
				ms(2 * time.Hour),
				ms(1 * time.Hour),
			},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := limiter.Check(tt.history, now)
			if tt.allowed && err != nil {
				t.Errorf("Check() = %v, want nil", err)
			}
			if !tt.allowed && err == nil {
				t.Error("Check() = nil, want rate limit error")
			}
		})
	}
}

func TestSubmissionLimiterRetryAfter(t *testing.T) {
	limiter := NewSubmissionLimiter()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	history := []int64{
		now.Add(-20 * time.Hour).UnixMilli(),
		now.Add(-10 * time.Hour).UnixMilli(),
		now.Add(-1 * time.Hour).UnixMilli(),
	}

	err := limiter.Check(history, now)
	if err == nil {
		t.Fatal("expected rate limit error")
	}

	var rateErr *domain.RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected *domain.RateLimitError, got %T", err)
	}
	if !errors.Is(err, domain.ErrRateLimit) {
		t.Error("rate limit error should match ErrRateLimit")
	}

	// The oldest in-window entry is 20h old, so the slot frees in 4h.
	want := 4 * time.Hour
	if rateErr.RetryAfter != want {
		t.Errorf("RetryAfter = %v, want %v", rateErr.RetryAfter, want)
	}
}

func TestSubmissionLimiterRecord(t *testing.T) {
	limiter := NewSubmissionLimiter()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("appends to history", func(t *testing.T) {
		history := []int64{100, 200}
		updated := limiter.Record(history, now)
		if len(updated) != 3 {
			t.Fatalf("len = %d, want 3", len(updated))
		}
		if updated[2] != now.UnixMilli() {
			t.Errorf("last entry = %d, want %d", updated[2], now.UnixMilli())
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		history := []int64{100, 200}
		_ = limiter.Record(history, now)
		if len(history) != 2 {
			t.Errorf("input history mutated: %v", history)
		}
	})

	t.Run("prunes to cap keeping newest", func(t *testing.T) {
		history := make([]int64, 10)
		for i := range history {
			history[i] = int64(i + 1)
		}
		updated := limiter.Record(history, now)
		if len(updated) != 10 {
			t.Fatalf("len = %d, want 10", len(updated))
		}
		if updated[0] != 2 {
			t.Errorf("oldest kept = %d, want 2", updated[0])
		}
		if updated[9] != now.UnixMilli() {
			t.Errorf("newest = %d, want %d", updated[9], now.UnixMilli())
		}
	})
}
