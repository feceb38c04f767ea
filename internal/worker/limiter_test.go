package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowsBurst(t *testing.T) {
	l := NewLimiter(1, 3)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "https://example.org/a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("burst of 3 should not block, took %v", elapsed)
	}
}

func TestLimiter_PerDomainIsolation(t *testing.T) {
	// Exhaust one domain's burst; a different domain must still pass.
	l := NewLimiter(0.1, 1)
	ctx := context.Background()

	if err := l.Wait(ctx, "https://slow.example.org/a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	if err := l.Wait(ctx, "https://other.example.org/a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("second domain should not inherit first domain's debt, took %v", elapsed)
	}
}

func TestLimiter_ContextCancellation(t *testing.T) {
	l := NewLimiter(0.01, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://example.org/a"); err != nil {
		t.Fatalf("unexpected error on burst token: %v", err)
	}
	if err := l.Wait(ctx, "https://example.org/b"); err == nil {
		t.Fatal("expected context deadline error while throttled")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if err := l.Wait(context.Background(), "://bad"); err == nil {
		t.Fatal("expected error for unparseable URL")
	}
}
