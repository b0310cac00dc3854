package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 100; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Expected unlimited limiter never to block, got %v", err)
		}
	}
}

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow() {
		t.Error("Expected first call within burst to be allowed")
	}
	if !limiter.Allow() {
		t.Error("Expected second call within burst to be allowed")
	}
	if limiter.Allow() {
		t.Error("Expected third immediate call to be throttled")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	if !limiter.Allow() {
		t.Fatal("Expected burst token available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("Expected context deadline to interrupt the wait")
	}
}

func TestNewLimiter_BurstClamped(t *testing.T) {
	limiter := NewLimiter(10, 0)
	if !limiter.Allow() {
		t.Error("Expected clamped burst of 1 to allow one call")
	}
}
