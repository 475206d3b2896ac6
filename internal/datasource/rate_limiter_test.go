package datasource

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterAllowsBurstUpToCapacity(t *testing.T) {
	rl := NewRateLimiter(5, time.Hour)

	for i := 0; i < 5; i++ {
		if !rl.tryAcquire() {
			t.Fatalf("Expected token %d to be available", i)
		}
	}
	if rl.tryAcquire() {
		t.Error("Expected empty bucket to reject")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	if !rl.tryAcquire() {
		t.Fatal("Expected initial token")
	}
	if rl.tryAcquire() {
		t.Fatal("Expected empty bucket to reject")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.tryAcquire() {
		t.Error("Expected a token after refill interval")
	}
}

func TestRateLimiterWaitHonorsContext(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	rl.tryAcquire() // drain

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	if err == nil {
		t.Fatal("Expected context deadline error")
	}
}

func TestRateLimiterWaitReturnsImmediatelyWithTokens(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)

	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("Expected Wait to return without sleeping")
	}
}
