package service

import (
	"context"
	"testing"
	"time"
)

func TestSleepWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := sleepWithContext(ctx, time.Minute)
	if err == nil {
		t.Fatal("sleepWithContext ignored the cancelled context")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("sleepWithContext blocked for %v after cancellation", elapsed)
	}
}

func TestSleepWithContextElapses(t *testing.T) {
	if err := sleepWithContext(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("sleepWithContext: %v", err)
	}
}
