package pacing

import (
	"context"
	"testing"
	"time"
)

func TestPacer_FirstWaitIsImmediate(t *testing.T) {
	p := NewFixedInterval(time.Hour)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first wait must pass immediately, took %v", elapsed)
	}
}

func TestPacer_SecondWaitRespectsInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	p := NewFixedInterval(interval)

	start := time.Now()
	_ = p.Wait(context.Background())
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval {
		t.Errorf("second wait must be spaced by %v, elapsed only %v", interval, elapsed)
	}
}

func TestPacer_WaitHonoursCancellation(t *testing.T) {
	p := NewFixedInterval(time.Hour)
	_ = p.Wait(context.Background()) // drain the burst token

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := p.Wait(ctx); err == nil {
		t.Fatal("expected error when context expires before the next slot")
	}
}

func TestPacer_ZeroIntervalDefaults(t *testing.T) {
	p := NewFixedInterval(0)
	if p.lim == nil {
		t.Fatal("limiter must be initialised")
	}
}
