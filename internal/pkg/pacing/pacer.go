// Package pacing wraps golang.org/x/time/rate into the fixed-interval
// limiter used to space out calls against the identity store's admin API.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks callers so that actions happen at most once per interval.
type Pacer struct {
	lim *rate.Limiter
}

// NewFixedInterval returns a Pacer allowing one action per interval, with a
// burst of one so the first action passes immediately.
func NewFixedInterval(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Pacer{lim: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next action is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}
