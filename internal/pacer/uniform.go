// Package pacer provides the uniform arrival model, the deterministic
// counterpart to the Poisson scheduler for comparison runs.
package pacer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Uniform paces events at fixed intervals using a token bucket with burst 1.
// Unlike the Poisson scheduler it tolerates coarse sleeping, trading timing
// precision for idle CPU, and it honors context cancellation.
type Uniform struct {
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// NewUniform creates a pacer that releases eventsPerSec events per second.
// If eventsPerSec is zero or negative, returns nil (no pacing); the nil
// receiver is safe to use.
func NewUniform(eventsPerSec float64) *Uniform {
	if eventsPerSec <= 0 {
		return nil
	}
	return &Uniform{
		limiter: rate.NewLimiter(rate.Limit(eventsPerSec), 1),
	}
}

// Run invokes action once per interval until runtime has elapsed or ctx is
// cancelled, whichever comes first. The action receives the instant the
// token was granted.
func (u *Uniform) Run(ctx context.Context, runtime time.Duration, action func(timestamp time.Time)) error {
	if u == nil || u.limiter == nil {
		return nil
	}

	end := time.Now().Add(runtime)
	for time.Now().Before(end) {
		u.mu.RLock()
		limiter := u.limiter
		u.mu.RUnlock()

		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		action(time.Now())
	}
	return nil
}

// SetRate updates the pacing rate. A zero or negative value disables pacing.
func (u *Uniform) SetRate(eventsPerSec float64) {
	if u == nil || u.limiter == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if eventsPerSec <= 0 {
		u.limiter.SetLimit(rate.Inf)
		return
	}
	u.limiter.SetLimit(rate.Limit(eventsPerSec))
}
