// Package input turns held-key state into at most one game action per tick.
package input

import (
	"time"

	"golang.org/x/time/rate"
)

// Repeater fires once when a key goes down and, if Rate is positive, keeps
// firing Rate times per second after the key has been held for Delay.
type Repeater struct {
	Delay time.Duration
	Rate  float64

	held    bool
	since   time.Time
	limiter *rate.Limiter
}

// Update records whether the key is down at now and reports whether it fires.
func (r *Repeater) Update(down bool, now time.Time) bool {
	if !down {
		r.held = false
		return false
	}

	if !r.held {
		r.held = true
		r.since = now
		if r.Rate > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(r.Rate), 1)
			r.limiter.AllowN(now, 1)
		}
		return true
	}

	if r.limiter == nil || now.Sub(r.since) < r.Delay {
		return false
	}
	return r.limiter.AllowN(now, 1)
}

// Held reports whether the key was down at the last update.
func (r *Repeater) Held() bool { return r.held }
