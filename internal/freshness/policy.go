// Package freshness decides, for a cached snapshot timestamp, whether
// the cache is still usable and when a background refresh is due.
package freshness

import "time"

// Status summarizes the state of a cached snapshot.
type Status string

const (
	StatusFresh   Status = "fresh"   // valid, no refresh due yet
	StatusStale   Status = "stale"   // valid, but inside the refresh window
	StatusExpired Status = "expired" // past the validity duration
	StatusMissing Status = "missing" // no timestamp at all
)

// Policy is a pure, stateless freshness policy parameterized by the
// validity window and the refresh lead time. The zero time.Time stands
// for a missing timestamp. now is injectable for tests.
type Policy struct {
	validity  time.Duration
	threshold time.Duration
	now       func() time.Time
}

const (
	DefaultValidity         = 24 * time.Hour
	DefaultRefreshThreshold = 1 * time.Hour
)

// NewPolicy builds a policy. Non-positive durations fall back to the
// defaults.
func NewPolicy(validity, threshold time.Duration) *Policy {
	if validity <= 0 {
		validity = DefaultValidity
	}
	if threshold <= 0 {
		threshold = DefaultRefreshThreshold
	}
	return &Policy{validity: validity, threshold: threshold, now: time.Now}
}

// WithClock returns a copy of the policy using the given clock.
func (p *Policy) WithClock(now func() time.Time) *Policy {
	cp := *p
	cp.now = now
	return &cp
}

// Validity returns the configured validity duration.
func (p *Policy) Validity() time.Duration {
	return p.validity
}

// IsValid reports whether data stamped at lastUpdated is still usable.
// A missing timestamp is never valid; a future-dated one always is.
func (p *Policy) IsValid(lastUpdated time.Time) bool {
	if lastUpdated.IsZero() {
		return false
	}
	return p.now().Before(lastUpdated.Add(p.validity))
}

// ShouldRefresh reports whether a refresh is due: always for a missing
// timestamp, otherwise once now reaches expiry minus the threshold.
func (p *Policy) ShouldRefresh(lastUpdated time.Time) bool {
	if lastUpdated.IsZero() {
		return true
	}
	refreshAt := lastUpdated.Add(p.validity - p.threshold)
	return !p.now().Before(refreshAt)
}

// Remaining returns the time left in the validity window, or false when
// the timestamp is missing or the window has already closed.
func (p *Policy) Remaining(lastUpdated time.Time) (time.Duration, bool) {
	if lastUpdated.IsZero() {
		return 0, false
	}
	remaining := lastUpdated.Add(p.validity).Sub(p.now())
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

// Freshness returns the percentage of the validity window still
// remaining, clamped to [0,100].
func (p *Policy) Freshness(lastUpdated time.Time) float64 {
	remaining, ok := p.Remaining(lastUpdated)
	if !ok {
		return 0
	}
	pct := float64(remaining) / float64(p.validity) * 100
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// StatusOf collapses the policy decisions into a single status value.
func (p *Policy) StatusOf(lastUpdated time.Time) Status {
	switch {
	case lastUpdated.IsZero():
		return StatusMissing
	case !p.IsValid(lastUpdated):
		return StatusExpired
	case p.ShouldRefresh(lastUpdated):
		return StatusStale
	default:
		return StatusFresh
	}
}
