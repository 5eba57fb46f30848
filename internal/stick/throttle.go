package stick

import "time"

// DefaultThrottle is the minimum spacing between processed move events.
const DefaultThrottle = 10 * time.Millisecond

// Throttle drops events that arrive less than Interval after the last
// accepted one. Dropped events are not queued.
type Throttle struct {
	Interval time.Duration
	last     time.Time
}

// NewThrottle starts the clock at start, so events within the first
// interval after construction are dropped too.
func NewThrottle(interval time.Duration, start time.Time) *Throttle {
	return &Throttle{Interval: interval, last: start}
}

// ShouldProcess reports whether an event at now passes the gate and, if so,
// records now as the last accepted time.
func (t *Throttle) ShouldProcess(now time.Time) bool {
	if now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	return true
}

// Last returns the time of the last accepted event.
func (t *Throttle) Last() time.Time {
	return t.last
}
