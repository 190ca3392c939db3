package beacon

// DefaultUnitsPerSecond is the timestamp resolution Clock assumes:
// milliseconds.
const DefaultUnitsPerSecond = 1000

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithUnitsPerSecond sets how many timestamp units pass per second.
// Non-positive values are ignored.
func WithUnitsPerSecond(units float64) ClockOption {
	return func(c *Clock) {
		if units > 0 {
			c.units = units
		}
	}
}

// Clock extrapolates the source timestamp between beacons. It starts at the
// timestamp of a beacon that made the tracker a potential source, keeps
// running while in sync and stops when the tracker drops to idle.
//
// Time is measured in samples of the capture rather than wall time, so the
// same recording always yields the same timestamps. Feed positions with
// Advance and transitions with Observe, typically from a Tracker's
// Observer.
type Clock struct {
	sampleRate float64
	units      float64

	running bool
	base    uint64
	start   int64
	now     int64
}

// NewClock creates a stopped Clock for captures at sampleRate Hz.
func NewClock(sampleRate float64, opts ...ClockOption) *Clock {
	c := &Clock{sampleRate: sampleRate, units: DefaultUnitsPerSecond}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Advance moves the clock to sample position pos. Positions never go
// backwards; an earlier pos is ignored.
func (c *Clock) Advance(pos int64) {
	if pos > c.now {
		c.now = pos
	}
}

// Observe starts, keeps or stops the clock according to t.
func (c *Clock) Observe(t Transition) {
	switch t.State {
	case StatePotential:
		c.running = true
		c.base = t.Beacon.Timestamp
		c.start = c.now
	case StateIdle:
		c.running = false
	}
}

// Running reports whether the clock has a source timestamp to extrapolate.
func (c *Clock) Running() bool { return c.running }

// Now returns the extrapolated source timestamp at the latest position and
// whether the clock is running.
func (c *Clock) Now() (float64, bool) {
	if !c.running || c.sampleRate <= 0 {
		return 0, false
	}
	elapsed := float64(c.now-c.start) / c.sampleRate
	return float64(c.base) + elapsed*c.units, true
}

// Reset stops the clock and rewinds its position to zero.
func (c *Clock) Reset() {
	*c = Clock{sampleRate: c.sampleRate, units: c.units}
}
