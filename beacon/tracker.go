package beacon

// State is the lock state of a Tracker.
type State int

const (
	// StateIdle has no candidate source.
	StateIdle State = iota
	// StatePotential has seen one beacon from a source.
	StatePotential
	// StateSync has seen the source's timestamp advance.
	StateSync
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePotential:
		return "potential"
	case StateSync:
		return "sync"
	default:
		return "unknown"
	}
}

// Transition is reported whenever the tracker changes state or, while in
// sync, whenever the timestamp advances. Beacon is zero for StateIdle.
type Transition struct {
	State  State
	Beacon Beacon
}

// Observer receives transitions synchronously from Tick.
type Observer func(Transition)

// Tracker follows the beacons of a single source. A new identifier makes it
// a potential source; an advancing timestamp from the same identifier
// confirms sync. A different identifier or a timestamp going backwards
// drops back to idle. Tracker is not safe for concurrent use.
type Tracker struct {
	observer Observer
	state    State
	current  Beacon
}

// NewTracker creates an idle Tracker. observer may be nil.
func NewTracker(observer Observer) *Tracker {
	return &Tracker{observer: observer}
}

// State returns the current state.
func (t *Tracker) State() State { return t.state }

// Current returns the tracked beacon and whether a source is tracked.
func (t *Tracker) Current() (Beacon, bool) {
	return t.current, t.state != StateIdle
}

// Tick feeds one decoded beacon. It returns the transition it caused, if
// any.
func (t *Tracker) Tick(b Beacon) (Transition, bool) {
	if t.state == StateIdle {
		t.current = b
		return t.emit(StatePotential), true
	}

	switch {
	case b.Identifier != t.current.Identifier, b.Timestamp < t.current.Timestamp:
		t.Stop()
		return t.emit(StateIdle), true
	case b.Timestamp > t.current.Timestamp:
		t.current.Timestamp = b.Timestamp
		return t.emit(StateSync), true
	}
	return Transition{}, false
}

// Stop returns to idle without notifying the observer.
func (t *Tracker) Stop() {
	t.state = StateIdle
	t.current = Beacon{}
}

func (t *Tracker) emit(s State) Transition {
	t.state = s
	tr := Transition{State: s, Beacon: t.current}
	if t.observer != nil {
		t.observer(tr)
	}
	return tr
}
