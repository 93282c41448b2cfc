package smpl

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Outcome is the closed two-variant result of Request (§9 design
// notes).
type Outcome int

const (
	// Reserved means the caller now holds a server.
	Reserved Outcome = iota
	// Queued means the caller is waiting; the kernel will re-emit
	// the in-flight event's (code, token) through Cause once a
	// server frees up.
	Queued
)

func (o Outcome) String() string {
	switch o {
	case Reserved:
		return "RESERVED"
	case Queued:
		return "QUEUED"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Simulator is the discrete-event simulation kernel: the event list,
// the facility table, the clock, and the glue between them (§2).
// Generic over the caller's token type T, the opaque handle
// identifying a simulated process (§9: "model it as a generic
// parameter").
//
// A zero-value Simulator is not ready to use; construct one with New,
// or call Init before any other method.
type Simulator[T comparable] struct {
	mu sync.Mutex

	name  string
	clock float64

	el    *eventList[T]
	elSeq uint64

	facilities   map[FacilityID]*facility[T]
	nextFacility FacilityID

	// inFlight is the most recently popped event, needed so Request
	// can identify "the last event" to re-schedule on QUEUED (§3).
	inFlight *eventRecord[T]

	log *logrus.Entry
}

// New creates a Simulator ready to run, with diagnostic run name
// name.
func New[T comparable](name string) *Simulator[T] {
	s := &Simulator[T]{}
	s.resetLocked(name)
	return s
}

// Init resets the clock to 0, empties the event list, discards all
// facilities, clears the in-flight event, and records name. Reusable
// across runs (§4.6, scenario S6).
func (s *Simulator[T]) Init(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(name)
}

func (s *Simulator[T]) resetLocked(name string) {
	s.name = name
	s.clock = 0
	s.el = newEventList[T]()
	s.elSeq = 0
	s.facilities = make(map[FacilityID]*facility[T])
	s.nextFacility = 0
	s.inFlight = nil
	s.log = logrus.WithField("sim", name)
}

// Name returns the diagnostic run name passed to New or Init.
func (s *Simulator[T]) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Time returns the current simulated clock. Nonnegative, monotonic,
// advanced only by Cause.
func (s *Simulator[T]) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Schedule inserts an event at clock()+dt, tied to token (§4.6).
func (s *Simulator[T]) Schedule(code int, dt float64, token T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dt < 0 {
		return newError(BadArg, "time_to_event must be >= 0, got %v", dt)
	}
	if tokenIsNil(token) {
		return newError(BadArg, "token must not be nil")
	}

	t := s.clock + dt
	s.elSeq++
	s.el.insert(eventRecord[T]{event: Event[T]{Code: code, Token: token, Time: t}, seq: s.elSeq})
	s.log.Debugf("[tick %.6f] schedule code=%d token=%v -> %.6f", s.clock, code, token, t)
	return nil
}

// Cause advances the clock to the earliest pending event's time,
// removes and returns it (§4.5). The second return is false when the
// event list is empty — the sentinel "empty" result.
func (s *Simulator[T]) Cause() (Event[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.el.popMin()
	if !ok {
		s.inFlight = nil
		return Event[T]{}, false
	}
	if rec.event.Time < s.clock {
		panic(fmt.Sprintf("smpl: clock went backwards: event at %v, clock at %v", rec.event.Time, s.clock))
	}
	s.clock = rec.event.Time
	s.inFlight = &rec
	s.log.Debugf("[tick %.6f] cause code=%d token=%v", s.clock, rec.event.Code, rec.event.Token)
	return rec.event, true
}

// Facility allocates a new facility with serverCount servers
// (§4.2). name is informational only.
func (s *Simulator[T]) Facility(name string, serverCount int) (FacilityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if serverCount < 1 {
		return 0, newError(BadArg, "server_count must be >= 1, got %d", serverCount)
	}
	s.nextFacility++
	id := s.nextFacility
	s.facilities[id] = newFacility[T](id, name, serverCount)
	s.log.Debugf("[tick %.6f] facility %q id=%d servers=%d", s.clock, name, id, serverCount)
	return id, nil
}

// Status reports a read-only snapshot of a facility (§4.2).
func (s *Simulator[T]) Status(id FacilityID) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.facilities[id]
	if !ok {
		return Status{}, newError(NoSuchFacility, "no facility with id %d", id)
	}
	return f.status(), nil
}

// Stats reports the statistics accumulators for a facility, including
// the still-open interval up to the current clock (§3, §8 property 6).
func (s *Simulator[T]) Stats(id FacilityID) (FacilityStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.facilities[id]
	if !ok {
		return FacilityStats{}, newError(NoSuchFacility, "no facility with id %d", id)
	}
	return f.statsAsOf(s.clock), nil
}

// Request probes a facility on behalf of token at the given priority
// (higher = stronger), per §4.3.
//
//   - If an idle server exists, it is reserved immediately and
//     Request returns Reserved.
//   - Otherwise token is queued, ordered by descending priority and
//     FIFO within a priority, and Request returns Queued. The kernel
//     remembers the in-flight event's code so that a future Release
//     can re-emit (code, token) through Cause; this requires Request
//     to be called from within a Cause-driven handler, or it fails
//     with RequestOutsideDispatch.
func (s *Simulator[T]) Request(id FacilityID, token T, priority int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tokenIsNil(token) {
		return 0, newError(BadArg, "token must not be nil")
	}
	f, ok := s.facilities[id]
	if !ok {
		return 0, newError(NoSuchFacility, "no facility with id %d", id)
	}

	// A token that already holds a server on this facility is
	// reporting back on its own pending acquisition (the retry
	// Release re-emitted through Cause after promoting it) — treat
	// the call as idempotent rather than queuing a second waiter
	// that could only ever be freed by some unrelated release. See
	// DESIGN.md for why this resolves §9's "request while holding"
	// open question in favor of Release's atomic-transfer design.
	if _, holding := f.findBusySlot(token); holding {
		s.log.Debugf("[tick %.6f] request facility=%d token=%v priority=%d -> RESERVED (already held)", s.clock, id, token, priority)
		return Reserved, nil
	}

	if _, idle := f.findIdleSlot(); idle {
		f.reserve(token, priority, s.clock)
		s.log.Debugf("[tick %.6f] request facility=%d token=%v priority=%d -> RESERVED", s.clock, id, token, priority)
		return Reserved, nil
	}

	if s.inFlight == nil {
		return 0, newError(RequestOutsideDispatch,
			"request on facility %d would queue token %v with no in-flight event to re-schedule", id, token)
	}
	f.enqueue(token, priority, s.inFlight.event.Code, s.clock)
	s.log.Debugf("[tick %.6f] request facility=%d token=%v priority=%d -> QUEUED", s.clock, id, token, priority)
	return Queued, nil
}

// Release frees a server currently held by token on the given
// facility (§4.4). If waiters are queued, the highest-priority one
// (FIFO within a priority) is transferred the freed server
// atomically, and its pending event is re-timed to fire at the
// current clock — after events already scheduled at this instant,
// before events strictly later (§4.4, §5).
func (s *Simulator[T]) Release(id FacilityID, token T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.facilities[id]
	if !ok {
		return newError(NoSuchFacility, "no facility with id %d", id)
	}

	idx, ok := f.findBusySlot(token)
	if !ok {
		return newError(NotHeld, "token %v does not hold a server on facility %d", token, id)
	}
	f.free(idx, s.clock)

	w, promoted := f.promote(s.clock)
	if !promoted {
		s.log.Debugf("[tick %.6f] release facility=%d token=%v -> idle", s.clock, id, token)
		return nil
	}

	s.elSeq++
	s.el.insert(eventRecord[T]{
		event: Event[T]{Code: w.pendingCode, Token: w.token, Time: s.clock},
		seq:   s.elSeq,
	})
	s.log.Debugf("[tick %.6f] release facility=%d token=%v -> promoted token=%v priority=%d",
		s.clock, id, token, w.token, w.priority)
	return nil
}
