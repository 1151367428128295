package wait

import (
	"math"
	"sync"
	"time"

	"github.com/threadsafe-go/threadsafe/clock"
)

// Forever is the sentinel timeout indicating an unbounded wait.  Any negative
// timeout is treated the same way.  A caller passing Forever never receives
// Timeout from WaitFor.
const Forever time.Duration = math.MaxInt64

// Status is the outcome of a WaitFor call.
type Status int

const (
	// Success indicates the predicate held when WaitFor returned.
	Success Status = iota

	// Timeout indicates the deadline elapsed before the predicate became true.
	Timeout
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// GateOption is a configuration option for a Gate.
type GateOption func(*Gate)

// WithClock establishes the clock used for timeout timers.  A nil clock
// restores the default, which is the system clock.
func WithClock(c clock.Interface) GateOption {
	return func(g *Gate) {
		if c != nil {
			g.clock = c
		} else {
			g.clock = clock.System()
		}
	}
}

// NewGate constructs a Gate with zero or more options.
func NewGate(options ...GateOption) *Gate {
	g := &Gate{
		wakeup: make(chan struct{}),
		clock:  clock.System(),
	}

	for _, o := range options {
		o(g)
	}

	return g
}

// Gate is a broadcast wakeup point.  Goroutines block in WaitFor until a
// supplied predicate holds or a timeout elapses; Notify wakes every current
// waiter so it re-evaluates its predicate.
//
// A Gate owns no observable state of its own.  The predicate reads state
// owned and synchronized by the caller.
type Gate struct {
	lock   sync.Mutex
	wakeup chan struct{}
	clock  clock.Interface
}

// Notify wakes all goroutines currently blocked in WaitFor.  It never blocks,
// and it is a no-op when no goroutine is waiting.  Notify mutates no state
// visible to callers; it is purely a scheduling hint.
func (g *Gate) Notify() {
	g.lock.Lock()
	close(g.wakeup)
	g.wakeup = make(chan struct{})
	g.lock.Unlock()
}

// WaitFor blocks the calling goroutine until pred returns true or the timeout
// elapses.  It returns Success if the predicate held when the call returned,
// including the case where it already held at entry and no blocking occurred.
// On deadline expiry the predicate is checked one final time before Timeout
// is returned.
//
// The current wakeup generation is captured before the predicate is
// evaluated, so a Notify issued between the predicate check and the block is
// never lost.  A nil predicate is a programmer error and panics.
func (g *Gate) WaitFor(timeout time.Duration, pred func() bool) Status {
	if pred == nil {
		panic("wait: a predicate is required")
	}

	// A nil deadline channel blocks forever.
	var deadline <-chan time.Time
	if timeout >= 0 && timeout != Forever {
		t := g.clock.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C()
	}

	for {
		g.lock.Lock()
		wakeup := g.wakeup
		g.lock.Unlock()

		if pred() {
			return Success
		}

		select {
		case <-wakeup:
			// woken; loop and re-check the predicate
		case <-deadline:
			if pred() {
				return Success
			}

			return Timeout
		}
	}
}
