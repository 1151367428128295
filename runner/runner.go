package runner

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/threadsafe-go/threadsafe/clock"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// RunMode determines whether a started Unit invokes its bound function once
// or in a loop.
type RunMode uint8

const (
	// Once invokes the bound function a single time.
	Once RunMode = iota

	// Loop invokes the bound function repeatedly while the unit has not been
	// stopped and the continuation predicate (if any) returns true.  The
	// predicate is re-evaluated after each invocation.
	Loop
)

func (m RunMode) String() string {
	switch m {
	case Once:
		return "once"
	case Loop:
		return "loop"
	default:
		return "unknown"
	}
}

// Option is a configuration option for a Unit
type Option[R any] func(*Unit[R])

// WithLogger establishes the unit's logger.  A nil logger restores the
// default, which is sallust.Default().
func WithLogger[R any](l *zap.Logger) Option[R] {
	return func(u *Unit[R]) {
		if l != nil {
			u.logger = l
		} else {
			u.logger = sallust.Default()
		}
	}
}

// WithPriority establishes the abstract priority applied when the unit starts.
func WithPriority[R any](p Priority) Option[R] {
	return func(u *Unit[R]) {
		u.priority = p
	}
}

// WithPriorities replaces the priority-to-native mapping table.  A nil table
// restores DefaultNativePriorities.
func WithPriorities[R any](t map[Priority]int32) Option[R] {
	return func(u *Unit[R]) {
		if t != nil {
			u.priorities = t
		} else {
			u.priorities = DefaultNativePriorities()
		}
	}
}

// WithApplier establishes the side-effecting half of the priority capability.
// Without an applier, priorities are mapped but never applied.
func WithApplier[R any](a Applier) Option[R] {
	return func(u *Unit[R]) {
		u.applier = a
	}
}

// WithInterval paces a Loop-mode unit: after each invocation the unit waits
// for the next tick before re-invoking the bound function.  A nonpositive
// interval disables pacing.
func WithInterval[R any](d time.Duration) Option[R] {
	return func(u *Unit[R]) {
		u.interval = d
	}
}

// WithClock establishes the clock used for interval pacing and timed joins.
func WithClock[R any](c clock.Interface) Option[R] {
	return func(u *Unit[R]) {
		if c != nil {
			u.clock = c
		} else {
			u.clock = clock.System()
		}
	}
}

// New constructs a named Unit.  The returned unit holds no bound function;
// Bind must be called before Start.
func New[R any](name string, options ...Option[R]) *Unit[R] {
	u := &Unit[R]{
		name:       name,
		logger:     sallust.Default(),
		priority:   Normal,
		priorities: DefaultNativePriorities(),
		clock:      clock.System(),
	}

	for _, o := range options {
		o(u)
	}

	u.logger = u.logger.With(zap.String("unit", name))
	return u
}

// Unit is a managed background-execution unit.  A Unit is bound to one
// function, then started in Once or Loop mode.  All lifecycle hooks execute
// synchronously on the unit's goroutine.
//
// A fully stopped unit may be started again.
type Unit[R any] struct {
	name       string
	logger     *zap.Logger
	priority   Priority
	priorities map[Priority]int32
	applier    Applier
	clock      clock.Interface
	interval   time.Duration

	lock           sync.Mutex
	fn             func() R
	pred           func() bool
	startCallback  func()
	resultCallback func(R)
	exitCallback   func()
	done           chan struct{}

	looping atomic.Bool
}

// Name returns the name this unit was created with.
func (u *Unit[R]) Name() string {
	return u.name
}

// Running reports whether the unit's goroutine has been started and not yet
// fully stopped.
func (u *Unit[R]) Running() bool {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.done != nil
}

// Bind stores the function the unit will invoke.  Arguments are captured by
// the closure.  Bind returns false, without mutating the unit, if fn is nil
// or the unit is currently running.
func (u *Unit[R]) Bind(fn func() R) bool {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.done != nil || fn == nil {
		return false
	}

	u.fn = fn
	return true
}

// SetPredicate establishes the continuation predicate consulted by Loop mode
// after each invocation.  Ignored while the unit is running.
func (u *Unit[R]) SetPredicate(pred func() bool) {
	u.setCallback(func() { u.pred = pred })
}

// SetStartCallback establishes the hook invoked on the unit's goroutine
// before the first invocation.  Ignored while the unit is running.
func (u *Unit[R]) SetStartCallback(cb func()) {
	u.setCallback(func() { u.startCallback = cb })
}

// SetResultCallback establishes the hook receiving each invocation's result.
// Ignored while the unit is running.
func (u *Unit[R]) SetResultCallback(cb func(R)) {
	u.setCallback(func() { u.resultCallback = cb })
}

// SetExitCallback establishes the hook invoked just before the unit's
// goroutine exits.  Ignored while the unit is running.
func (u *Unit[R]) SetExitCallback(cb func()) {
	u.setCallback(func() { u.exitCallback = cb })
}

func (u *Unit[R]) setCallback(assign func()) {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.done != nil {
		u.logger.Warn("callbacks cannot be changed while the unit is running")
		return
	}

	assign()
}

// Start spawns the unit's goroutine.  It returns false if the unit is already
// running or if no function has been bound.
func (u *Unit[R]) Start(mode RunMode) bool {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.done != nil {
		u.logger.Warn("the unit has already started")
		return false
	}

	if u.fn == nil {
		u.logger.Warn("cannot start because no function has been bound")
		return false
	}

	u.looping.Store(mode == Loop)
	u.done = make(chan struct{})
	go u.run(u.done)

	u.logger.Info("started", zap.Stringer("mode", mode))
	return true
}

// Stop requests loop exit and joins the unit's goroutine.  It is idempotent
// and safe to call on a unit that was never started, returning false in that
// case.  After a successful Stop the unit may be started again.
func (u *Unit[R]) Stop() bool {
	u.lock.Lock()
	done := u.done
	if done == nil {
		u.lock.Unlock()
		u.logger.Warn("the unit has already stopped")
		return false
	}

	u.looping.Store(false)
	u.lock.Unlock()

	<-done

	u.finish(done)
	u.logger.Info("stopped")
	return true
}

// StopTimeout is a Stop whose join is bounded by the given timeout.  It
// returns false if the unit was not running or the goroutine did not exit in
// time; in the latter case the stop request remains in effect and a later
// Stop or StopTimeout can complete the join.
func (u *Unit[R]) StopTimeout(timeout time.Duration) bool {
	u.lock.Lock()
	done := u.done
	if done == nil {
		u.lock.Unlock()
		return false
	}

	u.looping.Store(false)
	u.lock.Unlock()

	timer := u.clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		u.finish(done)
		u.logger.Info("stopped")
		return true

	case <-timer.C():
		u.logger.Warn("the unit did not stop within the timeout", zap.Duration("timeout", timeout))
		return false
	}
}

// finish clears the running state, guarding against a concurrent Stop having
// already done so.
func (u *Unit[R]) finish(done chan struct{}) {
	u.lock.Lock()
	if u.done == done {
		u.done = nil
	}
	u.lock.Unlock()
}

func (u *Unit[R]) run(done chan struct{}) {
	defer close(done)

	u.applyPriority()

	if u.startCallback != nil {
		u.startCallback()
	}

	var ticker clock.Ticker
	if u.interval > 0 {
		ticker = u.clock.NewTicker(u.interval)
		defer ticker.Stop()
	}

	for {
		result := u.fn()
		if u.resultCallback != nil {
			u.resultCallback(result)
		}

		if !u.isContinue() {
			break
		}

		if ticker != nil {
			<-ticker.C()
			if !u.isContinue() {
				break
			}
		}
	}

	if u.exitCallback != nil {
		u.exitCallback()
	}
}

// isContinue is the loop continuation decision: the unit must still be in
// Loop mode with no stop requested, and the predicate (when set) must hold.
func (u *Unit[R]) isContinue() bool {
	if !u.looping.Load() {
		return false
	}

	return u.pred == nil || u.pred()
}

func (u *Unit[R]) applyPriority() {
	if u.applier == nil {
		return
	}

	native, ok := u.priorities[u.priority]
	if !ok {
		u.logger.Warn("no native value for priority", zap.Stringer("priority", u.priority))
		return
	}

	if err := u.applier.Apply(native); err != nil {
		u.logger.Error("unable to apply priority", zap.Stringer("priority", u.priority), zap.Error(err))
	}
}
