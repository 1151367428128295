package queue

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/threadsafe-go/threadsafe/clock"
	"github.com/threadsafe-go/threadsafe/wait"
)

// Forever is the sentinel timeout for Push and Pop indicating an unbounded wait.
const Forever = wait.Forever

// Status is a derived classification of the queue's occupancy.  It is a
// best-effort snapshot for polling callers; admission decisions inside Push
// and Pop are always made under the queue's lock, never from this snapshot.
type Status int32

const (
	// Empty indicates the queue holds no elements.
	Empty Status = iota

	// Normal indicates the queue holds at least one element and has room for more.
	Normal

	// Full indicates the queue is at capacity.
	Full
)

func (s Status) String() string {
	switch s {
	case Empty:
		return "empty"
	case Normal:
		return "normal"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// Interface represents a bounded, thread-safe FIFO queue.
type Interface[T any] interface {
	// Push appends elem to the tail.  When the queue is full under NoDiscard,
	// Push blocks until space frees, the push gate closes, or the timeout
	// elapses.  It returns false if the element was not inserted; a false
	// return leaves the queue unchanged and the caller retains the element.
	//
	// Under DiscardOldest a push to a full queue succeeds by evicting the
	// head.  Under DiscardNewest it fails immediately without blocking.
	Push(elem T, timeout time.Duration) bool

	// Pop removes and returns the head element.  When the queue is empty,
	// Pop blocks until an element arrives, the pop gate closes, or the
	// timeout elapses.  The second return is false when nothing was popped.
	Pop(timeout time.Duration) (T, bool)

	// OpenPush opens the push gate.  This is a no-op unless the control
	// policy grants push control.
	OpenPush()

	// ClosePush closes the push gate, causing subsequent and in-flight
	// pushes to fail.  This is a no-op unless the control policy grants
	// push control.
	ClosePush()

	// OpenPop opens the pop gate.  This is a no-op unless the control
	// policy grants pop control.
	OpenPop()

	// ClosePop closes the pop gate, causing subsequent and in-flight pops
	// to fail.  This is a no-op unless the control policy grants pop control.
	ClosePop()

	// Status returns a snapshot of the queue's occupancy classification.
	Status() Status

	// Len returns a snapshot of the number of buffered elements.
	Len() int
}

// Option is a configuration option for a queue.
type Option[T any] func(*queue[T])

// WithDiscarded registers the single subscriber notified of discarded
// elements.  The callback executes synchronously on the goroutine that caused
// the discard, after the queue's lock has been released.  It must not block
// indefinitely and must not call back into the same queue.
func WithDiscarded[T any](cb func(T)) Option[T] {
	return func(q *queue[T]) {
		q.discarded = cb
	}
}

// WithClock establishes the clock used for wait timeouts, primarily for tests.
func WithClock[T any](c clock.Interface) Option[T] {
	return func(q *queue[T]) {
		q.gate = wait.NewGate(wait.WithClock(c))
	}
}

// New constructs a queue from an immutable Settings value.  Sides not covered
// by the control policy are open from the start and cannot be closed;
// controlled sides start closed.  Invalid settings are a programmer error and
// cause a panic.
func New[T any](settings Settings, options ...Option[T]) Interface[T] {
	if err := settings.Validate(); err != nil {
		panic(fmt.Sprintf("queue: %s", err))
	}

	q := &queue[T]{
		settings: settings,
		capacity: settings.capacity(),
		gate:     wait.NewGate(),
	}

	for _, o := range options {
		o(q)
	}

	if !settings.pushControllable() {
		q.pushOpen.Store(true)
	}

	if !settings.popControllable() {
		q.popOpen.Store(true)
	}

	return q
}

// queue is the internal Interface implementation
type queue[T any] struct {
	settings Settings
	capacity int

	lock   sync.Mutex
	buffer []T

	size   atomic.Int64
	status atomic.Int32

	pushOpen atomic.Bool
	popOpen  atomic.Bool

	gate      *wait.Gate
	discarded func(T)
}

func (q *queue[T]) Push(elem T, timeout time.Duration) bool {
	if !q.waitToPush(timeout) {
		return false
	}

	q.lock.Lock()
	if len(q.buffer) < q.capacity {
		q.buffer = append(q.buffer, elem)
		q.updateStatus()
		q.lock.Unlock()
		q.gate.Notify()
		return true
	}

	switch q.settings.Discard {
	case DiscardNewest:
		q.lock.Unlock()
		q.onDiscarded(elem)
		return false

	case DiscardOldest:
		// evict and insert in one critical section so the buffer never
		// exceeds capacity, then notify the subscriber outside the lock
		var zero T
		evicted := q.buffer[0]
		q.buffer[0] = zero
		q.buffer = append(q.buffer[1:], elem)
		q.updateStatus()
		q.lock.Unlock()
		q.gate.Notify()
		q.onDiscarded(evicted)
		return true

	default:
		// NoDiscard, and a competing producer refilled the queue between
		// the wait resolving and the lock acquisition
		q.lock.Unlock()
		return false
	}
}

func (q *queue[T]) Pop(timeout time.Duration) (T, bool) {
	var zero T
	if !q.waitToPop(timeout) {
		return zero, false
	}

	q.lock.Lock()
	if len(q.buffer) == 0 {
		// a competing consumer drained the queue between the wait
		// resolving and the lock acquisition
		q.lock.Unlock()
		return zero, false
	}

	elem := q.buffer[0]
	q.buffer[0] = zero
	q.buffer = q.buffer[1:]
	q.updateStatus()
	q.lock.Unlock()
	q.gate.Notify()
	return elem, true
}

func (q *queue[T]) OpenPush() {
	if !q.settings.pushControllable() {
		return
	}

	q.pushOpen.Store(true)
	q.gate.Notify()
}

func (q *queue[T]) ClosePush() {
	if !q.settings.pushControllable() {
		return
	}

	q.pushOpen.Store(false)
	q.gate.Notify()
}

func (q *queue[T]) OpenPop() {
	if !q.settings.popControllable() {
		return
	}

	q.popOpen.Store(true)
	q.gate.Notify()
}

func (q *queue[T]) ClosePop() {
	if !q.settings.popControllable() {
		return
	}

	q.popOpen.Store(false)
	q.gate.Notify()
}

func (q *queue[T]) Status() Status {
	return Status(q.status.Load())
}

func (q *queue[T]) Len() int {
	return int(q.size.Load())
}

// waitToPush gates a push attempt.  It fails fast when the push gate is
// closed, and blocks only when the queue is full under NoDiscard.  A push
// whose gate closed while it was waiting fails with no discard notification.
func (q *queue[T]) waitToPush(timeout time.Duration) bool {
	if !q.pushOpen.Load() {
		return false
	}

	if q.Status() == Full && q.settings.Discard == NoDiscard {
		result := q.gate.WaitFor(timeout, func() bool {
			return !q.pushOpen.Load() || q.Status() != Full
		})

		if result != wait.Success || !q.pushOpen.Load() {
			return false
		}
	}

	return true
}

// waitToPop gates a pop attempt, blocking only when the queue is empty.
func (q *queue[T]) waitToPop(timeout time.Duration) bool {
	if !q.popOpen.Load() {
		return false
	}

	if q.Status() == Empty {
		result := q.gate.WaitFor(timeout, func() bool {
			return !q.popOpen.Load() || q.Status() != Empty
		})

		if result != wait.Success || !q.popOpen.Load() {
			return false
		}
	}

	return true
}

// updateStatus recomputes the occupancy snapshot.  It must be called with the
// queue's lock held, after every mutation of the buffer.
func (q *queue[T]) updateStatus() {
	n := len(q.buffer)
	q.size.Store(int64(n))

	switch {
	case n == 0:
		q.status.Store(int32(Empty))
	case n >= q.capacity:
		q.status.Store(int32(Full))
	default:
		q.status.Store(int32(Normal))
	}
}

func (q *queue[T]) onDiscarded(elem T) {
	if q.discarded != nil {
		q.discarded(elem)
	}
}
