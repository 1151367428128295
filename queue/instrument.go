package queue

import (
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/threadsafe-go/threadsafe/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a queue
type InstrumentOption[T any] func(*instrumentedQueue[T])

// WithDepth establishes a metric that tracks the queue depth after each
// operation.  If a nil setter is supplied, depth updates are discarded.
func WithDepth[T any](s xmetrics.Setter) InstrumentOption[T] {
	return func(i *instrumentedQueue[T]) {
		if s != nil {
			i.depth = s
		} else {
			i.depth = discard.NewGauge()
		}
	}
}

// WithPushes establishes a metric counting successful pushes.  If a nil adder
// is supplied, push counts are discarded.
func WithPushes[T any](a xmetrics.Adder) InstrumentOption[T] {
	return func(i *instrumentedQueue[T]) {
		if a != nil {
			i.pushes = a
		} else {
			i.pushes = discard.NewCounter()
		}
	}
}

// WithPops establishes a metric counting successful pops.  If a nil adder is
// supplied, pop counts are discarded.
func WithPops[T any](a xmetrics.Adder) InstrumentOption[T] {
	return func(i *instrumentedQueue[T]) {
		if a != nil {
			i.pops = a
		} else {
			i.pops = discard.NewCounter()
		}
	}
}

// WithRejects establishes a metric counting failed pushes and pops, i.e.
// operations that returned false.  If a nil adder is supplied, reject counts
// are discarded.
func WithRejects[T any](a xmetrics.Adder) InstrumentOption[T] {
	return func(i *instrumentedQueue[T]) {
		if a != nil {
			i.rejects = a
		} else {
			i.rejects = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing queue with a set of options.  Metrics not
// established by an option are discarded.
func Instrument[T any](next Interface[T], o ...InstrumentOption[T]) Interface[T] {
	iq := &instrumentedQueue[T]{
		Interface: next,
		depth:     discard.NewGauge(),
		pushes:    discard.NewCounter(),
		pops:      discard.NewCounter(),
		rejects:   discard.NewCounter(),
	}

	for _, f := range o {
		f(iq)
	}

	return iq
}

// CountDiscarded decorates a discard callback with an adder that counts each
// firing.  Use the result with WithDiscarded to track discard volume:
//
//	queue.New[E](s, queue.WithDiscarded(queue.CountDiscarded(measures.Discards, onDiscard)))
//
// A nil next is permitted; the returned callback then only counts.
func CountDiscarded[T any](a xmetrics.Adder, next func(T)) func(T) {
	if a == nil {
		a = discard.NewCounter()
	}

	return func(elem T) {
		a.Add(1.0)
		if next != nil {
			next(elem)
		}
	}
}

type instrumentedQueue[T any] struct {
	Interface[T]

	depth   xmetrics.Setter
	pushes  xmetrics.Adder
	pops    xmetrics.Adder
	rejects xmetrics.Adder
}

func (iq *instrumentedQueue[T]) Push(elem T, timeout time.Duration) bool {
	ok := iq.Interface.Push(elem, timeout)
	if ok {
		iq.pushes.Add(1.0)
	} else {
		iq.rejects.Add(1.0)
	}

	iq.depth.Set(float64(iq.Interface.Len()))
	return ok
}

func (iq *instrumentedQueue[T]) Pop(timeout time.Duration) (elem T, ok bool) {
	elem, ok = iq.Interface.Pop(timeout)
	if ok {
		iq.pops.Add(1.0)
	} else {
		iq.rejects.Add(1.0)
	}

	iq.depth.Set(float64(iq.Interface.Len()))
	return
}
