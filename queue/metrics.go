package queue

import (
	"github.com/go-kit/kit/metrics/provider"
	"github.com/threadsafe-go/threadsafe/xmetrics"
)

const (
	DepthGauge       = "queue_depth"
	PushedCounter    = "queue_pushed_count"
	PoppedCounter    = "queue_popped_count"
	RejectedCounter  = "queue_rejected_count"
	DiscardedCounter = "queue_discarded_count"
)

// Metrics is the queue module function that adds default queue metrics
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: DepthGauge,
			Type: xmetrics.GaugeType,
		},
		{
			Name: PushedCounter,
			Type: xmetrics.CounterType,
		},
		{
			Name: PoppedCounter,
			Type: xmetrics.CounterType,
		},
		{
			Name: RejectedCounter,
			Type: xmetrics.CounterType,
		},
		{
			Name: DiscardedCounter,
			Type: xmetrics.CounterType,
		},
	}
}

// Measures holds the queue-related metric objects for runtime consumption.
type Measures struct {
	Depth    xmetrics.Setter
	Pushes   xmetrics.Adder
	Pops     xmetrics.Adder
	Rejects  xmetrics.Adder
	Discards xmetrics.Adder
}

// NewMeasures constructs a Measures given a go-kit metrics Provider
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Depth:    p.NewGauge(DepthGauge),
		Pushes:   p.NewCounter(PushedCounter),
		Pops:     p.NewCounter(PoppedCounter),
		Rejects:  p.NewCounter(RejectedCounter),
		Discards: p.NewCounter(DiscardedCounter),
	}
}

// InstrumentMeasures decorates a queue with every metric in a Measures except
// Discards, which must be wired through the queue's discard callback via
// CountDiscarded at construction time.
func InstrumentMeasures[T any](next Interface[T], m *Measures) Interface[T] {
	return Instrument(
		next,
		WithDepth[T](m.Depth),
		WithPushes[T](m.Pushes),
		WithPops[T](m.Pops),
		WithRejects[T](m.Rejects),
	)
}
