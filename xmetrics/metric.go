package xmetrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
)

// Module is a function type that returns prebuilt metrics.  Packages that emit
// metrics expose a Metrics function of this type naming everything they record.
type Module func() []Metric

// Metric describes a single metric that will be preregistered.  This type loosely
// corresponds with Prometheus' Opts struct.
type Metric struct {
	// Name is the required name of this metric.
	Name string

	// Type is the required type of metric, one of the type constants in this package.
	Type string

	// Namespace is the namespace of this metric.  The enclosing Options' Namespace
	// field is used if this is not supplied.
	Namespace string

	// Subsystem is the subsystem of this metric.  The enclosing Options' Subsystem
	// field is used if this is not supplied.
	Subsystem string

	// Help is the help string for this metric.  If not supplied, the metric's name is used.
	Help string

	// ConstLabels are the Prometheus ConstLabels for this metric.  This field is optional.
	ConstLabels map[string]string

	// Buckets describes the observation buckets for a histogram.  Ignored for
	// other metric types.
	Buckets []float64
}

// NewCollector creates a Prometheus collector from a Metric descriptor.  The name
// must not be empty.  Namespace, subsystem, and help take on defaults when the
// descriptor leaves them unset.
func NewCollector(m Metric, defaultNamespace, defaultSubsystem string) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errors.New("a name is required for a metric")
	}

	var (
		namespace = m.Namespace
		subsystem = m.Subsystem
		help      = m.Help
	)

	if len(namespace) == 0 {
		namespace = defaultNamespace
	}

	if len(subsystem) == 0 {
		subsystem = defaultSubsystem
	}

	if len(help) == 0 {
		help = m.Name
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, []string{}), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, []string{}), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
			Buckets:     m.Buckets,
		}, []string{}), nil

	default:
		return nil, fmt.Errorf("unsupported metric type: %s", m.Type)
	}
}
