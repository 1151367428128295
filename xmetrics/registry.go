package xmetrics

import (
	"fmt"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Registry is the core abstraction for this package.  It is a Prometheus registry
// and a go-kit metrics.Provider all in one.
//
// The Provider implementation differs slightly from go-kit's: for any metric that
// was preregistered, the provider methods return a go-kit wrapper around that
// metric.  Ad hoc metrics are created, cached, and returned by subsequent calls.
type Registry interface {
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

// registry is the internal Registry implementation
type registry struct {
	*prometheus.Registry

	logger    *zap.Logger
	namespace string
	subsystem string
	cache     map[string]prometheus.Collector
}

func (r *registry) counterVec(name string) *prometheus.CounterVec {
	if existing, ok := r.cache[name]; ok {
		counterVec, ok := existing.(*prometheus.CounterVec)
		if !ok {
			panic(fmt.Errorf("the metric %s is not a counter", name))
		}

		return counterVec
	}

	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      name,
		Help:      name,
	}, []string{})

	r.mustRegister(name, counterVec)
	return counterVec
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.counterVec(name))
}

func (r *registry) gaugeVec(name string) *prometheus.GaugeVec {
	if existing, ok := r.cache[name]; ok {
		gaugeVec, ok := existing.(*prometheus.GaugeVec)
		if !ok {
			panic(fmt.Errorf("the metric %s is not a gauge", name))
		}

		return gaugeVec
	}

	gaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      name,
		Help:      name,
	}, []string{})

	r.mustRegister(name, gaugeVec)
	return gaugeVec
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.gaugeVec(name))
}

func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	if existing, ok := r.cache[name]; ok {
		histogramVec, ok := existing.(*prometheus.HistogramVec)
		if !ok {
			panic(fmt.Errorf("the metric %s is not a histogram", name))
		}

		return gokitprometheus.NewHistogram(histogramVec)
	}

	histogramVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      name,
		Help:      name,
	}, []string{})

	r.mustRegister(name, histogramVec)
	return gokitprometheus.NewHistogram(histogramVec)
}

func (r *registry) Stop() {
}

func (r *registry) mustRegister(name string, c prometheus.Collector) {
	if err := r.Registry.Register(c); err != nil {
		panic(err)
	}

	r.logger.Debug("registered ad hoc metric", zap.String("name", name))
	r.cache[name] = c
}

// NewRegistry creates a Registry from an Options and zero or more metric modules.
// Duplicate metric names across the options and all modules are an error;
// duplicates are defined as metrics with the same name.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	var pr *prometheus.Registry
	if o.pedantic() {
		pr = prometheus.NewPedanticRegistry()
	} else {
		pr = prometheus.NewRegistry()
	}

	r := &registry{
		Registry:  pr,
		logger:    o.logger(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	preregistered := o.metrics()
	for _, m := range modules {
		preregistered = append(preregistered, m()...)
	}

	for _, m := range preregistered {
		if _, ok := r.cache[m.Name]; ok {
			return nil, fmt.Errorf("duplicate metric: %s", m.Name)
		}

		c, err := NewCollector(m, r.namespace, r.subsystem)
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("error while preregistering metric %s: %w", m.Name, err)
		}

		r.logger.Debug("preregistered metric", zap.String("name", m.Name), zap.String("type", m.Type))
		r.cache[m.Name] = c
	}

	return r, nil
}
