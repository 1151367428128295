package xmetrics

import (
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const (
	DefaultNamespace = "threadsafe"
	DefaultSubsystem = "core"
)

// Options is the configurable options for creating a metrics Registry.
type Options struct {
	// Logger is the zap logger used to report metric registrations.  If unset,
	// sallust.Default() is used.
	Logger *zap.Logger

	// Namespace is the default namespace for metrics which don't define one.
	// If not supplied, DefaultNamespace is used.
	Namespace string

	// Subsystem is the default subsystem for metrics which don't define one.
	// If not supplied, DefaultSubsystem is used.
	Subsystem string

	// Pedantic indicates whether the registry is created via NewPedanticRegistry.
	// Set to true for testing or development.
	Pedantic bool

	// Metrics defines a set of predefined metrics, registered immediately by any
	// Registry created from this Options.  This field is optional; module
	// functions passed to NewRegistry are the more common source of metrics.
	Metrics []Metric
}

func (o *Options) logger() *zap.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return sallust.Default()
}

func (o *Options) namespace() string {
	if o != nil && len(o.Namespace) > 0 {
		return o.Namespace
	}

	return DefaultNamespace
}

func (o *Options) subsystem() string {
	if o != nil && len(o.Subsystem) > 0 {
		return o.Subsystem
	}

	return DefaultSubsystem
}

func (o *Options) pedantic() bool {
	if o != nil {
		return o.Pedantic
	}

	return false
}

func (o *Options) metrics() []Metric {
	if o != nil {
		return o.Metrics
	}

	return nil
}
