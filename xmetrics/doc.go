/*
Package xmetrics provides lightweight metrics plumbing on top of Prometheus
and go-kit.  Components declare the metrics they emit as Metric descriptors
via module functions, and a Registry preregisters those descriptors against a
Prometheus registry while acting as a go-kit provider for runtime consumption.
*/
package xmetrics
