// Package telemetry exports catalog metrics to Prometheus.
package telemetry
