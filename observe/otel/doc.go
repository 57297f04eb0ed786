// Package otel provides an OpenTelemetry observer plugin for the guard library.
// It emits span events (scope enter/exit, action fired/skipped) with low overhead.
package otel
