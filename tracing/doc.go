// Package tracing integrates OpenTelemetry with call point invocations.
// Spans are no-op until Init or InitWithExporter installs a provider.
package tracing
