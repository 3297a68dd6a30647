// Package telemetry configures OpenTelemetry for the KE-ROUMA API.
//
// Traces and logs are exported over OTLP HTTP. When no endpoint is
// configured the global no-op providers stay in place, so spans and log
// records cost nothing in local development and tests.
package telemetry
