// Package observability provides OpenTelemetry tracing and metrics setup for
// the automl library. Pipeline and node executions are traced as spans and
// recorded as counters/histograms; with no provider configured all helpers
// are no-ops, so the engine carries no observability cost by default.
package observability
