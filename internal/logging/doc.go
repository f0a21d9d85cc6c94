// Package logging assembles structured slog loggers and formatting helpers
// used across discsift.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so detection code can tag every line
// with the run ID and the phase that produced it. A no-op logger is provided
// for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging
