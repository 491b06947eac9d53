// Package logging assembles structured slog loggers used across zimage
// commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standard field keys (component, file, run_id) so
// diagnostics from the loader, the build report, and the CLI share one shape.
// Logs always go to a separate writer (stderr by default) so the lint and
// build reports on stdout stay clean. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
