// Package logging builds the slog loggers used across the worker, with a
// human-readable console handler and a structured JSON handler, plus helpers
// for standardized attributes and context-derived fields.
package logging
