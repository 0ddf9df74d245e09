// Package logging constructs the slog loggers used across the converter and
// defines the standardized attribute keys that make run, batch, and bill
// identifiers greppable in structured output.
package logging
