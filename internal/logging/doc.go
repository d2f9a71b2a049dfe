// Package logging builds the slog loggers used across lightbox and defines
// the standardized structured field keys shared by the staging pipeline and
// the CLI.
package logging
