// Package logging wires slog for the service: JSON to stdout from the first
// line of main, with the batched Postgres handler fanned in once a database
// connection exists.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the stdout JSON logger. Runs before config and database so
// even boot failures are structured.
func Setup() {
	slog.SetDefault(slog.New(NewStdoutHandler()))
}

// NewStdoutHandler returns the stdout JSON handler, also used as one leg of
// the multi-handler fan-out after the database comes up.
func NewStdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
