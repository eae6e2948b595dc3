// Package logging configures the structured logger shared by the store,
// services and server.
package logging

import (
	"log/slog"
	"os"
)

// New returns a text-format slog logger writing to stderr.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
