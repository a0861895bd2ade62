package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything. Tests use it so
// controller and storage noise stays out of the output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
