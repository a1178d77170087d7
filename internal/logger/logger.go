package logger

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// New builds the process logger: human-readable text on a terminal,
// JSON when output is captured by a log collector.
func New() *slog.Logger {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}
