package logging

import (
	"io"
	"log/slog"
	"os"
)

// New devuelve un slog.Logger según el formato configurado ("json" o "text").
// Si w es nil escribe en stdout.
func New(format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	options := &slog.HandlerOptions{AddSource: true}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
