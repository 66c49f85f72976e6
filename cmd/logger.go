package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

var logOutput io.Writer = os.Stderr

// newLogger returns a logger writing coloured, human readable records
// to output at or above level
func newLogger(output io.Writer, level string, noColor bool) (*slog.Logger,
	error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	handler := tint.NewHandler(output, &tint.Options{
		Level:      l,
		AddSource:  false,
		TimeFormat: "2006-01-02 15:04:05.000Z07:00",
		NoColor:    noColor,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
	return slog.New(handler), nil
}
