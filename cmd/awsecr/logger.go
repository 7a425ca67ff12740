package main

import (
	"fmt"
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	parsed, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           parsed,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return slog.New(handler), nil
}
