package logger

import (
	"log/slog"
	"os"
)

// NewLogger builds a text slog.Logger writing to stdout. An empty level
// defaults to INFO.
func NewLogger(logLevel string) (*slog.Logger, error) {
	level := slog.LevelInfo
	if logLevel != "" {
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, err
		}
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}
