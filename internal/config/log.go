package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// SetLogLevel sets the log level for the application from the LOG_LEVEL environment variable.
func SetLogLevel() {
	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		slog.Error("Invalid log level", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func parseLogLevel(envLevel string) (slog.Level, error) {
	switch strings.ToUpper(envLevel) {
	case "":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", envLevel)
	}
}
