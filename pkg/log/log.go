package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

type Format string

const (
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
	FormatJSON   Format = "json"
)

// GetFormat parses a log format string into a [Format].
func GetFormat(format string) (Format, error) {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "text", "":
		return FormatText, nil
	case "logfmt":
		return FormatLogfmt, nil
	case "json":
		return FormatJSON, nil
	}

	return "", fmt.Errorf("unknown log format %q", format)
}

// GetLevel parses a log level string into a [slog.Level].
func GetLevel(level string) (slog.Level, error) {
	switch strings.TrimSpace(strings.ToLower(level)) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	}

	return slog.LevelWarn, fmt.Errorf("unknown log level %q", level)
}

// CreateHandler creates a [slog.Handler] writing to w, configured by level and
// format strings.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	format, err := GetFormat(logFormat)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil

	case FormatLogfmt:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			Formatter:       charmlog.LogfmtFormatter,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
		}), nil

	case FormatText:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:     charmlog.Level(level),
			Formatter: charmlog.TextFormatter,
		}), nil
	}

	return nil, fmt.Errorf("unknown log format %q", logFormat)
}
