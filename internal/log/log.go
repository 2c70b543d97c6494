// Package log provides the leveled logging output of the compiler
// commands, built on log/slog.
package log

import (
	"io"
	"log/slog"
)

var (
	// LogLevel is a variable holding the log level. It can be changed at
	// runtime, before or after loggers are created.
	LogLevel = &slog.LevelVar{}

	// SetDefault overrides the default logger.
	SetDefault = slog.SetDefault
)

// NewLogger returns a logger writing human-readable leveled records to
// out, honoring the shared LogLevel variable.
func NewLogger(out io.Writer) *Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: LogLevel,
	}))
}

// Aliases to the slog types and helpers used throughout the commands.
type (
	Attr   = slog.Attr
	Level  = slog.Level
	Logger = slog.Logger
)

var (
	String = slog.String
	Int    = slog.Int
	Any    = slog.Any
)

// Levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)
