// Package logging configures the process-wide slog.Logger (§6, §A.1):
// JSON to stderr in serve mode (stdout carries the MCP transport's own
// frames), a human text handler to stderr everywhere else, colorized when
// stderr is a terminal. LOG
// selects the level the way the teacher's CLI lets viper.AutomaticEnv
// pick up environment overrides.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// New builds a slog.Logger. jsonMode forces the JSON handler regardless
// of TTY detection — callers pass true for `serve`, false otherwise. The
// level comes from the LOG environment variable (debug|info|warn|error,
// default info).
func New(jsonMode bool) *slog.Logger {
	level := parseLevel(os.Getenv("LOG"))
	opts := &slog.HandlerOptions{Level: level}

	if jsonMode {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(newColorHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewCorrelationID mints an id for an Internal-kind error (§7), so an
// operator can grep one value across a multi-stage failure.
func NewCorrelationID() string {
	return uuid.NewString()
}

// LogInternal logs err at Error level with a fresh correlation id attached,
// returning the id so the caller can also surface it to the user.
func LogInternal(ctx context.Context, logger *slog.Logger, msg string, err error) string {
	id := NewCorrelationID()
	logger.ErrorContext(ctx, msg, "error", err, "correlation_id", id)
	return id
}

// colorHandler wraps slog.TextHandler, colorizing the message by level the way
// the teacher's CLI colors its own stdout output with fatih/color.
type colorHandler struct {
	slog.Handler
	level slog.Leveler
}

func newColorHandler(w *os.File, opts *slog.HandlerOptions) *colorHandler {
	return &colorHandler{Handler: slog.NewTextHandler(w, opts), level: opts.Level}
}

func (h *colorHandler) Handle(ctx context.Context, r slog.Record) error {
	var paint func(format string, a ...interface{}) string
	switch {
	case r.Level >= slog.LevelError:
		paint = color.New(color.FgRed).SprintfFunc()
	case r.Level >= slog.LevelWarn:
		paint = color.New(color.FgYellow).SprintfFunc()
	case r.Level >= slog.LevelInfo:
		paint = color.New(color.FgCyan).SprintfFunc()
	default:
		paint = color.New(color.FgWhite).SprintfFunc()
	}
	r.Message = paint("%s", r.Message)
	return h.Handler.Handle(ctx, r)
}
