// Package cli implements the rugweave command-line interface.
//
// # Commands
//
//   - render: draw a rug to PNG
//   - hash: print the pixel hash of a render
//   - generate: derive a parameter file from a seed
//   - traits: print the rarity traits of a rug
//   - glyphs: list the text alphabet
//   - view: show a rug in the terminal and age it with the keyboard
//   - serve: run the preview HTTP service
//
// Every command accepts --verbose (-v) for debug logging. The logger is a
// charmbracelet/log logger carried in the command context; the renderer
// logs through the same logger as a slog handler.
package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// slogger adapts l for the packages that log through log/slog.
func slogger(l *log.Logger) *slog.Logger {
	return slog.New(l)
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
