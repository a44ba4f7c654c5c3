// Package logging configures the process-wide logger.
//
// A TUI owns the terminal, so the default sink is a file under the log
// directory; stderr joins the fanout only for debug runs outside the TUI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

// Options controls where log records go.
type Options struct {
	// Dir is the log file directory; empty disables the file sink.
	Dir string
	// Debug lowers the level to Debug.
	Debug bool
	// Stderr adds a stderr handler. Must stay false while a TUI runs.
	Stderr bool
}

// Setup builds the root logger, installs it as slog's default, and
// returns it with a closer for the log file.
func Setup(opts Options) (*slog.Logger, func() error) {
	if opts.Debug {
		level.Set(slog.LevelDebug)
	}

	var handlers []slog.Handler
	closeFile := func() error { return nil }

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err == nil {
			f, err := os.OpenFile(filepath.Join(opts.Dir, "blink.log"),
				os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err == nil {
				handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
				closeFile = f.Close
			}
		}
	}
	if opts.Stderr {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(io.Discard, nil))
	}

	logger := slog.New(slogmulti.Fanout(handlers...))
	slog.SetDefault(logger)
	return logger, closeFile
}
