package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkarlsen/blink/internal/config"
	"github.com/mkarlsen/blink/internal/fonts"
	"github.com/mkarlsen/blink/internal/logging"
	"github.com/mkarlsen/blink/internal/source"
	"github.com/mkarlsen/blink/internal/store"
	"github.com/mkarlsen/blink/internal/tabs"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	// framePeriod is the cadence of the playback loop. Word durations are
	// measured against wall-clock deltas, so the cadence only bounds
	// display jitter, never timing drift.
	framePeriod = 25 * time.Millisecond

	// savePeriod is how often open tabs are autosaved.
	savePeriod = 5 * time.Second
)

// engineOptions are command-line overrides applied on top of the
// settings file.
type engineOptions struct {
	Storage string
	WPM     int // 0 keeps the configured default
	Debug   bool
	Fresh   bool // skip restoring the previous tab set
}

// engine bundles everything a front-end needs wired before it shows
// anything: settings, logging, storage, the font catalog, and the tab
// manager with the previous session restored.
type engine struct {
	cfg       *config.Settings
	log       *slog.Logger
	closeLog  func() error
	store     store.Store
	catalog   *fonts.Catalog
	mgr       *tabs.Manager
	stopWatch context.CancelFunc
}

func startEngine(opts engineOptions) (*engine, error) {
	cfg := config.Load()
	if opts.Storage != "" {
		cfg.Storage.Backend = opts.Storage
	}
	if opts.WPM != 0 {
		cfg.Defaults.WPM = opts.WPM
	}
	if opts.Debug {
		cfg.Debug = true
	}

	log, closeLog := logging.Setup(logging.Options{
		Dir:   filepath.Join(store.StateDir(), "logs"),
		Debug: cfg.Debug,
	})

	st, err := store.Open(cfg.Storage.Backend)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open storage backend: %w", err)
	}

	catalog := fonts.Discover(fonts.Dir())

	// Fonts dropped into the directory show up without a restart. The
	// catalog is safe to rescan concurrently; only the notification has
	// to stay off the engine, so it just logs.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	if err := catalog.Watch(watchCtx, func(names []string) {
		log.Info("font catalog updated", "fonts", len(names))
	}); err != nil {
		log.Debug("font watch unavailable", "error", err)
	}

	mgr := tabs.NewManager(st, catalog, tabs.Defaults{
		WPM: cfg.Defaults.WPM,
		Font: fonts.Settings{
			Name: cfg.Defaults.FontName,
			Size: cfg.Defaults.FontSize,
		},
	}, log)

	if opts.Fresh {
		mgr.Create(tabs.Request{Home: true, Activate: true})
	} else {
		mgr.Restore()
	}

	log.Info("engine started",
		"version", version,
		"backend", cfg.Storage.Backend,
		"tabs", mgr.Len(),
		"fonts", len(catalog.Names()))

	return &engine{
		cfg:       cfg,
		log:       log,
		closeLog:  closeLog,
		store:     st,
		catalog:   catalog,
		mgr:       mgr,
		stopWatch: stopWatch,
	}, nil
}

// shutdown persists tabs and settings and closes the log sink.
func (e *engine) shutdown() {
	e.stopWatch()
	e.mgr.Save()

	d := e.mgr.Defaults()
	e.cfg.Defaults.WPM = d.WPM
	e.cfg.Defaults.FontName = d.Font.Name
	e.cfg.Defaults.FontSize = d.Font.Size
	if err := config.Save(e.cfg); err != nil {
		e.log.Warn("settings save failed", "error", err)
	}

	if err := e.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing log: %v\n", err)
	}
}

// openPath loads a file named on the command line and opens it in a new
// active tab. Interactive opens go through the async path instead.
func (e *engine) openPath(path string) error {
	words, err := source.Load(path)
	if err != nil {
		return err
	}
	e.mgr.Create(tabs.Request{
		Words:    words,
		FilePath: path,
		Activate: true,
	})
	return nil
}

func supportedExtensions() []string {
	var exts []string
	for _, f := range source.Registered() {
		exts = append(exts, f.Extensions()...)
	}
	return exts
}

// readStdin returns piped input, if any. An interactive terminal yields
// nothing.
func readStdin() (string, bool) {
	stat, err := os.Stdin.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return "", false
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil || strings.TrimSpace(string(data)) == "" {
		return "", false
	}
	return string(data), true
}
