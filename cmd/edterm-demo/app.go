package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dshills/edterm"
	"github.com/dshills/edterm/backend"
	"github.com/dshills/edterm/internal/config"
	"github.com/dshills/edterm/internal/demo"
	"github.com/dshills/edterm/internal/logging"
	"github.com/dshills/edterm/window"
)

// options carry the command line settings into the application.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	file       string
}

// application owns the terminal, the adapter instance, and the demo
// engine behind it. All adapter and engine calls happen on the Run
// goroutine; the config watcher and signal handler only post to it.
type application struct {
	cfg     config.Config
	log     *logging.Logger
	logFile *os.File

	term   *backend.Terminal
	win    *window.Window
	engine *demo.Engine
	handle edterm.Handle

	watcher  *config.Watcher
	reloadCh chan config.Config

	done         chan struct{}
	quitOnce     sync.Once
	shutdownOnce sync.Once
}

func newApp(opts options) (*application, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}

	a := &application{
		cfg:      cfg,
		log:      logging.NullLogger,
		reloadCh: make(chan config.Config, 1),
		done:     make(chan struct{}),
	}

	// Logging goes to a file or nowhere; the terminal owns stderr
	// while the editor runs.
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		a.log = logging.New(logging.Config{
			Level:  logging.ParseLogLevel(cfg.Logging.Level),
			Output: f,
			Prefix: "edterm-demo",
		})
	}

	theme, err := demo.ParseTheme(cfg.Theme.Text, cfg.Theme.Background, cfg.Theme.Margin, cfg.Theme.Caret)
	if err != nil {
		a.closeLog()
		return nil, fmt.Errorf("theme: %w", err)
	}

	engineOpts := []demo.Option{
		demo.WithTheme(theme),
		demo.WithTabWidth(cfg.Editor.TabWidth),
		demo.WithListRows(cfg.Editor.ListRows),
		demo.WithEOLMode(demo.ParseEOL(cfg.Editor.EOL)),
		demo.WithShowWhitespace(cfg.Editor.ShowWhitespace),
		demo.WithLogger(a.log.WithComponent("demo")),
	}
	if opts.file != "" {
		text, err := os.ReadFile(opts.file)
		if err != nil {
			a.closeLog()
			return nil, fmt.Errorf("read %s: %w", opts.file, err)
		}
		engineOpts = append(engineOpts, demo.WithContent(string(text)))
	}
	a.engine = demo.New(engineOpts...)

	tb, err := backend.NewTerminal()
	if err != nil {
		a.closeLog()
		return nil, fmt.Errorf("create terminal: %w", err)
	}
	if err := tb.Init(); err != nil {
		a.closeLog()
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	a.term = tb
	a.term.SetCursorStyle(demo.ParseCaretStyle(cfg.Editor.CaretStyle))
	a.win = window.NewFullScreen(tb)

	h, err := edterm.New(a.engine, a.notify,
		edterm.WithWindow(a.win),
		edterm.WithLogger(a.log.WithComponent("edterm")))
	if err != nil {
		tb.Shutdown()
		a.closeLog()
		return nil, fmt.Errorf("create editor: %w", err)
	}
	a.handle = h

	// Watch the config file for live reload. Watch failure degrades to
	// a static configuration.
	if opts.configPath != "" {
		w, err := config.NewWatcher(opts.configPath, a.queueReload, func(err error) {
			a.log.WithField("error", err).Warn("config reload failed")
		})
		if err != nil {
			a.log.WithField("error", err).Warn("config watch unavailable")
		} else {
			a.watcher = w
		}
	}

	a.log.WithFields(map[string]any{
		"config": opts.configPath,
		"file":   opts.file,
	}).Info("editor started")
	return a, nil
}

// Run drives the editor until quit. Input is polled on its own
// goroutine so the loop can also react to config reloads and signals;
// adapter and engine calls all stay here.
func (a *application) Run() error {
	edterm.Refresh(a.handle)

	events := make(chan backend.Event)
	go func() {
		defer close(events)
		for {
			ev := a.term.PollEvent()
			if ev.Type == backend.EventNone {
				return
			}
			select {
			case events <- ev:
			case <-a.done:
				return
			}
		}
	}()

	for {
		select {
		case <-a.done:
			return errQuit
		case cfg := <-a.reloadCh:
			a.applyConfig(cfg)
		case ev, ok := <-events:
			if !ok {
				return errors.New("terminal closed")
			}
			a.handleEvent(ev)
		}
	}
}

func (a *application) handleEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		key, mods, ok := edterm.KeyFromEvent(ev)
		if !ok {
			return
		}
		edterm.SendKey(a.handle, key, mods)
		edterm.Refresh(a.handle)
	case backend.EventResize:
		a.win.Resize(ev.Width, ev.Height)
		edterm.Refresh(a.handle)
	}
}

// notify receives adapter callbacks. Quit is the only application key;
// everything else belongs to the engine.
func (a *application) notify(_ edterm.Handle, n edterm.Notification) {
	switch n.Code {
	case edterm.NotifyKey:
		if n.Key == 'q' && n.Modifiers.HasCtrl() {
			a.quit()
		}
	case demo.NotifyModified:
		a.log.Debug("document modified")
	}
}

// queueReload hands a freshly loaded configuration to the Run loop.
// Only the newest pending configuration is kept.
func (a *application) queueReload(cfg config.Config) {
	for {
		select {
		case a.reloadCh <- cfg:
			return
		case <-a.reloadCh:
		}
	}
}

// applyConfig applies a live reload. Settings that only exist at
// construction time (EOL mode, list rows, log file) wait for a
// restart.
func (a *application) applyConfig(cfg config.Config) {
	theme, err := demo.ParseTheme(cfg.Theme.Text, cfg.Theme.Background, cfg.Theme.Margin, cfg.Theme.Caret)
	if err != nil {
		a.log.WithField("error", err).Warn("ignoring theme from reloaded config")
	} else {
		a.engine.SetTheme(theme)
	}
	a.engine.SetTabWidth(cfg.Editor.TabWidth)
	a.engine.SetShowWhitespace(cfg.Editor.ShowWhitespace)
	a.term.SetCursorStyle(demo.ParseCaretStyle(cfg.Editor.CaretStyle))
	if a.logFile != nil {
		a.log.SetLevel(logging.ParseLogLevel(cfg.Logging.Level))
	}
	a.cfg = cfg
	a.log.Info("configuration reloaded")
	edterm.Refresh(a.handle)
}

func (a *application) quit() {
	a.quitOnce.Do(func() { close(a.done) })
}

// Shutdown tears the editor down in reverse construction order. Safe
// to call more than once.
func (a *application) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.watcher != nil {
			a.watcher.Close()
		}
		if a.handle != 0 {
			edterm.Destroy(a.handle)
		}
		if a.term != nil {
			a.term.Shutdown()
		}
		a.closeLog()
	})
}

func (a *application) closeLog() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}
