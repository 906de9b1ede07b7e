// Package app wires the event bus, the host task queue and the widgets
// declared in a layout file into a running application.
//
// Widgets are only touched from the loop goroutine. Before Run, callers may
// use them directly and drive the loop with Flush; while Run is active, work
// must be handed over with Post.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/buttongroup/internal/config"
	"github.com/dshills/buttongroup/internal/config/watcher"
	"github.com/dshills/buttongroup/internal/event"
	"github.com/dshills/buttongroup/internal/logging"
	"github.com/dshills/buttongroup/internal/runloop"
	"github.com/dshills/buttongroup/internal/widget/action"
)

// Options configures the application. Non-zero fields override the
// settings file.
type Options struct {
	// ConfigPath is the settings file (TOML).
	ConfigPath string

	// LayoutPath is the layout file.
	LayoutPath string

	// Watch enables layout live reload.
	Watch bool

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogOutput receives log lines. Defaults to stderr.
	LogOutput io.Writer
}

// Application is the central coordinator.
type Application struct {
	cfg     *config.Config
	logger  *logging.Logger
	bus     *event.Bus
	loop    *runloop.Loop
	actions *action.Registry

	// Loop-owned state.
	layout *config.Layout
	mounts []*Mount

	metrics *Metrics

	updateMu  sync.RWMutex
	onUpdate  []func()
	watcher   *watcher.Watcher
	running   atomic.Bool
	closeOnce sync.Once
}

// New creates an application from options.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.LayoutPath != "" {
		cfg.Layout.Path = opts.LayoutPath
	}
	if opts.Watch {
		cfg.Layout.Watch = true
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	return NewWithConfig(cfg, opts.LogOutput)
}

// NewWithConfig creates an application from loaded settings.
func NewWithConfig(cfg *config.Config, logOutput io.Writer) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel()
	if logOutput != nil {
		logCfg.Output = logOutput
	}
	logger := logging.New(logCfg)

	app := &Application{
		cfg:     cfg,
		logger:  logger.WithComponent("app"),
		actions: action.NewRegistry(logger),
		metrics: NewMetrics(),
		loop:    runloop.New(runloop.WithLogger(logger)),
	}
	app.bus = event.NewBus(
		event.WithLogger(logger),
		event.WithPanicHandler(func(t string, _ any, recovered any, _ []byte) {
			app.logger.Error("handler panic on %s: %v", t, recovered)
		}),
	)

	return app, nil
}

// Config returns the settings.
func (app *Application) Config() *config.Config { return app.cfg }

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus { return app.bus }

// Loop returns the host task queue.
func (app *Application) Loop() *runloop.Loop { return app.loop }

// Actions returns the action registry. Register custom actions before
// loading a layout.
func (app *Application) Actions() *action.Registry { return app.actions }

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger { return app.logger }

// Mounts returns the mounted groups in layout order.
func (app *Application) Mounts() []*Mount { return app.mounts }

// Layout returns the mounted layout.
func (app *Application) Layout() *config.Layout { return app.layout }

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool { return app.running.Load() }

// OnUpdate registers fn to be called on the loop goroutine whenever the
// mounted widgets may have changed.
func (app *Application) OnUpdate(fn func()) {
	app.updateMu.Lock()
	defer app.updateMu.Unlock()
	app.onUpdate = append(app.onUpdate, fn)
}

func (app *Application) notifyUpdate() {
	app.updateMu.RLock()
	fns := append([]func(){}, app.onUpdate...)
	app.updateMu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// Post runs fn on the loop goroutine.
func (app *Application) Post(fn func()) error {
	return app.loop.Post(fn)
}

// Load reads the configured layout file and mounts it.
func (app *Application) Load() error {
	layout, err := config.LoadLayout(app.cfg.Layout.Path)
	if err != nil {
		return NewOperationError("load", app.cfg.Layout.Path, err)
	}
	return app.Mount(layout)
}

// Run drives the loop until ctx is done or Shutdown is called, watching the
// layout file when configured. Mounted widgets are destroyed on return.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.cfg.Layout.Watch && app.cfg.Layout.Path != "" {
		if err := app.startWatcher(ctx); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
	}

	app.logger.Info("running with %d groups", len(app.mounts))
	err := app.loop.Run(ctx)

	app.stopWatcher()
	app.Unmount()
	app.loop.Flush()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Shutdown stops Run. It is safe to call more than once and from any
// goroutine.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		app.loop.Close()
	})
}

func (app *Application) startWatcher(ctx context.Context) error {
	w, err := watcher.New(
		watcher.WithDebounce(app.cfg.Layout.Debounce),
		watcher.WithLogger(app.logger),
	)
	if err != nil {
		return err
	}
	if err := w.Watch(app.cfg.Layout.Path); err != nil {
		w.Close()
		return err
	}
	w.OnChange(app.handleLayoutChange)
	if err := w.Start(ctx); err != nil {
		w.Close()
		return err
	}
	app.watcher = w
	return nil
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		app.watcher.Close()
		app.watcher = nil
	}
}

// handleLayoutChange runs on the watcher goroutine.
func (app *Application) handleLayoutChange(ev watcher.Event) {
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		app.logger.Warn("layout %s was removed; keeping current widgets", ev.Path)
		return
	}

	layout, err := config.LoadLayout(ev.Path)
	if err != nil {
		app.metrics.RecordReload(err)
		app.logger.Error("reload: %v", err)
		return
	}

	if err := app.loop.Post(func() {
		err := app.Reload(layout)
		app.metrics.RecordReload(err)
		if err != nil {
			app.logger.Error("reload: %v", err)
		}
	}); err != nil {
		app.logger.Debug("reload dropped: %v", err)
	}
}
