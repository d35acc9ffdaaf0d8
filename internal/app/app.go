package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolio/internal/blob"
	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/editor"
	"portfolio/internal/export"
	"portfolio/internal/schema"
	"portfolio/internal/seed"
	"portfolio/internal/service"
)

// App is the composition root: one document store plus the collaborators
// the shells (CLI, MCP) drive it through.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	schemas  *schema.Registry
	images   *blob.Registry
	store    *service.PortfolioService
	editor   *editor.Editor
	exporter *export.Exporter
	jobs     *service.JobGuard

	watcher *seed.Watcher

	mu       sync.Mutex
	onReload []func(domain.Portfolio)
}

// New wires the app from cfg. Nothing is loaded until Startup.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		cfg:     cfg,
		logger:  logger,
		schemas: schema.NewDefaultRegistry(),
		images:  blob.NewRegistry(),
		jobs:    &service.JobGuard{},
	}
	a.store = service.NewPortfolioService(service.PortfolioDeps{
		Schemas:      a.schemas,
		Images:       a.images,
		Emitter:      logEmitter{logger: logger.Named("events")},
		Logger:       logger.Named("store"),
		HistoryLimit: cfg.History.MaxDepth,
	})
	a.editor = editor.New(a.store, a.schemas, a.images, logger.Named("editor"))
	a.exporter = export.New(a.images)
	return a
}

// Startup loads the seed document and, when configured, starts watching it.
func (a *App) Startup(ctx context.Context) error {
	p, err := seed.Load(a.cfg.Seed.Path)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	if !a.store.SetPortfolio(p) {
		return fmt.Errorf("load seed: document rejected by the store")
	}
	a.logger.Info("portfolio loaded",
		zap.String("name", p.Name),
		zap.Int("sections", len(p.Sections)),
		zap.String("seed", seedName(a.cfg.Seed.Path)))

	if a.cfg.Seed.Watch {
		w, err := seed.Watch(ctx, a.cfg.Seed.Path, a.reload, seed.WithLogger(a.logger.Named("seed")))
		if err != nil {
			return err
		}
		a.watcher = w
	}
	return nil
}

// Shutdown stops the watcher, waits for running exports and releases every
// transient image.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("close seed watcher", zap.Error(err))
		}
		a.watcher = nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	a.jobs.WaitAll(waitCtx)

	if n := a.images.ReleaseAll(); n > 0 {
		a.logger.Debug("released images on shutdown", zap.Int("count", n))
	}
}

// OnReload registers fn to run after the watched seed replaced the document.
func (a *App) OnReload(fn func(domain.Portfolio)) {
	a.mu.Lock()
	a.onReload = append(a.onReload, fn)
	a.mu.Unlock()
}

func (a *App) reload(p domain.Portfolio) {
	if !a.store.SetPortfolio(p) {
		a.logger.Warn("seed reload rejected by the store")
		return
	}
	a.mu.Lock()
	hooks := append([]func(domain.Portfolio){}, a.onReload...)
	a.mu.Unlock()
	for _, fn := range hooks {
		fn(p)
	}
}

func (a *App) Config() *config.Config { return a.cfg }
func (a *App) Logger() *zap.Logger { return a.logger }
func (a *App) Schemas() *schema.Registry { return a.schemas }
func (a *App) Images() *blob.Registry { return a.images }
func (a *App) Store() *service.PortfolioService { return a.store }
func (a *App) Editor() *editor.Editor { return a.editor }
func (a *App) Exporter() *export.Exporter { return a.exporter }
func (a *App) Jobs() *service.JobGuard { return a.jobs }

func seedName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// logEmitter forwards store events to the log. Headless shells have no
// frontend to notify.
type logEmitter struct {
	logger *zap.Logger
}

func (e logEmitter) Emit(_ context.Context, event string, data any) {
	fields := []zap.Field{zap.String("event", event)}
	if ce, ok := data.(service.ChangeEvent); ok {
		fields = append(fields,
			zap.String("op", ce.Op),
			zap.Bool("canUndo", ce.Status.CanUndo),
			zap.Bool("canRedo", ce.Status.CanRedo))
	}
	e.logger.Debug("emit", fields...)
}
