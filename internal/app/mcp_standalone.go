package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"portfolio/internal/domain"
	mcpserver "portfolio/internal/mcp"
)

// ServeMCP runs the builder as a standalone MCP server on stdin/stdout.
// It loads the seed, serves until stdin closes or the process is
// interrupted, then shuts the app down.
func ServeMCP(a *App, version string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Startup(ctx); err != nil {
		return err
	}
	defer a.Shutdown(context.Background())

	srv := mcpserver.New(mcpserver.Deps{
		Store:     a.store,
		Editor:    a.editor,
		Exporter:  a.exporter,
		Images:    a.images,
		Jobs:      a.jobs,
		Logger:    a.logger.Named("mcp"),
		ExportDir: a.cfg.Export.Dir,
		Locale:    a.cfg.EditorLocale(),
		Version:   version,
	})
	srv.ResetSelection()
	a.OnReload(func(domain.Portfolio) { srv.ResetSelection() })

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ServeStdio() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("interrupted, shutting down", zap.Error(ctx.Err()))
		return nil
	}
}
