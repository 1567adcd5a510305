package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	xhttp "FinBridge/pkg/http"
	applogger "FinBridge/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	httpServer *xhttp.Server
	logger     *applogger.Logger
	closers    []namedCloser
}

type namedCloser struct {
	name string
	c    io.Closer
}

// New creates a new App. Resources are closed in the given order after the
// HTTP server has drained.
func New(httpServer *xhttp.Server, l *applogger.Logger, resources ...io.Closer) *App {
	if l == nil {
		l = applogger.Nop()
	}
	a := &App{httpServer: httpServer, logger: l}
	for _, r := range resources {
		if r != nil {
			a.closers = append(a.closers, namedCloser{name: resourceName(r), c: r})
		}
	}
	return a
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and shuts down once ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	<-ctx.Done()

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	for _, r := range a.closers {
		if err := r.c.Close(); err != nil {
			a.logger.Warn("close error", applogger.String("resource", r.name), applogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	a.logger.Info("shutdown complete")
	return firstErr
}

func resourceName(r io.Closer) string {
	return fmt.Sprintf("%T", r)
}
