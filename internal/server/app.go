// Package server assembles the Decipline development server: in-memory
// storage, account/task/advice services, the JSON API and the optional
// gRPC endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/decipline/internal/logging"
	"github.com/dmitrijs2005/decipline/internal/server/config"
	"github.com/dmitrijs2005/decipline/internal/server/httpapi"
	"github.com/dmitrijs2005/decipline/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/decipline/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/decipline/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	http   *http.Server
	grpc   *gs.GRPCServer
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	rm := repomanager.NewInMemoryRepositoryManager()

	us := services.NewUserService(rm, c)
	ts := services.NewTaskService(rm)
	as := services.NewAdviceService(rm, c.AdviceQuota, c.AdviceWindow)

	app := &App{
		config: c,
		logger: logger,
		http: &http.Server{
			Addr: c.HTTPAddr,
			Handler: httpapi.NewRouter(httpapi.Deps{
				Users:  us,
				Tasks:  ts,
				Advice: as,
				Logger: logger.With("module", "http_server"),
			}),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}

	if c.GRPCAddr != "" {
		app.grpc = gs.NewGRPCServer(c.GRPCAddr, logger, us, ts, as)
	}

	return app
}

// Run serves until ctx is cancelled or one of the listeners fails, in
// which case the others are stopped too.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	ln, err := net.Listen("tcp", app.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.http.Addr, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.serveHTTP(ctx, ln)
	})

	if app.grpc != nil {
		g.Go(func() error {
			return app.grpc.Run(ctx)
		})
	}

	return g.Wait()
}

func (app *App) serveHTTP(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())
		errCh <- app.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
