package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/decipline/internal/client/client"
	"github.com/dmitrijs2005/decipline/internal/client/config"
	"github.com/dmitrijs2005/decipline/internal/client/metrics"
	"github.com/dmitrijs2005/decipline/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/decipline/internal/client/services"
	"github.com/dmitrijs2005/decipline/internal/client/session"
	"github.com/dmitrijs2005/decipline/internal/client/state"
	"github.com/dmitrijs2005/decipline/internal/client/tasks"
	"github.com/dmitrijs2005/decipline/internal/client/view"
	"github.com/dmitrijs2005/decipline/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the interactive client. It owns the local state database, the
// backend transport and the dispatchers the REPL commands call into.
type App struct {
	config *config.Config
	log    logging.Logger

	auth    services.AuthService
	profile services.ProfileService
	tasks   services.TaskService
	account services.AccountService
	store   *state.Store

	registry *prometheus.Registry

	wait    func()
	closers []io.Closer

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the state database, connects the configured transport and
// wires the session, task and view layers together.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := newAPIClient(c, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, log, db, api)
	a.closers = append(a.closers, api, db)
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, db *sql.DB, api client.Client) *App {
	registry := prometheus.NewRegistry()

	st := state.New()
	views := view.NewController(log)
	syn := tasks.NewSynchronizer(st, api, log)
	tokens := session.NewMetadataTokenStore(metadata.NewSQLiteRepository(db))
	sess := session.NewStore(st, tokens, api, syn, views, log)

	d := services.NewDispatcher(services.Deps{
		API:     api,
		State:   st,
		Session: sess,
		Tasks:   syn,
		Views:   views,
		Metrics: metrics.NewCollector(registry),
		Logger:  log,
	})

	return &App{
		config:   c,
		log:      log,
		auth:     d,
		profile:  d,
		tasks:    d,
		account:  d,
		store:    st,
		registry: registry,
		wait:     d.Wait,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

func newAPIClient(c *config.Config, log logging.Logger) (client.Client, error) {
	opts := []client.Option{
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RequestRate),
		client.WithLogger(log),
	}

	switch c.Transport {
	case config.TransportGRPC:
		api, err := client.NewGRPCClient(c.GRPCEndpointAddr, opts...)
		if err != nil {
			return nil, err
		}
		return api, nil
	default:
		return client.NewHTTPClient(c.ServerBaseURL, opts...), nil
	}
}

// Run starts the optional metrics listener, restores the previous session
// and blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if a.config.MetricsAddr != "" {
		go func() {
			if err := serveMetrics(ctx, a.config.MetricsAddr, metrics.Handler(a.registry), a.log); err != nil {
				a.log.Error(ctx, "metrics listener stopped", "error", err)
			}
		}()
	}

	a.Root(ctx)
	return nil
}

// Close waits for background work and releases the transport and database.
func (a *App) Close() error {
	if a.wait != nil {
		a.wait()
	}
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
