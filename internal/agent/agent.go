package agent

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"sync"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/govportal/internal/api"
	"github.com/mwantia/govportal/internal/catalog"
	config "github.com/mwantia/govportal/internal/config/server"
	"github.com/mwantia/govportal/internal/session"
	"github.com/mwantia/govportal/pkg/db/store"
	"github.com/mwantia/govportal/pkg/log"
)

type PortalAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg *config.BaseServerConfig
	sc  *container.ServiceContainer
	log log.LoggerService

	store    *store.SQLiteStore
	sessions *session.Manager
	server   *http.Server
}

func NewAgent(cfg *config.BaseServerConfig) *PortalAgent {
	return &PortalAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("agent", cfg.Log),
	}
}

func (pa *PortalAgent) setupServices(ctx context.Context) error {
	errs := container.Errors{}

	pa.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](pa.sc,
		container.With[log.LoggerService](),
		container.WithInstance(pa.log)))

	pa.log.Debug("Opening portal store at '%s'...", pa.cfg.Database.SQLite.Path)
	st, err := store.NewFromConfig(pa.cfg.Database)
	if err != nil {
		return err
	}
	if err := st.Connect(ctx); err != nil {
		st.Close()
		return fmt.Errorf("failed to connect to portal store: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return fmt.Errorf("failed to migrate portal store: %w", err)
	}
	pa.store = st

	pa.log.Debug("Registering 'PortalStore'...")
	errs.Add(container.Register[store.SQLiteStore](pa.sc,
		container.With[store.PortalStore](),
		container.WithInstance(st)))

	return errs.Errors()
}

// resolve looks up the service registered for the interface T.
func resolve[T any](ctx context.Context, sc *container.ServiceContainer) (T, error) {
	var zero T

	typ := reflect.TypeOf((*T)(nil)).Elem()
	ok, resolved := sc.ResolveByType(ctx, typ)
	if !ok {
		return zero, fmt.Errorf("no service registered for '%s'", typ)
	}

	service, ok := resolved.(T)
	if !ok {
		return zero, fmt.Errorf("resolved service is not a '%s'", typ)
	}
	return service, nil
}

func (pa *PortalAgent) setupServer(ctx context.Context) error {
	if _, _, err := net.SplitHostPort(pa.cfg.HTTP.Address); err != nil {
		return fmt.Errorf("invalid http address '%s': %w", pa.cfg.HTTP.Address, err)
	}

	logger, err := resolve[log.LoggerService](ctx, pa.sc)
	if err != nil {
		return err
	}
	st, err := resolve[store.PortalStore](ctx, pa.sc)
	if err != nil {
		return err
	}

	pa.sessions = session.NewManager(catalog.NewOpener(st, catalog.OpenOptions{
		ItemsPerPage:     pa.cfg.Table.ItemsPerPage,
		ProjectDateField: pa.cfg.Table.DateField,
		Logger:           logger.Named("catalog"),
	}), pa.cfg.Table.TTL(), logger.Named("session"))

	srv := api.NewServer(pa.sessions, st, logger.Named("http"))
	pa.server = &http.Server{
		Addr:    pa.cfg.HTTP.Address,
		Handler: api.NewRouter(srv, pa.cfg.HTTP.CORS.AllowedOrigins),
	}
	return nil
}

// setup prepares services and the http server. The store is closed again
// when any step fails after it was opened.
func (pa *PortalAgent) setup(ctx context.Context) error {
	err := pa.setupServices(ctx)
	if err == nil {
		err = pa.setupServer(ctx)
	}
	if err != nil {
		pa.closeStore()
	}
	return err
}

func (pa *PortalAgent) closeStore() {
	if pa.store == nil {
		return
	}
	if err := pa.store.Close(); err != nil {
		pa.log.Warn("Failed to close portal store: %v", err)
	}
}

func (pa *PortalAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	pa.mutex.Lock()

	if err := pa.setup(ctx); err != nil {
		pa.mutex.Unlock()
		return err
	}

	errCh := make(chan error, 1)

	pa.wait.Add(2)
	go func() {
		defer pa.wait.Done()
		pa.sessions.Run(ctx, pa.cfg.Table.Sweep())
	}()
	go func() {
		defer pa.wait.Done()
		pa.log.Info("Listening on '%s'", pa.server.Addr)
		if err := pa.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	pa.mutex.Unlock()

	var serveErr error
	select {
	case <-ctx.Done():
		pa.log.Info("Shutting down...")
	case serveErr = <-errCh:
		pa.log.Error("%v", serveErr)
		cancel()
	}

	shutdown, cancelShutdown := context.WithTimeout(context.Background(), pa.cfg.Shutdown())
	defer cancelShutdown()

	if err := pa.server.Shutdown(shutdown); err != nil {
		pa.log.Warn("Failed to shut down http server gracefully: %v", err)
	}

	if err := pa.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	pa.wait.Wait()

	pa.closeStore()
	return serveErr
}
