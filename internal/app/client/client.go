package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/exp/slog"

	"gamelib/internal/app/client/config"
	"gamelib/internal/domain/catalog"
	"gamelib/internal/domain/game"
	"gamelib/internal/infrastructure/storage"
)

// App wires the local store, the catalog client and the session for one run
// of the client.
type App struct {
	config     *config.Config
	log        *slog.Logger
	catalog    *CatalogClient
	store      game.Repository
	persistent bool
	session    *Session

	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
	shutdown bool
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	catalogCl, err := NewCatalogClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	var opts []storage.Option
	if cfg.WatchExternal {
		opts = append(opts, storage.WithExternalWatch(0))
	}
	store, persistent := storage.Open(cfg.DataPath, log, opts...)

	session := NewSession(store, catalogCl, log, WithOperationTimeout(cfg.OperationTimeout))
	if err := session.Initialize(); err != nil {
		session.Close()
		store.Close()
		return nil, fmt.Errorf("init session: %w", err)
	}

	log.Debug("client started",
		"catalog", cfg.CatalogBaseURL,
		"data_path", cfg.DataPath,
		"persistent", persistent,
		"env", cfg.Env,
	)

	return &App{
		config:     cfg,
		log:        log,
		catalog:    catalogCl,
		store:      store,
		persistent: persistent,
		session:    session,
	}, nil
}

func (a *App) Session() *Session {
	return a.session
}

func (a *App) Config() *config.Config {
	return a.config
}

// Persistent reports whether games are saved to disk. It is false when the
// database could not be opened and an in-memory store is used instead.
func (a *App) Persistent() bool {
	return a.persistent
}

// RemoteDetails fetches the full catalog entry of one game.
func (a *App) RemoteDetails(ctx context.Context, id int64) (*catalog.Summary, error) {
	return a.catalog.Get(ctx, id)
}

// Run blocks until ctx is done or the process receives a termination signal.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()
	defer cancel()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.handleSignals(ctx, cancel)
	}()

	<-ctx.Done()
	a.wg.Wait()
}

func (a *App) handleSignals(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		a.log.Info("received shutdown signal", "signal", sig.String())
		cancel()
	case <-ctx.Done():
	}
}

// Shutdown waits for running operations, then closes the session and the store.
func (a *App) Shutdown() {
	a.mu.Lock()
	if a.shutdown {
		a.mu.Unlock()
		return
	}
	a.shutdown = true
	cancel := a.cancel
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	a.wg.Wait()

	a.session.Wait()
	a.session.Close()
	if err := a.store.Close(); err != nil && !errors.Is(err, storage.ErrClosed) {
		a.log.Warn("failed to close store", "error", err)
	}
	a.log.Debug("client stopped")
}

type appKey struct{}

// WithApp returns a copy of ctx carrying app.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext returns the App stored by WithApp, or nil.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appKey{}).(*App)
	return app
}
