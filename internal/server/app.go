// Package server initializes and runs the resolver server: it selects the
// document store backend, wires the catalog and link services and serves the
// HTTP API with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/untpkit/resolver/internal/catalog"
	"github.com/untpkit/resolver/internal/docstore"
	"github.com/untpkit/resolver/internal/i18n"
	"github.com/untpkit/resolver/internal/logging"
	"github.com/untpkit/resolver/internal/server/config"
	"github.com/untpkit/resolver/internal/server/httpapi"
	"github.com/untpkit/resolver/internal/server/links"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       docstore.Store
	catalog     *catalog.StoreCatalog
	linkService *links.Service
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	store, err := newStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	cat := catalog.NewStoreCatalog(store, c.CatalogCacheTTL)
	ls := links.NewService(store, cat, logger, c.ResolverDomain)

	return &App{config: c, logger: logger, store: store, catalog: cat, linkService: ls}, nil
}

func newStore(ctx context.Context, c *config.Config) (docstore.Store, error) {
	switch c.StoreBackend {
	case config.BackendPostgres:
		return docstore.NewPostgresStore(ctx, c.DatabaseDSN)
	case config.BackendS3:
		return docstore.NewS3Store(ctx, docstore.S3Options{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := httpapi.NewRouter(httpapi.Options{
		Links:          app.linkService,
		Catalog:        app.catalog,
		Translator:     i18n.NewMapTranslator(i18n.English),
		Logger:         app.logger,
		ResolverDomain: app.config.ResolverDomain,
		VocDomain:      app.config.LinkTypeVocDomain,
		SecretKey:      []byte(app.config.SecretKey),
		APIKeyHash:     app.config.APIKeyHash,
	})

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http server shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddrHTTP, "backend", app.config.StoreBackend)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "http server error", "error", err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
