// Package server initializes and runs the gophauth server: it opens the
// store, applies migrations, wires the account service and serves HTTP until
// a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/httpserver"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/tracing"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	registry       *prometheus.Registry
	accountService *services.AccountService
	stopTracing    tracing.ShutdownFunc
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "using the default JWT secret; set JWT_SECRET in production")
	}

	db, driver, err := dbx.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewRepositoryManager(driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(c.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	// before the service is built so its tracer comes from the SDK provider
	stopTracing, err := tracing.Setup(ctx, c.TraceEndpoint)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	as := services.NewAccountService(
		db, rm, hasher,
		auth.NewJWTIssuer([]byte(c.SecretKey), c.TokenValidityDuration),
		c.Policy(),
		metrics.New(registry),
		logger,
	)

	logger.Info(ctx, "App initialized", "driver", string(driver), "policy", string(c.Policy().Password),
		"tracing", c.TraceEndpoint != "")

	return &App{config: c, logger: logger, db: db, registry: registry, accountService: as, stopTracing: stopTracing}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accountService, app.registry)

	if err := s.Run(ctx); err != nil {
		logging.LogError(ctx, app.logger, "http server failed", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	// flush buffered spans; ctx is already cancelled here
	flushCtx, cancelFlush := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancelFlush()
	if err := app.stopTracing(flushCtx); err != nil {
		logging.LogError(ctx, app.logger, "tracing shutdown failed", err)
	}

	if err := app.db.Close(); err != nil {
		logging.LogError(ctx, app.logger, "db close failed", err)
	}
	app.logger.Info(ctx, "App stopped")
}
