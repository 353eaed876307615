// Package httpserver exposes the account service over HTTP/JSON.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/web"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// AccountService is the subset of services.AccountService the handlers use.
type AccountService interface {
	Register(ctx context.Context, req services.RegisterRequest) error
	Authenticate(ctx context.Context, c services.Credentials) (*services.AuthResult, error)
	Profile(ctx context.Context, token string) (*services.Profile, error)
}

type HTTPServer struct {
	address  string
	accounts AccountService
	gatherer prometheus.Gatherer
	logger   logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, accounts AccountService, gatherer prometheus.Gatherer) *HTTPServer {
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		accounts: accounts,
		gatherer: gatherer,
	}
}

// Handler builds the routed handler with the middleware chain applied.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth", s.handleAuth)
	mux.HandleFunc("POST /api/auth", s.handleAuth)
	mux.Handle("GET /api/profile", s.requireBearer(http.HandlerFunc(s.handleProfile)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	mux.Handle("GET /", web.Handler())

	return s.logRequests(securityHeaders(s.recoverPanics(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	failed := make(chan struct{})
	stopped := make(chan error, 1)
	go func() {
		select {
		case <-ctx.Done():
		case <-failed:
			return
		}
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		close(failed)
		return err
	}

	return <-stopped
}
