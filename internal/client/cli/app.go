package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

// App holds what a single command invocation needs.
type App struct {
	config      *config.Config
	authService services.AuthService
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer
}

// AppFactory builds an App once flags are parsed.
type AppFactory func(ctx context.Context, c *config.Config) (*App, error)

// NewApp opens the local state store and the API client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StatePath)
	if err != nil {
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db, c.Policy())

	return &App{config: c, authService: as, db: db}, nil
}

// Close releases the state store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) bind(in io.Reader, out io.Writer) {
	a.reader = bufio.NewReader(in)
	a.out = out
}
