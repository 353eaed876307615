package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

var (
	errNotLoggedIn    = errors.New("not logged in, run: gophauth login")
	errSessionExpired = errors.New("session expired or invalid, run: gophauth login")
)

func newWhoAmICmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().WhoAmI(cmd)
		},
	}
}

func newLogoutCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().Logout(cmd)
		},
	}
}

func (a *App) WhoAmI(cmd *cobra.Command) error {
	s, err := a.authService.WhoAmI(cmd.Context())
	switch {
	case errors.Is(err, client.ErrLocalDataNotAvailable):
		return errNotLoggedIn
	case errors.Is(err, client.ErrUnauthorized):
		return errSessionExpired
	case err != nil:
		return err
	}

	printSession(a.out, s)
	switch {
	case s.Verified:
		fmt.Fprintln(a.out, "Status:   verified")
	case s.Token == "":
		fmt.Fprintln(a.out, "Status:   no token")
	default:
		fmt.Fprintln(a.out, "Status:   unverified (server unavailable)")
	}
	return nil
}

func (a *App) Logout(cmd *cobra.Command) error {
	if err := a.authService.Logout(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func printSession(w io.Writer, s *services.Session) {
	fmt.Fprintf(w, "Username: %s\n", s.Username)
	if s.Email != "" {
		fmt.Fprintf(w, "Email:    %s\n", s.Email)
	}
	if s.Phone != "" {
		fmt.Fprintf(w, "Phone:    %s\n", s.Phone)
	}
}
