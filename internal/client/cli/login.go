package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app func() *App) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().Login(cmd, username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")

	return cmd
}

func (a *App) Login(cmd *cobra.Command, username string) error {
	var err error
	if username == "" {
		if username, err = GetSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
	}
	password, err := GetPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	if s.Token == "" {
		fmt.Fprintf(a.out, "Logged in as %s (server issued no token)\n", s.Username)
		return nil
	}
	printSession(a.out, s)
	return nil
}
