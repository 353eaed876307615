package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

func newRegisterCmd(app func() *App) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().Register(cmd, username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")

	return cmd
}

// Register prompts for the account fields and submits them. Optional fields
// are announced as such according to the configured policy.
func (a *App) Register(cmd *cobra.Command, username string) error {
	var err error
	in := services.RegisterInput{Username: username}

	if in.Username == "" {
		if in.Username, err = GetSimpleText(a.reader, "Enter username (3-15 letters, digits or _)", a.out); err != nil {
			return err
		}
	}
	if in.Password, err = GetPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if in.Email, err = GetSimpleText(a.reader, "Enter email"+optional(a.config.RequireEmail), a.out); err != nil {
		return err
	}
	if in.Phone, err = GetSimpleText(a.reader, "Enter phone (10 digits)"+optional(a.config.RequirePhone), a.out); err != nil {
		return err
	}

	msg, err := a.authService.Register(cmd.Context(), in)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	fmt.Fprintln(a.out, "You can now log in: gophauth login")
	return nil
}

func optional(required bool) string {
	if required {
		return ""
	}
	return " (optional)"
}
