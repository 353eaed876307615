package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

// NewRootCmd creates the root command. Persistent flags start from the values
// in cfg, so they override defaults, JSON and environment.
func NewRootCmd(cfg *config.Config, factory AppFactory) *cobra.Command {
	var app *App
	// consumed by config.LoadConfig; registered so cobra accepts it
	var configFile string

	cmd := &cobra.Command{
		Use:           "gophauth",
		Short:         "gophauth account client",
		Long:          `Register, log in and inspect your session against a gophauth server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a, err := factory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			a.bind(cmd.InOrStdin(), cmd.OutOrStdout())
			app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	fs := cmd.PersistentFlags()
	fs.StringVarP(&configFile, "config", "c", "", "config file path")
	fs.StringVarP(&cfg.ServerURL, "server", "a", cfg.ServerURL, "gophauth server URL")
	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "local session database")
	fs.StringVar(&cfg.PasswordPolicy, "policy", cfg.PasswordPolicy, "password policy: basic or strong")
	fs.BoolVar(&cfg.RequireEmail, "require-email", cfg.RequireEmail, "require an email on registration")
	fs.BoolVar(&cfg.RequirePhone, "require-phone", cfg.RequirePhone, "require a phone number on registration")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")

	current := func() *App { return app }

	cmd.AddCommand(newRegisterCmd(current))
	cmd.AddCommand(newLoginCmd(current))
	cmd.AddCommand(newWhoAmICmd(current))
	cmd.AddCommand(newLogoutCmd(current))

	return cmd
}
