package cli

import (
	"github.com/sinergy/chronosync/internal/config"
	"github.com/sinergy/chronosync/internal/version"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the chronosync command tree around app
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chronosync",
		Short: "chronosync scheduling client",
		Long:  `Command line client for the chronosync appointment scheduling API`,
		// errors are rendered by ReportError
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	cmd.Version = version.Get().String()

	cmd.PersistentFlags().StringVar(&app.envFile, "env-file", config.DefaultEnvFile, "env file loaded before reading the environment")
	cmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "print results as JSON")

	cmd.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newRegisterCommand(app),
		newSessionCommand(app),
		newAppointmentTypeCommand(app),
		newUserCommand(app),
		newClientCommand(app),
	)

	return cmd
}
