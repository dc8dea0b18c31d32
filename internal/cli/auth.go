package cli

import (
	"fmt"
	"log/slog"

	"github.com/sinergy/chronosync/internal/session"
	"github.com/sinergy/chronosync/internal/types"
	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var creds Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Long: `Log in with a username and password. Missing credentials are asked for interactively.
On success the token is stored in the session file and sent with every following command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Username == "" || creds.Password == "" {
				prompted, err := app.Prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), creds)
				if err != nil {
					return err
				}
				creds = prompted
			}

			res, err := app.Services.Auth.Login(cmd.Context(), types.LoginRequestDTO{
				Username: creds.Username,
				Password: creds.Password,
			})
			if err != nil {
				return err
			}

			if err := app.Session.SetSession(res.JWTString); err != nil {
				return err
			}

			app.Logger.Info("logged in", slog.String("username", creds.Username))

			if app.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{"username": creds.Username})
			}
			printSuccess(cmd.OutOrStdout(), "Logged in as "+creds.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverErr := app.Services.Auth.Logout(cmd.Context())

			// the local session is cleared whatever the server answered
			if err := app.Session.ClearSession(); err != nil {
				return err
			}

			if serverErr != nil {
				printMuted(cmd.OutOrStdout(), "Local session cleared")
				return serverErr
			}

			app.Logger.Info("logged out")
			printSuccess(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newRegisterCommand(app *App) *cobra.Command {
	var (
		dto  types.UserRequestDTO
		role string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long: `Register a new account. The server assigns the username,
normally the first letter of the first name followed by the last name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseRole(role)
			if err != nil {
				return err
			}
			dto.Role = parsed

			res, err := app.Services.Auth.Register(cmd.Context(), dto)
			if err != nil {
				return err
			}

			username := res.Username
			if username == "" {
				username = dto.SuggestedUsername()
			}

			if app.jsonOutput {
				return printJSON(cmd.OutOrStdout(), res)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Registered user %s (id %d)", username, res.ID))
			return nil
		},
	}

	addUserFlags(cmd, &dto, &role)
	return cmd
}

var statusDescriptions = map[session.TokenStatus]string{
	session.TokenMissing: "not logged in",
	session.TokenInvalid: "the stored token is not a valid JWT, log in again",
	session.TokenExpired: "session expired, log in again",
	session.TokenValid:   "logged in",
}

func newSessionCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect the stored session",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether a valid session token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Session.Status()
			if err != nil {
				return err
			}

			var subject string
			if status == session.TokenValid || status == session.TokenExpired {
				subject, err = app.Session.Subject()
				if err != nil {
					return err
				}
			}

			if app.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"status":  status.String(),
					"subject": subject,
				})
			}

			line := statusDescriptions[status]
			if subject != "" {
				line += " (" + subject + ")"
			}
			if status == session.TokenValid {
				printSuccess(cmd.OutOrStdout(), line)
			} else {
				printMuted(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.AddCommand(status)
	return cmd
}
