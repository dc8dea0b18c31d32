// Package cli implements the chronosync command line interface.
//
// The cli is the ui layer of the client: it owns the session lifecycle (storing the token after
// login and clearing it on logout), calls the resource services and renders their results.
package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/sinergy/chronosync/internal/apperrors"
	"github.com/sinergy/chronosync/internal/client"
	"github.com/sinergy/chronosync/internal/config"
	"github.com/sinergy/chronosync/internal/logger"
	"github.com/sinergy/chronosync/internal/schemas"
	"github.com/sinergy/chronosync/internal/services"
	"github.com/sinergy/chronosync/internal/session"
	"github.com/spf13/cobra"
)

// App holds the dependencies shared by the commands.
// Fields left nil are built from the environment before the first command runs.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Session  *session.Manager
	Services *services.Services

	// Prompt asks for missing login credentials, defaults to the interactive bubbletea form
	Prompt func(in io.Reader, out io.Writer, creds Credentials) (Credentials, error)

	envFile    string
	jsonOutput bool
}

func NewApp() *App {
	return &App{Prompt: PromptCredentials}
}

// setup loads the configuration and wires the logger, session manager, api client and services
func (a *App) setup(cmd *cobra.Command) error {
	if a.Services != nil {
		if a.Logger == nil {
			a.Logger = logger.Discard()
		}
		return nil
	}

	cfg, err := config.NewConfig(a.envFile)
	if err != nil {
		return err
	}
	a.Config = cfg

	a.Logger = logger.InitLogger(cmd.ErrOrStderr(), logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	store := session.NewFileStore(cfg.SessionFile)
	a.Session = session.NewManager(store)

	opts := []client.Option{
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(a.Logger),
		client.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
	if cfg.ValidateResponses {
		registry, err := schemas.Default()
		if err != nil {
			return err
		}
		opts = append(opts, client.WithValidator(registry))
	}

	a.Services = services.New(client.NewClient(cfg, a.Session, opts...))

	a.Logger.Debug("cli configured",
		slog.String("api_base_url", cfg.APIBaseURL),
		slog.String("environment", cfg.Environment),
		slog.String("session_file", store.Path()),
		slog.Bool("validate_responses", cfg.ValidateResponses),
	)
	return nil
}

type userError interface {
	UserError() string
}

// ReportError logs the detailed cause and prints the user facing message to w
func (a *App) ReportError(w io.Writer, err error) {
	log := a.Logger
	if log == nil {
		log = logger.Discard()
	}
	log.Error("command failed",
		slog.String("code", string(apperrors.CodeOf(err))),
		slog.String("error", err.Error()),
	)

	msg := err.Error()
	var ue userError
	if errors.As(err, &ue) && ue.UserError() != "" {
		msg = ue.UserError()
	}
	printError(w, msg)
}
