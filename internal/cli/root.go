// Package cli wires the scriptable command surface. Every interactive flow
// in the TUI has a command twin here, so scripts and agents can drive the
// panel without a terminal UI.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"panel-cli/internal/api"
	"panel-cli/internal/config"
	"panel-cli/internal/format"
	"panel-cli/internal/tui"
)

type App struct {
	cfg config.Config

	APIBaseURL string
	ChatURL    string
	ChatAPIKey string
	LogFile    string
	Format     string
	PrettyJSON bool

	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cfg, err := config.Load()
	if err != nil {
		// A broken environment shouldn't block --help; defaults still apply.
		cfg = config.Config{APIBaseURL: "http://localhost:5000", Format: "json"}
		fmt.Fprintf(os.Stderr, "configuración inválida: %v\n", err)
	}
	app.cfg = cfg

	cmd := &cobra.Command{
		Use:          "panel",
		Short:        "Panel de administración (CLI + TUI) para el chat de proyectos",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive panel
  panel

  # Scriptable commands
  panel projects list
  panel chat send 3 "Hola"
  panel users edit 5 --correo nueva@example.com
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIBaseURL, "api", cfg.APIBaseURL, "Base URL of the panel service")
	cmd.PersistentFlags().StringVar(&app.ChatURL, "chat-url", cfg.ChatBaseURL, "Base URL of the chat responder (health checks)")
	cmd.PersistentFlags().StringVar(&app.ChatAPIKey, "chat-api-key", cfg.ChatAPIKey, "X-API-Key for the chat responder")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log", cfg.LogFile, "Diagnostics log file (required for TUI logging)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", cfg.Format, "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", cfg.PrettyJSON, "Pretty-print JSON output")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newChatCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

func runTUI(app *App) error {
	logger, err := newLogger(app, true)
	if err != nil {
		return err
	}
	defer logger.Sync()
	return tui.Run(newClientWith(app, logger), logger)
}

// newClient builds the API client for a command invocation.
func newClient(app *App) *api.Client {
	return newClientWith(app, appLogger(app))
}

func newClientWith(app *App, logger *zap.Logger) *api.Client {
	return api.NewClient(api.Options{
		BaseURL: app.APIBaseURL,
		ChatURL: app.ChatURL,
		APIKey:  app.ChatAPIKey,
		Timeout: app.cfg.HTTPTimeout,
	}, logger)
}

func appLogger(app *App) *zap.Logger {
	if app.logger == nil {
		l, err := newLogger(app, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "no se pudo abrir el log: %v\n", err)
			l = zap.NewNop()
		}
		app.logger = l
	}
	return app.logger
}

// newLogger writes diagnostics to the configured file, or to stderr for
// plain commands. The TUI owns the terminal, so without a file it logs
// nowhere rather than corrupting the alternate screen.
func newLogger(app *App, forTUI bool) (*zap.Logger, error) {
	if app.LogFile != "" {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{app.LogFile}
		cfg.ErrorOutputPaths = []string{app.LogFile}
		return cfg.Build()
	}
	if forTUI {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
