package cli

import (
	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity to the panel service and the chat responder",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(app)
			report := map[string]any{}

			if _, err := client.Projects(cmd.Context()); err != nil {
				report["panel"] = map[string]any{"ok": false, "error": err.Error()}
			} else {
				report["panel"] = map[string]any{"ok": true, "url": app.APIBaseURL}
			}

			if err := client.Health(cmd.Context()); err != nil {
				report["chat"] = map[string]any{"ok": false, "error": err.Error()}
			} else {
				report["chat"] = map[string]any{"ok": true, "url": app.ChatURL}
			}

			return writeOut(cmd, app, map[string]any{"data": report})
		},
	}
}
