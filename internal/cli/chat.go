package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"panel-cli/internal/chat"
)

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat commands",
	}
	cmd.AddCommand(newChatHistoryCmd(app))
	cmd.AddCommand(newChatSendCmd(app))
	return cmd
}

func newChatHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <project-id>",
		Short: "Print a project's conversation, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(app, "proyecto", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			loader := chat.NewLoader(newClient(app), appLogger(app))
			bubbles, err := loader.LoadProject(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": historyRows(bubbles)})
		},
	}
}

func newChatSendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "send <project-id> <text>",
		Short: "Send a message and print the bot's reply",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(app, "proyecto", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client := newClient(app)
			dispatcher := chat.NewDispatcher(client, client, appLogger(app))

			text, err := dispatcher.Validate(strings.Join(args[1:], " "))
			if err != nil {
				if errors.Is(err, chat.ErrEmptyMessage) {
					return writeErr(cmd, errors.New("el mensaje no puede estar vacío"))
				}
				return writeErr(cmd, err)
			}

			reply, ok, err := dispatcher.Exchange(cmd.Context(), id, text)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"enviado": text}})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"enviado": text, "respuesta": reply}})
		},
	}
}

type historyRow struct {
	Role string `json:"rol"`
	Text string `json:"texto"`
}

func historyRows(bubbles []chat.Bubble) []historyRow {
	rows := make([]historyRow, 0, len(bubbles))
	for _, b := range bubbles {
		role := "usuario"
		if b.FromBot {
			role = "bot"
		}
		rows = append(rows, historyRow{Role: role, Text: b.Text})
	}
	return rows
}
