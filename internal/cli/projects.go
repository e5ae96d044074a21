package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"panel-cli/internal/model"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsEditCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := newClient(app).Projects(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": projects})
		},
	}
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(app, "proyecto", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := newClient(app).Project(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
				return writeErr(cmd, fmt.Errorf("faltan datos: --nombre y --descripcion son obligatorios"))
			}
			if err := newClient(app).CreateProject(cmd.Context(), name, description); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "Proyecto creado exitosamente"})
		},
	}

	cmd.Flags().StringVar(&name, "nombre", "", "Project name")
	cmd.Flags().StringVar(&description, "descripcion", "", "Project description")
	_ = cmd.MarkFlagRequired("nombre")
	_ = cmd.MarkFlagRequired("descripcion")
	return cmd
}

func newProjectsEditCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a project (unset flags keep the current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(app, "proyecto", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client := newClient(app)

			// Fetch-then-submit, like the edit modal: current values fill
			// whatever the caller didn't pass.
			current, err := client.Project(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("nombre") {
				name = current.Name
			}
			if !cmd.Flags().Changed("descripcion") {
				description = current.Description
			}

			if err := client.UpdateProject(cmd.Context(), id, name, description); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "Proyecto modificado correctamente"})
		},
	}

	cmd.Flags().StringVar(&name, "nombre", "", "New name")
	cmd.Flags().StringVar(&description, "descripcion", "", "New description")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(app, "proyecto", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes && !confirm(cmd, "¿Estás seguro que deseas eliminar este proyecto?") {
				return writeErr(cmd, errAborted())
			}
			if err := newClient(app).DeleteProject(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "Proyecto eliminado correctamente"})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

// parseIDArg coerces an argv identifier; failures are logged and abort the
// command before any request is made.
func parseIDArg(app *App, kind, raw string) (int, error) {
	id, err := model.ParseID(raw)
	if err != nil {
		appLogger(app).Error("identificador inválido", zap.String("tipo", kind), zap.String("valor", raw))
		return 0, errInvalidID(kind, raw)
	}
	return id, nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}
