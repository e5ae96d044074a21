package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"panel-cli/internal/api"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User commands",
	}
	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersShowCmd(app))
	cmd.AddCommand(newUsersCreateCmd(app))
	cmd.AddCommand(newUsersEditCmd(app))
	cmd.AddCommand(newUsersDeleteCmd(app))
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := newClient(app).Users(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": users})
		},
	}
}

func newUsersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(app, "usuario", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			u, err := newClient(app).User(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var u api.NewUser

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			for flag, v := range map[string]string{
				"user": u.Username, "nombre": u.FirstName, "apellidos": u.LastName,
				"correo": u.Email, "contrasena": u.Password,
			} {
				if strings.TrimSpace(v) == "" {
					return writeErr(cmd, fmt.Errorf("faltan datos: --%s es obligatorio", flag))
				}
			}
			if err := newClient(app).CreateUser(cmd.Context(), u); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "Usuario creado exitosamente"})
		},
	}

	cmd.Flags().StringVar(&u.Username, "user", "", "Username")
	cmd.Flags().StringVar(&u.FirstName, "nombre", "", "First name")
	cmd.Flags().StringVar(&u.LastName, "apellidos", "", "Last name(s)")
	cmd.Flags().StringVar(&u.Email, "correo", "", "Email")
	cmd.Flags().StringVar(&u.Password, "contrasena", "", "Password")
	return cmd
}

func newUsersEditCmd(app *App) *cobra.Command {
	var edit api.UserEdit

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a user (unset flags keep the current values; blank password keeps the current one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(app, "usuario", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client := newClient(app)

			current, err := client.User(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("nombre") {
				edit.FirstName = current.FirstName
			}
			if !cmd.Flags().Changed("apellidos") {
				edit.LastName = current.LastName
			}
			if !cmd.Flags().Changed("correo") {
				edit.Email = current.Email
			}
			if !cmd.Flags().Changed("user") {
				edit.Username = current.Username
			}
			// Password stays omitted from the payload unless explicitly set
			// to a non-blank value.

			if err := client.UpdateUser(cmd.Context(), id, edit); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "Usuario modificado correctamente"})
		},
	}

	cmd.Flags().StringVar(&edit.FirstName, "nombre", "", "First name")
	cmd.Flags().StringVar(&edit.LastName, "apellidos", "", "Last name(s)")
	cmd.Flags().StringVar(&edit.Email, "correo", "", "Email")
	cmd.Flags().StringVar(&edit.Username, "user", "", "Username")
	cmd.Flags().StringVar(&edit.Password, "contrasena", "", "New password (blank keeps the current one)")
	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(app, "usuario", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes && !confirm(cmd, "¿Estás seguro que deseas eliminar este usuario?") {
				return writeErr(cmd, errAborted())
			}
			if err := newClient(app).DeleteUser(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "Usuario eliminado correctamente"})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
