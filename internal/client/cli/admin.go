package cli

import (
	"fmt"

	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/spf13/cobra"
)

func newAdminCommand(sh *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative console",
	}
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := sh.app.Admin.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				sh.println(sh.palette.dim.Render("No users"))
				return nil
			}
			printUsers(sh, list)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := sh.app.Admin.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printUser(sh, u)
			return nil
		},
	}

	var (
		createFlags profileFlags
		password    string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, _ := createFlags.user(cmd.Flags())
			if u.Username == "" {
				return fmt.Errorf("--username: %w", common.ErrEmptyName)
			}
			if password == "" {
				pw, err := GetPassword(sh.in, "Password for "+u.Username, sh.out)
				if err != nil {
					return err
				}
				password = string(pw)
				common.WipeByteArray(pw)
			}
			u.HashPassword = password
			created, err := sh.app.Admin.CreateUser(cmd.Context(), u)
			if err != nil {
				return err
			}
			sh.println(sh.palette.ok.Render("User created"))
			printUser(sh, created)
			return nil
		},
	}
	createFlags.register(create.Flags())
	create.Flags().StringVar(&password, "password", "", "initial password (prompted when empty)")

	var (
		updateFlags profileFlags
		newPassword string
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, changed := updateFlags.user(cmd.Flags())
			if cmd.Flags().Changed("password") {
				u.HashPassword = newPassword
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to update (see --help)")
			}
			updated, err := sh.app.Admin.UpdateUser(cmd.Context(), args[0], u)
			if err != nil {
				return err
			}
			sh.println(sh.palette.ok.Render("User updated"))
			printUser(sh, updated)
			return nil
		},
	}
	updateFlags.register(update.Flags())
	update.Flags().StringVar(&newPassword, "password", "", "new password")

	var yes bool
	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !Confirm(sh.in, "Delete user "+args[0]+"?", sh.out) {
				sh.println(sh.palette.dim.Render("Cancelled"))
				return nil
			}
			if err := sh.app.Admin.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			sh.println(sh.palette.ok.Render("User " + args[0] + " deleted"))
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	users.AddCommand(list, get, create, update, del)
	cmd.AddCommand(users)
	return cmd
}
