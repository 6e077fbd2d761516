package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/client/tree"
	"github.com/spf13/cobra"
)

func newWorkspacesCommand(sh *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "List, create and delete workspaces",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := sh.setup(cmd); err != nil {
				return err
			}
			return sh.requireSession()
		},
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your workspaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := sh.app.Workspaces.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				sh.println(sh.palette.dim.Render("No workspaces yet (create one: codepad workspaces create <name>)"))
				return nil
			}
			tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tACTIVE\tPUBLIC\tDESCRIPTION")
			for _, w := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.Name, yesNo(w.IsActive), yesNo(w.IsPublic), w.Description)
			}
			return tw.Flush()
		},
	}

	var (
		in       models.WorkspaceCreate
		private  bool
		inactive bool
	)
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			in.IsPublic = !private
			in.IsActive = !inactive
			if err := sh.app.Workspaces.Create(cmd.Context(), in); err != nil {
				return err
			}
			sh.println(sh.palette.ok.Render("Workspace " + strings.TrimSpace(in.Name) + " created"))
			return nil
		},
	}
	create.Flags().StringVarP(&in.Description, "description", "d", "", "short description")
	create.Flags().BoolVar(&private, "private", false, "hide the workspace from other users")
	create.Flags().BoolVar(&inactive, "inactive", false, "create the workspace as inactive")

	var yes bool
	del := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a workspace with all its files",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !Confirm(sh.in, fmt.Sprintf("Delete workspace %s and all its files?", args[0]), sh.out) {
				sh.println(sh.palette.dim.Render("Cancelled"))
				return nil
			}
			if err := sh.app.Workspaces.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			sh.println(sh.palette.ok.Render("Workspace " + args[0] + " deleted"))
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a workspace and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sh.app.Workspaces.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			t, err := tree.FromEntries(w.Files)
			if err != nil {
				return err
			}
			sh.println(sh.palette.title.Render(w.Name))
			if w.Description != "" {
				sh.println(w.Description)
			}
			sh.println(sh.palette.dim.Render(fmt.Sprintf("active: %s  public: %s  items: %d",
				yesNo(w.IsActive), yesNo(w.IsPublic), t.Len())))
			printTree(sh, t.Lines(true))
			return nil
		},
	}

	cmd.AddCommand(list, create, del, show)
	return cmd
}

// printTree prints tree.Tree.Lines output with folders highlighted.
func printTree(sh *shell, lines []string) {
	if len(lines) == 0 {
		sh.println(sh.palette.dim.Render("(empty)"))
		return
	}
	for _, l := range lines {
		if strings.HasSuffix(l, "/") {
			name := strings.TrimLeft(l, " ")
			l = l[:len(l)-len(name)] + sh.palette.folder.Render(name)
		}
		sh.println(l)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
