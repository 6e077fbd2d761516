package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/codepad/internal/buildinfo"
	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/client/config"
	"github.com/dmitrijs2005/codepad/internal/client/notify"
	"github.com/dmitrijs2005/codepad/internal/client/services"
	"github.com/dmitrijs2005/codepad/internal/client/state"
	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/dmitrijs2005/codepad/internal/logging"
	"github.com/spf13/cobra"
)

// noAppAnnotation marks commands that run without opening the local store.
const noAppAnnotation = "codepad/no-app"

// shell is what every command works with. It is filled in by the root
// command's pre-run hook.
type shell struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	app     *state.App
	notes   *notify.Writer
	palette palette
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *shell) {
	sh := &shell{palette: paletteFor(true)}

	root := &cobra.Command{
		Use:   common.AppName,
		Short: "Terminal client for the codepad online editor",
		Long: `codepad talks to the codepad API: sign in, manage workspaces and their
files, edit and run code remotely, search users and administer accounts.

Quick start:
  codepad auth signin               # sign in and remember the session
  codepad workspaces list           # list your workspaces
  codepad edit <workspace>          # open a workspace in the editor shell`,
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return sh.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return sh.close()
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newAuthCommand(sh),
		newProfileCommand(sh),
		newSearchCommand(sh),
		newWorkspacesCommand(sh),
		newEditCommand(sh),
		newRunCommand(sh),
		newAdminCommand(sh),
		newThemeCommand(sh),
		newVersionCommand(),
	)
	return root, sh
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	return execute(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root, sh := newRoot()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if cerr := sh.close(); err == nil {
		err = cerr
	}
	if err == nil {
		return 0
	}
	// Tree failures were already shown as a notification.
	if !services.IsFetchError(err) && !services.IsWriteError(err) {
		fmt.Fprintln(stderr, paletteFor(true).err.Render("Error: "+explain(err)))
	}
	return 1
}

func (sh *shell) setup(cmd *cobra.Command) error {
	sh.in = bufio.NewReader(cmd.InOrStdin())
	sh.out = cmd.OutOrStdout()
	sh.errOut = cmd.ErrOrStderr()

	if cmd.Annotations[noAppAnnotation] != "" {
		return nil
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	log := logging.New(sh.errOut, logging.Options{
		Backend: cfg.LogBackend,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	sh.notes = notify.NewWriter(sh.errOut, nil)

	ctx := cmd.Context()
	app, err := state.New(ctx, cfg, log, sh.notes)
	if err != nil {
		return err
	}
	app.Init(ctx)
	sh.app = app
	sh.applyTheme()
	return nil
}

func (sh *shell) close() error {
	if sh.app == nil {
		return nil
	}
	err := sh.app.Close()
	sh.app = nil
	return err
}

func (sh *shell) applyTheme() {
	sh.palette = paletteFor(sh.app.Theme.IsDark())
	sh.notes.SetStyles(sh.palette.notify)
}

// requireSession fails commands that need a signed-in user.
func (sh *shell) requireSession() error {
	if !sh.app.Session.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}
	return nil
}

func (sh *shell) println(a ...any) {
	fmt.Fprintln(sh.out, a...)
}

func (sh *shell) printf(format string, a ...any) {
	fmt.Fprintf(sh.out, format, a...)
}

// explain adds a hint for errors the user can fix.
func explain(err error) string {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated):
		return err.Error() + " (run: codepad auth signin)"
	case errors.Is(err, client.ErrUnauthorized):
		return err.Error() + " (sign in again: codepad auth signin)"
	case errors.Is(err, client.ErrUnavailable):
		return err.Error() + " (is the API reachable? see --api-url)"
	}
	return err.Error()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noAppAnnotation: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
