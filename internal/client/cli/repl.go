package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/codepad/internal/client/editor"
	"github.com/dmitrijs2005/codepad/internal/client/services"
	"github.com/dmitrijs2005/codepad/internal/client/state"
	"github.com/dmitrijs2005/codepad/internal/client/tree"
	"github.com/spf13/cobra"
)

// commandRunner executes one REPL line split into a command name and its
// arguments. quit ends the loop.
type commandRunner interface {
	Run(ctx context.Context, name string, args []string) (quit bool, err error)
}

// runREPL reads commands from in until EOF, a quit command or the context
// ends. Errors returned by the runner are passed to report and do not stop
// the loop.
func runREPL(ctx context.Context, r commandRunner, prompt func() string, in *bufio.Reader, out io.Writer, report func(error)) {
	for ctx.Err() == nil {
		fmt.Fprint(out, prompt())
		line, err := readLine(in)
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		quit, err := r.Run(ctx, parts[0], parts[1:])
		if err != nil {
			report(err)
		}
		if quit {
			return
		}
	}
}

const editHelp = `Files:
  ls                      show the tree (collapsed folders hidden)
  tree                    show the whole tree
  open <path>             open a file in a tab, or expand/collapse a folder
  cat [path]              print a file with syntax highlighting
  touch <path>            create an empty file
  mkdir <path>            create a folder
  rm <path>               delete a file or folder
  mv <path> <new-name>    rename in place
  cp <path> <folder>      copy into a folder ("/" is the workspace root)
  upload <local> [path]   store a local file in the workspace
  download <path> [local] fetch a file to disk
  reload                  fetch the tree again
Editor:
  tabs                    list open tabs
  tab <n>                 switch to tab n
  close [n]               close tab n (the active one by default)
  write                   replace the active tab's text
  save                    save the active tab
  lang [name]             show or set the active tab's language
  new [lang]              open the scratch tab
  run                     execute the active tab
  out                     print the whole output log
Other:
  theme                   toggle dark/light
  help                    this text
  exit | quit             leave`

// editSession is the editor shell over one workbench.
type editSession struct {
	sh *shell
	wb *state.Workbench

	// shown counts output lines already printed by run.
	shown int
}

func newEditCommand(sh *shell) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <workspace>",
		Short: "Open a workspace in the interactive editor shell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sh.requireSession(); err != nil {
				return err
			}
			ctx := cmd.Context()
			wb, err := sh.app.OpenWorkbench(ctx, args[0])
			if err != nil {
				return err
			}
			s := &editSession{sh: sh, wb: wb}
			sh.println(sh.palette.title.Render("Workspace " + args[0]))
			printTree(sh, wb.Files.Lines(false))
			sh.println(sh.palette.dim.Render("Type help for commands."))
			runREPL(ctx, s, s.prompt, sh.in, sh.out, s.report)
			return nil
		},
	}
}

func (s *editSession) prompt() string {
	p := s.wb.Files.Workspace()
	if t, ok := s.wb.Editor.Active(); ok {
		p += " [" + t.Filename + "]"
	}
	return s.sh.palette.accent.Render(p) + " > "
}

// report prints errors that were not already shown as notifications.
func (s *editSession) report(err error) {
	if services.IsFetchError(err) || services.IsWriteError(err) {
		return
	}
	fmt.Fprintln(s.sh.errOut, s.sh.palette.err.Render(explain(err)))
}

func (s *editSession) Run(ctx context.Context, name string, args []string) (bool, error) {
	switch name {
	case "help", "?":
		s.sh.println(editHelp)
	case "ls":
		printTree(s.sh, s.wb.Files.Lines(false))
	case "tree":
		printTree(s.sh, s.wb.Files.Lines(true))
	case "open":
		return false, s.open(ctx, args)
	case "cat":
		return false, s.cat(ctx, args)
	case "touch", "mkdir":
		return false, s.create(ctx, name == "mkdir", args)
	case "rm":
		if err := need(args, 1, "rm <path>"); err != nil {
			return false, err
		}
		if err := s.wb.Delete(ctx, cleanPath(args[0])); err != nil {
			return false, err
		}
		s.sh.println(s.sh.palette.ok.Render("Deleted " + cleanPath(args[0])))
	case "mv":
		if err := need(args, 2, "mv <path> <new-name>"); err != nil {
			return false, err
		}
		return false, s.wb.Rename(ctx, cleanPath(args[0]), args[1])
	case "cp":
		if err := need(args, 2, "cp <path> <folder>"); err != nil {
			return false, err
		}
		p, err := s.wb.Copy(ctx, cleanPath(args[0]), cleanPath(args[1]))
		if err != nil {
			return false, err
		}
		s.sh.println(s.sh.palette.ok.Render("Copied to " + p))
	case "write":
		return false, s.write()
	case "save":
		p, err := s.wb.Save(ctx)
		if err != nil {
			return false, err
		}
		s.sh.println(s.sh.palette.ok.Render("Saved " + p))
	case "tabs":
		s.tabs()
	case "tab":
		if err := need(args, 1, "tab <n>"); err != nil {
			return false, err
		}
		i, err := tabIndex(args[0])
		if err != nil {
			return false, err
		}
		return false, s.wb.Editor.Activate(i)
	case "close":
		return false, s.close(args)
	case "lang":
		return false, s.lang(args)
	case "new":
		lang := editor.DefaultLanguage
		if len(args) > 0 {
			lang = args[0]
		}
		_, err := s.wb.Editor.OpenScratch(lang)
		return false, err
	case "run":
		// A failed request is already in the output log.
		if err := s.wb.Editor.Run(ctx); errors.Is(err, editor.ErrNoActiveTab) {
			return false, err
		}
		s.printOutput(false)
	case "out":
		s.printOutput(true)
	case "reload":
		if err := s.wb.Reload(ctx); err != nil {
			return false, err
		}
		printTree(s.sh, s.wb.Files.Lines(false))
	case "theme":
		t, err := s.sh.app.Theme.Toggle(ctx)
		s.sh.applyTheme()
		if err != nil {
			return false, err
		}
		s.sh.println("Theme: " + string(t))
	case "upload":
		return false, s.upload(ctx, args)
	case "download":
		return false, s.download(ctx, args)
	case "exit", "quit":
		s.sh.println("Bye!")
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", name)
	}
	return false, nil
}

func (s *editSession) open(ctx context.Context, args []string) error {
	if err := need(args, 1, "open <path>"); err != nil {
		return err
	}
	res, err := s.wb.Open(ctx, cleanPath(args[0]))
	if err != nil {
		return err
	}
	if res.Folder {
		mode := "collapsed"
		if res.Expanded {
			mode = "expanded"
		}
		s.sh.println(s.sh.palette.dim.Render(res.Path + " " + mode))
		printTree(s.sh, s.wb.Files.Lines(false))
		return nil
	}
	lines, words := editor.Stats(res.Contents)
	s.sh.println(s.sh.palette.dim.Render(fmt.Sprintf("%s: %d lines, %d words", res.Path, lines, words)))
	return nil
}

func (s *editSession) cat(ctx context.Context, args []string) error {
	if len(args) > 0 {
		res, err := s.wb.Open(ctx, cleanPath(args[0]))
		if err != nil {
			return err
		}
		if res.Folder {
			return fmt.Errorf("%s: %w", res.Path, tree.ErrNotFile)
		}
	}
	t, ok := s.wb.Editor.Active()
	if !ok {
		return editor.ErrNoActiveTab
	}
	if err := editor.Highlight(s.sh.out, t.Content, t.Language, t.Filename, s.sh.palette.dark); err != nil {
		return err
	}
	if t.Content != "" && !strings.HasSuffix(t.Content, "\n") {
		s.sh.println()
	}
	return nil
}

func (s *editSession) create(ctx context.Context, folder bool, args []string) error {
	if err := need(args, 1, "touch|mkdir <path>"); err != nil {
		return err
	}
	p := cleanPath(args[0])
	dir, name := splitTarget(p)
	create := s.wb.Files.CreateFile
	if folder {
		create = s.wb.Files.CreateFolder
	}
	if _, err := create(ctx, dir, name); err != nil {
		return err
	}
	s.sh.println(s.sh.palette.ok.Render("Created " + p))
	return nil
}

func (s *editSession) write() error {
	t, ok := s.wb.Editor.Active()
	if !ok {
		return editor.ErrNoActiveTab
	}
	text, err := GetMultiline(s.sh.in, "New text for "+t.Filename, ".", s.sh.out)
	if err != nil {
		return err
	}
	return s.wb.Editor.SetContent(text)
}

func (s *editSession) tabs() {
	tabs := s.wb.Editor.Tabs()
	if len(tabs) == 0 {
		s.sh.println(s.sh.palette.dim.Render("No open tabs"))
		return
	}
	active := s.wb.Editor.ActiveIndex()
	for i, t := range tabs {
		marker := " "
		if i == active {
			marker = "*"
		}
		lines, words := editor.Stats(t.Content)
		s.sh.printf("%s %d  %-20s %-7s %s\n", marker, i+1, t.Filename, t.Language,
			s.sh.palette.dim.Render(fmt.Sprintf("%d lines, %d words", lines, words)))
	}
}

func (s *editSession) close(args []string) error {
	i := s.wb.Editor.ActiveIndex()
	if len(args) > 0 {
		var err error
		if i, err = tabIndex(args[0]); err != nil {
			return err
		}
	}
	if i < 0 {
		return editor.ErrNoActiveTab
	}
	return s.wb.Editor.Close(i)
}

func (s *editSession) lang(args []string) error {
	if len(args) == 0 {
		t, ok := s.wb.Editor.Active()
		if !ok {
			return editor.ErrNoActiveTab
		}
		s.sh.println(t.Language)
		return nil
	}
	return s.wb.Editor.SetLanguage(args[0])
}

// printOutput prints the output log, or only the lines added since the last
// call when all is false.
func (s *editSession) printOutput(all bool) {
	out := s.wb.Editor.Output()
	from := s.shown
	if all || from > len(out) {
		from = 0
	}
	for _, line := range out[from:] {
		s.sh.println(line)
	}
	s.shown = len(out)
}

func (s *editSession) upload(ctx context.Context, args []string) error {
	if err := need(args, 1, "upload <local> [path]"); err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	target := filepath.Base(args[0])
	if len(args) > 1 {
		target = cleanPath(args[1])
	}

	if err := s.wb.Store(ctx, target, string(data)); err != nil {
		return err
	}
	s.sh.println(s.sh.palette.ok.Render(fmt.Sprintf("Uploaded %s (%d bytes)", target, len(data))))
	return nil
}

func (s *editSession) download(ctx context.Context, args []string) error {
	if err := need(args, 1, "download <path> [local]"); err != nil {
		return err
	}
	p := cleanPath(args[0])
	id, ok := s.wb.Files.Lookup(p)
	if !ok {
		return fmt.Errorf("%w: %s", state.ErrNoSuchPath, p)
	}
	res, err := s.wb.Files.Open(ctx, id)
	if err != nil {
		return err
	}
	if res.Folder {
		return fmt.Errorf("%s: %w", p, tree.ErrNotFile)
	}
	local := path.Base(p)
	if len(args) > 1 {
		local = args[1]
	}
	if err := os.WriteFile(local, []byte(res.Contents), 0o644); err != nil {
		return err
	}
	s.sh.println(s.sh.palette.ok.Render(fmt.Sprintf("Downloaded %s to %s", p, local)))
	return nil
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

// tabIndex converts a 1-based tab number to an index.
func tabIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad tab number %q", s)
	}
	return n - 1, nil
}

// cleanPath turns user input into a workspace-relative path; "/" and "."
// mean the workspace root.
func cleanPath(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	return p
}

func splitTarget(p string) (dir, name string) {
	dir, name = path.Split(p)
	return strings.TrimSuffix(dir, "/"), name
}
