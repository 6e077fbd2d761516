package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/codepad/internal/client/editor"
	"github.com/spf13/cobra"
)

func newRunCommand(sh *shell) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a local source file on the server",
		Long: `Sends the file to the code execution service and prints what the program
wrote. The language is taken from the file extension unless --lang is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sh.requireSession(); err != nil {
				return err
			}
			code, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if lang == "" {
				lang = editor.DetectLanguage(filepath.Base(args[0]))
			}
			if _, ok := editor.LookupLanguage(lang); !ok {
				return fmt.Errorf("%w: %s", editor.ErrUnknownLanguage, lang)
			}

			panel := editor.NewPanel(sh.app.API, sh.app.Log)
			err = panel.Execute(cmd.Context(), string(code), lang)
			for _, line := range panel.Output() {
				sh.println(line)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language (python, cpp, js, c, cs, go, ruby, html, css)")
	return cmd
}
