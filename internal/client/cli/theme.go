package cli

import (
	"github.com/dmitrijs2005/codepad/internal/client/state"
	"github.com/spf13/cobra"
)

func newThemeCommand(sh *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or switch the colour theme",
	}
	cmd.AddCommand(
		newThemeShowCommand(sh),
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between dark and light",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				t, err := sh.app.Theme.Toggle(cmd.Context())
				sh.applyTheme()
				if err != nil {
					return err
				}
				sh.println(sh.palette.ok.Render("Theme: " + string(t)))
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <dark|light>",
			Short:     "Select a theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(state.ThemeDark), string(state.ThemeLight)},
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := state.ParseTheme(args[0])
				if err != nil {
					return err
				}
				err = sh.app.Theme.Set(cmd.Context(), t)
				sh.applyTheme()
				if err != nil {
					return err
				}
				sh.println(sh.palette.ok.Render("Theme: " + string(t)))
				return nil
			},
		},
	)
	return cmd
}

func newThemeShowCommand(sh *shell) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh.println(string(sh.app.Theme.Current()))
			if !all {
				return nil
			}
			prefs, err := sh.app.Credentials.Preferences(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range prefs {
				sh.printf("%s=%s\n", p.Key, p.Value)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also list the stored preferences")
	return cmd
}
