package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/spf13/cobra"
)

func newAuthCommand(sh *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign up and manage the stored session",
	}
	cmd.AddCommand(
		newSignInCommand(sh),
		newSignUpCommand(sh),
		newSignOutCommand(sh),
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in user",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				if !sh.app.Session.IsAuthenticated() {
					sh.println(sh.palette.dim.Render("Not signed in"))
					return nil
				}
				printUser(sh, sh.app.Session.User())
				return nil
			},
		},
	)
	return cmd
}

func newSignOutCommand(sh *shell) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := sh.app.Teardown(ctx); err != nil {
				return err
			}
			if all {
				if err := sh.app.Credentials.Reset(ctx); err != nil {
					return err
				}
				sh.println(sh.palette.ok.Render("Signed out, local preferences removed"))
				return nil
			}
			sh.println(sh.palette.ok.Render("Signed out"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also remove stored preferences such as the theme")
	return cmd
}

func newSignInCommand(sh *shell) *cobra.Command {
	return &cobra.Command{
		Use:   "signin [username]",
		Short: "Sign in and remember the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				username string
				err      error
			)
			if len(args) == 1 {
				username = args[0]
			} else if username, err = GetSimpleText(sh.in, "Username", sh.out); err != nil {
				return err
			}
			if username == "" {
				return fmt.Errorf("username: %w", common.ErrEmptyName)
			}

			pw, err := GetPassword(sh.in, "Password", sh.out)
			if err != nil {
				return err
			}
			user, err := sh.app.Session.SignIn(cmd.Context(), username, pw)
			if err != nil {
				return err
			}

			name := user.DisplayName()
			if name == "" {
				name = username
			}
			sh.println(sh.palette.ok.Render("Signed in as " + name))
			return nil
		},
	}
}

func newSignUpCommand(sh *shell) *cobra.Command {
	var (
		form   models.SignUpForm
		age    int
		avatar string
	)
	cmd := &cobra.Command{
		Use:   "signup [username]",
		Short: "Create an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 1 {
				form.Username = args[0]
			} else if form.Username, err = GetSimpleText(sh.in, "Username", sh.out); err != nil {
				return err
			}
			if form.Username == "" {
				return fmt.Errorf("username: %w", common.ErrEmptyName)
			}

			pw, err := GetPassword(sh.in, "Password", sh.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)
			again, err := GetPassword(sh.in, "Repeat password", sh.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(again)
			if string(pw) != string(again) {
				return fmt.Errorf("passwords do not match")
			}
			form.Password = string(pw)

			if cmd.Flags().Changed("age") {
				form.Age = strconv.Itoa(age)
			}
			if avatar != "" {
				data, err := os.ReadFile(avatar)
				if err != nil {
					return fmt.Errorf("read avatar: %w", err)
				}
				form.Avatar = &models.Upload{Filename: filepath.Base(avatar), Data: data}
			}

			if _, err := sh.app.Session.SignUp(cmd.Context(), form); err != nil {
				return err
			}
			if sh.app.Session.IsAuthenticated() {
				sh.println(sh.palette.ok.Render("Account created, signed in as " + sh.app.Session.User().DisplayName()))
				return nil
			}
			sh.println(sh.palette.ok.Render("Account created") + sh.palette.dim.Render(" (sign in with: codepad auth signin)"))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "first name")
	f.StringVar(&form.Surname, "surname", "", "last name")
	f.StringVar(&form.Email, "email", "", "e-mail address")
	f.StringVar(&form.Phone, "phone", "", "phone number")
	f.IntVar(&age, "age", 0, "age in years")
	f.StringVar(&avatar, "avatar", "", "path to an avatar image")
	return cmd
}

// printUser prints the profile fields that are set.
func printUser(sh *shell, u *models.User) {
	if u == nil {
		return
	}
	sh.println(sh.palette.title.Render(u.DisplayName()))
	rows := []struct{ label, value string }{
		{"ID", u.IDString()},
		{"Username", u.Username},
		{"Name", u.Name},
		{"Surname", u.Surname},
		{"Email", u.Email},
		{"Phone", u.Phone},
		{"Avatar", u.Avatar},
	}
	if u.Age > 0 {
		rows = append(rows, struct{ label, value string }{"Age", strconv.Itoa(u.Age)})
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		sh.printf("  %-9s %s\n", sh.palette.dim.Render(r.label+":"), r.value)
	}
}
