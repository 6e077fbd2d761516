package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/codepad/internal/client/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newProfileCommand(sh *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and manage your profile",
	}

	show := &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show a profile (yours by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sh.requireSession(); err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			u, err := sh.app.Users.GetProfile(cmd.Context(), id)
			if err != nil {
				return err
			}
			printUser(sh, u)
			return nil
		},
	}

	var upd profileFlags
	update := &cobra.Command{
		Use:   "update",
		Short: "Change fields of your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := sh.requireSession(); err != nil {
				return err
			}
			u, changed := upd.user(cmd.Flags())
			if !changed {
				return fmt.Errorf("nothing to update (see --help)")
			}
			updated, err := sh.app.Users.UpdateProfile(cmd.Context(), u)
			if err != nil {
				return err
			}
			sh.println(sh.palette.ok.Render("Profile updated"))
			printUser(sh, updated)
			return nil
		},
	}
	upd.register(update.Flags())

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := sh.requireSession(); err != nil {
				return err
			}
			if !yes && !Confirm(sh.in, "Delete your account permanently?", sh.out) {
				sh.println(sh.palette.dim.Render("Cancelled"))
				return nil
			}
			if err := sh.app.Users.DeleteProfile(cmd.Context()); err != nil {
				return err
			}
			sh.println(sh.palette.ok.Render("Account deleted"))
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(show, update, del)
	return cmd
}

// profileFlags are the editable profile fields shared by profile update and
// the admin commands.
type profileFlags struct {
	username string
	name     string
	surname  string
	email    string
	phone    string
	age      int
	avatar   string
}

func (p *profileFlags) register(f *pflag.FlagSet) {
	f.StringVar(&p.username, "username", "", "login name")
	f.StringVar(&p.name, "name", "", "first name")
	f.StringVar(&p.surname, "surname", "", "last name")
	f.StringVar(&p.email, "email", "", "e-mail address")
	f.StringVar(&p.phone, "phone", "", "phone number")
	f.IntVar(&p.age, "age", 0, "age in years")
	f.StringVar(&p.avatar, "avatar", "", "avatar URL")
}

// user returns a User holding only the flags that were set on the command
// line.
func (p *profileFlags) user(f *pflag.FlagSet) (models.User, bool) {
	var u models.User
	changed := false
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
			changed = true
		}
	}
	set("username", func() { u.Username = p.username })
	set("name", func() { u.Name = p.name })
	set("surname", func() { u.Surname = p.surname })
	set("email", func() { u.Email = p.email })
	set("phone", func() { u.Phone = p.phone })
	set("age", func() { u.Age = p.age })
	set("avatar", func() { u.Avatar = p.avatar })
	return u, changed
}

func newSearchCommand(sh *shell) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search users by name or username",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sh.requireSession(); err != nil {
				return err
			}
			users, err := sh.app.Users.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(users) == 0 {
				sh.println(sh.palette.dim.Render("No users found"))
				return nil
			}
			printUsers(sh, users)
			return nil
		},
	}
}

func printUsers(sh *shell, users []models.User) {
	tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL\tAGE")
	for _, u := range users {
		age := ""
		if u.Age > 0 {
			age = strconv.Itoa(u.Age)
		}
		name := strings.TrimSpace(u.Name + " " + u.Surname)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.IDString(), u.Username, name, u.Email, age)
	}
	_ = tw.Flush()
	sh.println(sh.palette.dim.Render(fmt.Sprintf("%d user(s)", len(users))))
}
