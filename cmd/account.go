package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/models"

	"github.com/spf13/cobra"
)

var (
	accountEmail    string
	accountUsername string
	accountPassword string
)

func accounts() *core.Accounts {
	return core.NewAccounts(app.client, app.session)
}

// promptValue returns current if set, otherwise reads one line from in.
func promptValue(in *bufio.Reader, out io.Writer, label, current string) string {
	if current != "" {
		return current
	}
	fmt.Fprintf(out, "%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func userFacing(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s", backend.UserMessage(err))
}

func printSession(s *models.Session) {
	fmt.Printf("Username: %s\n", s.Username)
	fmt.Printf("Email:    %s\n", s.Email)
	if s.IsAdmin {
		fmt.Println("Role:     admin")
	}
	if s.CreatedAt != "" {
		fmt.Printf("Since:    %s\n", models.DisplayTime(s.CreatedAt))
	}
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in so scans are saved to your history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(os.Stdin)
		email := promptValue(in, os.Stdout, "Email", accountEmail)
		password := promptValue(in, os.Stdout, "Password", accountPassword)
		user, err := accounts().Login(context.Background(), email, password)
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("Logged in as %s.\n", user.Username)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(os.Stdin)
		username := promptValue(in, os.Stdout, "Username", accountUsername)
		email := promptValue(in, os.Stdout, "Email", accountEmail)
		password := promptValue(in, os.Stdout, "Password", accountPassword)
		user, err := accounts().Register(context.Background(), username, email, password)
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("Account created. Logged in as %s.\n", user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the local session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := accounts().Logout(context.Background()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the cached session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := app.session.Current()
		if s == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		printSession(s)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile as the server has it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := accounts().Profile(context.Background())
		if err != nil {
			return userFacing(err)
		}
		printSession(p)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your username or password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if accountUsername == "" && accountPassword == "" {
			return fmt.Errorf("nothing to update: pass --username and/or --password")
		}
		username := accountUsername
		if username == "" {
			if s := app.session.Current(); s != nil {
				username = s.Username
			}
		}
		p, err := accounts().UpdateProfile(context.Background(), username, accountPassword)
		if err != nil {
			return userFacing(err)
		}
		fmt.Println("Profile updated.")
		printSession(p)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&accountEmail, "email", "", "account email (prompted when omitted)")
	loginCmd.Flags().StringVar(&accountPassword, "password", "", "account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&accountUsername, "username", "", "username (prompted when omitted)")
	registerCmd.Flags().StringVar(&accountEmail, "email", "", "account email (prompted when omitted)")
	registerCmd.Flags().StringVar(&accountPassword, "password", "", "account password (prompted when omitted)")
	profileUpdateCmd.Flags().StringVar(&accountUsername, "username", "", "new username")
	profileUpdateCmd.Flags().StringVar(&accountPassword, "password", "", "new password")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, profileCmd)
}
