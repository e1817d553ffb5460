package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/models"

	"github.com/spf13/cobra"
)

var (
	adminAssumeYes  bool
	adminSetAdmin   string
	adminSetActive  string
	adminRenameUser string
)

func adminOps() *core.Admin {
	return core.NewAdmin(app.client, app.session)
}

func parseAdminID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID '%s'", what, arg)
	}
	return id, nil
}

// optionalBool parses "", "true" or "false"; empty means leave unchanged.
func optionalBool(flag, v string) (*bool, error) {
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("--%s must be true or false", flag)
	}
	return &b, nil
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin dashboard: stats, users and contact messages",
	Long:  `Requires an account with admin rights. The backend enforces the same check.`,
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := adminOps().Stats(context.Background())
		if err != nil {
			return userFacing(err)
		}
		writer := new(tabwriter.Writer)
		writer.Init(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintf(writer, "Users\t%d\n", st.TotalUsers)
		fmt.Fprintf(writer, "Active users\t%d\n", st.ActiveUsers)
		fmt.Fprintf(writer, "Admins\t%d\n", st.AdminUsers)
		fmt.Fprintf(writer, "Scans\t%d\n", st.TotalScans)
		fmt.Fprintf(writer, "Scans today\t%d\n", st.ScansToday)
		fmt.Fprintf(writer, "Messages\t%d\n", st.TotalMessages)
		return writer.Flush()
	},
}

var adminUsersCmd = &cobra.Command{
	Use:     "users",
	Short:   "List users",
	Aliases: []string{"user"},
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := adminOps().Users(context.Background())
		if err != nil {
			return userFacing(err)
		}
		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}
		writer := new(tabwriter.Writer)
		writer.Init(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintln(writer, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE\tSCANS")
		fmt.Fprintln(writer, "--\t--------\t-----\t----\t------\t-----")
		for _, u := range users {
			role := "user"
			if u.IsAdmin {
				role = "admin"
			}
			fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%t\t%d\n", u.ID, u.Username, u.Email, role, u.IsActive, u.ScanCount)
		}
		return writer.Flush()
	},
}

var adminUserUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Change a user's role, active flag or username",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAdminID(args[0], "user")
		if err != nil {
			return err
		}
		upd := models.AdminUserUpdate{Username: adminRenameUser}
		if upd.IsAdmin, err = optionalBool("admin", adminSetAdmin); err != nil {
			return err
		}
		if upd.IsActive, err = optionalBool("active", adminSetActive); err != nil {
			return err
		}
		if upd.IsAdmin == nil && upd.IsActive == nil && upd.Username == "" {
			return fmt.Errorf("nothing to update: pass --admin, --active or --username")
		}
		if err := adminOps().UpdateUser(context.Background(), id, upd); err != nil {
			return userFacing(err)
		}
		fmt.Printf("User %d updated.\n", id)
		return nil
	},
}

var adminUserDeactivateCmd = &cobra.Command{
	Use:   "deactivate <user-id>",
	Short: "Deactivate a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAdminID(args[0], "user")
		if err != nil {
			return err
		}
		err = adminOps().DeactivateUser(context.Background(), id, promptConfirmer(os.Stdin, os.Stdout, adminAssumeYes))
		if errors.Is(err, core.ErrCancelled) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("User %d deactivated.\n", id)
		return nil
	},
}

var adminMessagesCmd = &cobra.Command{
	Use:     "messages",
	Short:   "List contact form messages",
	Aliases: []string{"message"},
	RunE: func(cmd *cobra.Command, args []string) error {
		msgs, err := adminOps().Messages(context.Background())
		if err != nil {
			return userFacing(err)
		}
		if len(msgs) == 0 {
			fmt.Println("No messages.")
			return nil
		}
		writer := new(tabwriter.Writer)
		writer.Init(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintln(writer, "ID\tFROM\tSUBJECT\tRECEIVED\tMESSAGE")
		fmt.Fprintln(writer, "--\t----\t-------\t--------\t-------")
		for _, m := range msgs {
			fmt.Fprintf(writer, "%d\t%s <%s>\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.Subject, models.DisplayTime(m.CreatedAt), truncate(m.Message, 60))
		}
		return writer.Flush()
	},
}

var adminMessageDeleteCmd = &cobra.Command{
	Use:     "delete <message-id>",
	Short:   "Delete a contact message",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAdminID(args[0], "message")
		if err != nil {
			return err
		}
		err = adminOps().DeleteMessage(context.Background(), id, promptConfirmer(os.Stdin, os.Stdout, adminAssumeYes))
		if errors.Is(err, core.ErrCancelled) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("Message %d deleted.\n", id)
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	adminUserUpdateCmd.Flags().StringVar(&adminSetAdmin, "admin", "", "grant (true) or revoke (false) admin rights")
	adminUserUpdateCmd.Flags().StringVar(&adminSetActive, "active", "", "activate (true) or deactivate (false)")
	adminUserUpdateCmd.Flags().StringVar(&adminRenameUser, "username", "", "new username")
	adminUserDeactivateCmd.Flags().BoolVarP(&adminAssumeYes, "yes", "y", false, "do not ask for confirmation")
	adminMessageDeleteCmd.Flags().BoolVarP(&adminAssumeYes, "yes", "y", false, "do not ask for confirmation")

	adminUsersCmd.AddCommand(adminUserUpdateCmd, adminUserDeactivateCmd)
	adminMessagesCmd.AddCommand(adminMessageDeleteCmd)
	adminCmd.AddCommand(adminStatsCmd, adminUsersCmd, adminMessagesCmd)
	rootCmd.AddCommand(adminCmd)
}
