package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/Ebzefr/WebSecura/config"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/models"
	"github.com/Ebzefr/WebSecura/render"

	"github.com/spf13/cobra"
)

var (
	historySearch    string
	historyPage      int
	historyAssumeYes bool
)

func newHistoryBrowser() *core.HistoryBrowser {
	return core.NewHistoryBrowser(app.client, app.session, app.state, newTerminalPresenter(), config.AppConfig.UI.PageSize)
}

func parseScanID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid scan ID '%s'", arg)
	}
	return id, nil
}

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Browse your saved scans",
	Long:    `Lists, opens and deletes the scans saved to your account. Requires login.`,
	Aliases: []string{"h"},
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List saved scans, newest first",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		h := newHistoryBrowser()
		if err := h.Load(context.Background()); err != nil {
			if errors.Is(err, core.ErrNotLoggedIn) {
				return err
			}
			fmt.Fprintf(os.Stderr, "Could not load history: %v\n", err)
		}
		h.Filter(historySearch)
		page := h.GoTo(historyPage)
		writeHistoryPage(page)
		return nil
	},
}

func writeHistoryPage(page core.HistoryPage) {
	if page.Fallback() {
		if page.Term != "" {
			fmt.Printf("No scans match %q.\n", page.Term)
		} else {
			fmt.Println("No scans found. Run your first scan with 'websecura scan <url>'.")
		}
		return
	}
	writer := new(tabwriter.Writer)
	writer.Init(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(writer, "ID\tURL\tSCANNED\tCHECKS\tPASSED\tFAILED\tSTATUS")
	fmt.Fprintln(writer, "--\t---\t-------\t------\t------\t------\t------")
	for _, e := range page.Entries {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.ID, e.URL, models.DisplayTime(e.ScanTime), e.TotalChecks, e.PassedChecks, e.FailedChecks, render.TierLabel(e.Tier()))
	}
	writer.Flush()
	if page.TotalPages > 1 {
		fmt.Printf("\nPage %d of %d (%d scans)", page.Pagination.CurrentPage, page.TotalPages, page.Pagination.TotalItems)
		fmt.Print("  ")
		for _, b := range page.Buttons {
			switch {
			case b.Ellipsis:
				fmt.Print("… ")
			case b.Current:
				fmt.Printf("[%d] ", b.Page)
			default:
				fmt.Printf("%d ", b.Page)
			}
		}
		fmt.Println()
	}
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one saved scan and make it the current report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseScanID(args[0])
		if err != nil {
			return err
		}
		if _, err := newHistoryBrowser().ViewDetail(context.Background(), id); err != nil {
			cmd.SilenceErrors = !errors.Is(err, core.ErrNotLoggedIn)
			return err
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a saved scan",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseScanID(args[0])
		if err != nil {
			return err
		}
		h := newHistoryBrowser()
		err = h.Delete(context.Background(), id, promptConfirmer(os.Stdin, os.Stdout, historyAssumeYes))
		switch {
		case errors.Is(err, core.ErrCancelled):
			fmt.Println("Cancelled.")
			return nil
		case errors.Is(err, core.ErrNotLoggedIn):
			return err
		case err != nil:
			cmd.SilenceErrors = true
			return err
		}
		fmt.Printf("Scan %d deleted.\n", id)
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringVarP(&historySearch, "search", "s", "", "only show scans whose URL contains this text")
	historyListCmd.Flags().IntVarP(&historyPage, "page", "p", 1, "page to show")
	historyDeleteCmd.Flags().BoolVarP(&historyAssumeYes, "yes", "y", false, "delete without asking")
	historyCmd.AddCommand(historyListCmd, historyViewCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
