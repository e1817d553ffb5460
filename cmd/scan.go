package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/config"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/export"
	"github.com/Ebzefr/WebSecura/logger"

	"github.com/spf13/cobra"
)

var (
	scanExportFormats []string
	scanQuiet         bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan a website and show the results",
	Long: `Submits a website to the scanning service and prints the summary and
one card per check. Bare hosts get https:// prepended. When logged in the
scan is saved to your history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Executing 'scan' command for input %q", args[0])

		formats := make([]export.Format, 0, len(scanExportFormats))
		for _, f := range scanExportFormats {
			format, err := export.ParseFormat(f)
			if err != nil {
				return err
			}
			formats = append(formats, format)
		}

		notifier := core.NewNotifier(terminalSink{out: os.Stdout}, config.AppConfig.NoticeDuration())
		defer notifier.Close()

		presenter := newTerminalPresenter()
		var ctrl core.Control = newSpinner(os.Stderr, "Scanning...")
		if scanQuiet {
			ctrl = quietControl{}
		}
		scanner := core.NewScanner(app.client, app.state, app.session, presenter, notifier)
		report, err := scanner.Scan(context.Background(), args[0], ctrl)
		if err != nil {
			// The presenter already printed the reason.
			cmd.SilenceErrors = true
			return err
		}

		for _, f := range formats {
			path, err := app.exporter.Export(report, f)
			if err != nil {
				return fmt.Errorf("exporting %s: %s", f, backend.UserMessage(err))
			}
			fmt.Printf("Saved %s report to %s\n", f, path)
		}
		return nil
	},
}

// quietControl is used with --quiet: no spinner.
type quietControl struct{}

func (quietControl) Busy()       {}
func (quietControl) Idle()       {}
func (quietControl) ClearInput() {}

func init() {
	scanCmd.Flags().StringSliceVarP(&scanExportFormats, "export", "e", nil, "also export the report: json, text, pdf (repeatable)")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "do not show the progress spinner")
	rootCmd.AddCommand(scanCmd)
}
