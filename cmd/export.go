package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Ebzefr/WebSecura/config"
	"github.com/Ebzefr/WebSecura/export"
	"github.com/Ebzefr/WebSecura/logger"

	"github.com/spf13/cobra"
)

var (
	exportDir   string
	exportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export <json|text|pdf>",
	Short: "Export the current report",
	Long: `Writes the report last shown (a fresh scan or a history record opened
with 'history view') to <product>-scan-<timestamp>.<ext> in the export
directory.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "text", "txt", "pdf"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		exporter := app.exporter
		if exportDir != "" {
			exporter = export.NewExporter(exportDir, config.AppConfig.UI.ProductName, app.exportLog)
		}
		report, _ := app.state.Current()
		path, err := exporter.Export(report, format)
		if err != nil {
			if errors.Is(err, export.ErrNoData) {
				return err
			}
			logger.Error("Export command: %v", err)
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Printf("Report exported to %s\n", path)
		return nil
	},
}

var exportListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recently written export files",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := app.exportLog.Recent(exportLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No exports yet.")
			return nil
		}
		writer := new(tabwriter.Writer)
		writer.Init(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintln(writer, "ID\tFILE\tFORMAT\tREPORT_URL\tEXPORTED_AT")
		fmt.Fprintln(writer, "--\t----\t------\t----------\t-----------")
		for _, r := range records {
			format := r.Format
			if r.FellBack {
				format += " (fallback)"
			}
			fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Filename, format, r.ReportURL, r.ExportedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return writer.Flush()
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "directory to write the file to (overrides config export.dir)")
	exportListCmd.Flags().IntVarP(&exportLimit, "limit", "n", 20, "number of records to show")
	exportCmd.AddCommand(exportListCmd)
	rootCmd.AddCommand(exportCmd)
}
