package cmd

import (
	"fmt"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/config"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/database"
	"github.com/Ebzefr/WebSecura/export"
	"github.com/Ebzefr/WebSecura/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile         string
	storagePathFlag string
	appLogPathFlag  string
	httpLogPathFlag string
	logLevelFlag    string
)

// appContext is what every command shares once PersistentPreRunE has run.
type appContext struct {
	store     *database.LocalStorage
	exportLog *database.ExportLog
	state     *core.AppState
	session   *core.SessionGate
	client    *backend.Client
	exporter  *export.Exporter
}

var app appContext

var rootCmd = &cobra.Command{
	Use:   "websecura",
	Short: "Command line and local web client for the WebSecura scanner",
	Long: `websecura submits websites to the WebSecura scanning service and
presents the results: a colour summary in the terminal, JSON, text and PDF
exports, your saved scan history and a local web UI (websecura serve).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile, appLogPathFlag, httpLogPathFlag, logLevelFlag); err != nil {
			return fmt.Errorf("failed to initialize config in PersistentPreRunE: %w", err)
		}
		if cmd.Name() == "version" {
			return nil
		}

		storagePath := config.AppConfig.Storage.Path
		if storagePathFlag != "" {
			expanded, err := config.ExpandTilde(storagePathFlag)
			if err != nil {
				logger.Error("Error expanding tilde in --storage flag '%s': %v. Using original.", storagePathFlag, err)
				expanded = storagePathFlag
			}
			storagePath = expanded
		}
		if storagePath == "" {
			logger.Error("PersistentPreRunE: Storage path is empty after checking flag and config! Falling back to 'websecura.db' in CWD.")
			storagePath = "websecura.db"
		}

		logger.Debug("PersistentPreRunE: Attempting to InitDB with final path: '%s'", storagePath)
		if err := database.InitDB(storagePath); err != nil {
			return fmt.Errorf("failed to initialize local storage at %s: %w", storagePath, err)
		}

		app.store = database.NewLocalStorage(database.DB)
		app.exportLog = database.NewExportLog(database.DB)
		app.state = core.NewAppState(app.store)
		app.session = core.NewSessionGate(app.store)
		app.client = backend.NewClient(config.AppConfig.API.BaseURL, config.AppConfig.Timeout())
		app.exporter = export.NewExporter(config.AppConfig.Export.Dir, config.AppConfig.UI.ProductName, app.exportLog)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		database.Close()
	},
}

// Execute runs the command tree. Cobra has already printed any error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/websecura/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storagePathFlag, "storage", "", "path to the local storage database (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&appLogPathFlag, "app-log", "", "path for the application log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&httpLogPathFlag, "http-log", "", "path for the backend HTTP log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR (overrides config/default)")
}
