package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Ebzefr/WebSecura/api"
	"github.com/Ebzefr/WebSecura/api/router/handlers"
	"github.com/Ebzefr/WebSecura/config"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/render"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web UI",
	Long: `Serves the scanner, results overlay, history and exports as web pages
on localhost. Press Ctrl+C to shut down.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("--- Serve Command: Run ---")

		port := servePort
		if !cmd.Flags().Changed("port") {
			port = config.AppConfig.Server.Port
			logger.Info("Serve Command: Port flag not set, using config value: %s", port)
		}
		if port == "" {
			logger.Error("Serve Command: Port is empty after checking flag and config, defaulting to 8779")
			port = "8779"
		}

		tpl, err := render.LoadTemplates()
		if err != nil {
			return err
		}
		board := &handlers.NoticeBoard{}
		notifier := core.NewNotifier(board, config.AppConfig.NoticeDuration())
		defer notifier.Close()

		srv := &handlers.Server{
			Templates: tpl,
			Client:    app.client,
			State:     app.state,
			Session:   app.session,
			Exporter:  app.exporter,
			Notifier:  notifier,
			Notices:   board,
			Product:   config.AppConfig.UI.ProductName,
			PageSize:  config.AppConfig.UI.PageSize,
		}
		server := &http.Server{
			Addr:              "127.0.0.1:" + port,
			Handler:           api.NewRouter(srv),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Serve Command: Listening on %s", server.Addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Serve Command: ListenAndServe error: %v", err)
				cancel()
			}
			logger.Info("Serve Command: Server goroutine finished.")
		}()

		color.Cyan("WebSecura UI running at http://%s (Ctrl+C to stop)", server.Addr)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			logger.Info("Serve Command: Received signal: %s. Initiating shutdown...", sig)
		case <-ctx.Done():
			logger.Info("Serve Command: Context cancelled (server error). Initiating shutdown...")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Serve Command: Graceful shutdown failed: %v", err)
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			logger.Info("Serve Command: Shut down cleanly.")
		case <-time.After(10 * time.Second):
			logger.Error("Serve Command: Shutdown timed out. Forcing exit.")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8779", "port for the web UI (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
