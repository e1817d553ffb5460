package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the scanning service is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Backend: %s\n", config.AppConfig.API.BaseURL)
		start := time.Now()
		h, err := app.client.Health(context.Background())
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			fmt.Printf("Status:  %s (%s)\n", color.RedString("unreachable"), elapsed)
			return fmt.Errorf("%s", backend.UserMessage(err))
		}
		fmt.Printf("Status:  %s (%s)\n", color.GreenString(h.Status), elapsed)
		if h.Version != "" {
			fmt.Printf("Version: %s\n", h.Version)
		}
		if s := app.session.Current(); s != nil {
			fmt.Printf("Session: %s\n", s.Username)
		} else {
			fmt.Println("Session: not logged in")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
