package cmd

import (
	"fmt"

	"github.com/Ebzefr/WebSecura/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("websecura %s\n", version.AppVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
