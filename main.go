package main

import (
	"fmt"
	"os"

	"github.com/Ebzefr/WebSecura/cmd"
	"github.com/Ebzefr/WebSecura/config"
	"github.com/Ebzefr/WebSecura/logger"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup happens before os.Exit.
func run() int {
	paths := config.GetDefaultConfigPaths()
	if err := logger.InitGlobalLoggers(paths.LogPathApp, paths.LogPathHTTP, paths.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "websecura: opening log files: %v\n", err)
		return 1
	}
	defer logger.CloseLogFiles()

	if err := cmd.Execute(); err != nil {
		logger.Error("websecura: %v", err)
		return 1
	}
	return 0
}
