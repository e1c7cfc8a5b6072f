package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "ngdef-go",
		Short:         "Compiles directive and component metadata into runtime definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompileCommand(logger))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
