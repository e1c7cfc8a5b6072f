package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCompileCommand(logger *zap.Logger) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "compile <manifest.yaml>",
		Short: "Compile a metadata manifest into a runtime definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading manifest: %w", err)
			}

			var manifest Manifest
			if err := yaml.Unmarshal(data, &manifest); err != nil {
				return fmt.Errorf("decoding manifest %s: %w", args[0], err)
			}

			code, err := compileManifest(&manifest)
			if err != nil {
				logger.Error("compilation failed",
					zap.String("manifest", args[0]),
					zap.String("name", manifest.Name),
					zap.Error(err))
				return err
			}

			logger.Info("compiled",
				zap.String("name", manifest.Name),
				zap.String("kind", manifest.Kind),
				zap.Duration("elapsed", time.Since(start)))

			if outputPath != "" {
				return os.WriteFile(outputPath, []byte(code), 0644)
			}
			fmt.Fprint(cmd.OutOrStdout(), code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"write generated code to a file instead of stdout")
	return cmd
}
