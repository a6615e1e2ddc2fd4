// cmd/ingest/root.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/config"
	"github.com/David-Botos/sentiment-ingress/pkg/ingest"
	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

type rootFlags struct {
	paramsPath string
	envFile    string
	dataPath   string
	logLevel   string
	logFormat  string
}

// rootCommand builds the ingestion command
func rootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "ingest",
		Short:         "Download the sentiment dataset and write the raw train/test split",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), cmd, flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.paramsPath, "params", config.DefaultParamsPath, "path to the parameter file")
	rootCmd.Flags().StringVar(&flags.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	rootCmd.Flags().StringVar(&flags.dataPath, "data-path", config.DefaultDataPath, "output root, files are written to <data-path>/raw")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	rootCmd.Flags().StringVar(&flags.logFormat, "log-format", "", "log format, json or console (overrides LOG_FORMAT)")

	return rootCmd
}

// bootstrapLogger logs failures that happen before the configured logger exists
var bootstrapLogger = func() (*zap.Logger, error) {
	return zap.NewProduction()
}

func runIngest(ctx context.Context, cmd *cobra.Command, flags *rootFlags) error {
	boot, err := bootstrapLogger()
	if err != nil {
		return err
	}
	defer boot.Sync()

	configError := func(err error) error {
		err = model.NewStageError(model.KindConfiguration, "configure", err)
		boot.Error("Failed to load configuration",
			zap.String("stage", "configure"),
			zap.Error(err))
		return err
	}

	cfg, err := config.LoadConfig(config.LoadOptions{
		ParamsPath: flags.paramsPath,
		EnvFile:    flags.envFile,
		DataPath:   flags.dataPath,
	})
	if err != nil {
		return configError(err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return configError(err)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return configError(err)
	}
	defer logger.Sync()

	pipeline, closeFn, err := ingest.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to build ingestion pipeline", zap.Error(err))
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("Failed to close ledger connection", zap.Error(err))
		}
	}()

	_, err = pipeline.Run(ctx)
	return err
}

// Execute runs the root command and returns the process exit code. A run is
// never aborted midway; signals keep their default behaviour.
func Execute() int {
	if err := rootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
