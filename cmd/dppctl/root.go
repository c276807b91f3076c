package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/dpp/internal/config"
	"github.com/Simplici0/dpp/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dppctl",
		Short:         "Operate the digital product passport service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newNutritionCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	return root
}

// loadRuntime reads configuration and builds the logger shared by the
// database subcommands.
func loadRuntime() (config.Config, *zap.Logger, error) {
	cfg := config.Load()
	logger, err := logging.New(cfg.IsDev(), cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
