package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"resume-match/internal/app"
	"resume-match/internal/config"
	"resume-match/internal/database"
	dbpostgres "resume-match/internal/database/postgres"
	"resume-match/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:           "resumectl",
		Short:         "resumectl manages the resume matching service: schema, seed data, runs and tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if cfgFile != "" {
				return os.Setenv("CONFIG_FILE", cfgFile)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file loaded on top of the environment")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
}

func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	level := cfg.App.LogLevel
	if debug {
		level = "debug"
	}
	lg, err := logger.New(cfg.App.Environment, level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, lg, nil
}

// connect opens only the database, for commands that must not need the rest of the stack.
func connect(ctx context.Context, cfg config.Config) (database.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return dbpostgres.Connect(ctx, cfg.Database)
}

// withContainer builds the full dependency graph with in-process dispatch, so a CLI run never
// publishes to the queue.
func withContainer(ctx context.Context, fn func(c *app.Container) error) error {
	cfg, lg, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	cfg.Pipeline.Dispatch = config.DispatchInProcess
	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return fn(c)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
