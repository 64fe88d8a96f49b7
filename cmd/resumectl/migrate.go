package main

import (
	"resume-match/internal/database/migration"
	"resume-match/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, lg, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = lg.Sync() }()

		db, err := connect(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		runner := migration.Runner{FS: migrations.FS}
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			runner = migration.Runner{Dir: dir}
		}
		if err := runner.Run(cmd.Context(), db.SQLDB()); err != nil {
			return err
		}
		lg.Info("migrations applied", zap.String("database", cfg.Database.DBName))
		return nil
	},
}

func init() {
	migrateCmd.Flags().String("dir", "", "read migrations from this directory instead of the embedded set")
	rootCmd.AddCommand(migrateCmd)
}
