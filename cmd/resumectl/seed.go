package main

import (
	"resume-match/internal/database/migration"
	"resume-match/internal/database/seeder"
	"resume-match/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default skill vocabulary and demo job postings",
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

		if err := (migration.Runner{FS: migrations.FS}).Run(cmd.Context(), db.SQLDB()); err != nil {
			return err
		}

		seeders := seeder.Defaults()
		if skillsOnly, _ := cmd.Flags().GetBool("skills-only"); skillsOnly {
			seeders = []seeder.Seeder{seeder.SkillsSeeder{}}
		}
		if err := (seeder.Runner{Seeders: seeders}).Run(cmd.Context(), db); err != nil {
			return err
		}
		lg.Info("seed complete", zap.Int("seeders", len(seeders)))
		return nil
	},
}

func init() {
	seedCmd.Flags().Bool("skills-only", false, "seed the skill vocabulary without demo postings")
	rootCmd.AddCommand(seedCmd)
}
