package main

import (
	"fmt"

	"resume-match/internal/app"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <profile-id> <job-id>",
	Short: "Score a profile against a job posting and store the result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid profile id: %w", err)
		}
		jobID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid job id: %w", err)
		}

		// the operator scores as a recruiter, who may match any completed profile
		actor := usecase.Actor{UserID: uuid.New(), Role: jwt.RoleRecruiter}
		if s, _ := cmd.Flags().GetString("user"); s != "" {
			if actor.UserID, err = uuid.Parse(s); err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
		}

		return withContainer(cmd.Context(), func(c *app.Container) error {
			rec, err := c.MatchingUC.Compute(cmd.Context(), actor, profileID, jobID)
			if err != nil {
				return err
			}
			return printJSON(rec)
		})
	},
}

func init() {
	matchCmd.Flags().String("user", "", "recruiter user id to act as (random when empty)")
	rootCmd.AddCommand(matchCmd)
}
