package main

import (
	"errors"
	"fmt"

	"resume-match/internal/app"
	"resume-match/internal/pipeline"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process <document-id>",
	Short: "Run the resume pipeline for one pending document and wait for the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid document id: %w", err)
		}
		reset, _ := cmd.Flags().GetBool("reset")

		return withContainer(cmd.Context(), func(c *app.Container) error {
			if reset {
				if _, err := c.Documents.ResetForReprocess(cmd.Context(), id); err != nil {
					return err
				}
			}

			res, err := c.Pipeline.Run(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, pipeline.ErrRunInFlight) {
					return fmt.Errorf("%w (use --reset to re-run a finished document)", err)
				}
				return err
			}
			return printJSON(res)
		})
	},
}

func init() {
	processCmd.Flags().Bool("reset", false, "move a completed or failed document back to pending first")
	rootCmd.AddCommand(processCmd)
}
