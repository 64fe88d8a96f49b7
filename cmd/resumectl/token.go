package main

import (
	"fmt"

	"resume-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for local testing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		role, _ := cmd.Flags().GetString("role")
		if !jwt.ValidRole(role) {
			return fmt.Errorf("%w: %q", jwt.ErrInvalidRole, role)
		}
		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.JWT.AccessExpiresIn
		}

		userID := uuid.New()
		if s, _ := cmd.Flags().GetString("user"); s != "" {
			if userID, err = uuid.Parse(s); err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
		}

		tok, err := jwt.NewHMACService(cfg.JWT.AccessSecret, ttl).GenerateAccessToken(userID, email, role)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{
			"user_id":      userID.String(),
			"role":         role,
			"access_token": tok,
		})
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "user id (random when empty)")
	tokenCmd.Flags().String("role", "candidate", "candidate or recruiter")
	tokenCmd.Flags().String("email", "", "email claim")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (defaults to JWT_ACCESS_EXPIRES_IN)")
	rootCmd.AddCommand(tokenCmd)
}
