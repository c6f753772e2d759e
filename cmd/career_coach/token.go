package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/server"
	"github.com/spf13/cobra"
)

func newIssueTokenCmd(opts *rootOptions) *cobra.Command {
	var userID string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint a bearer token for local development",
		Long: `Sign a token with the configured JWT secret so the authenticated routes can be
exercised without the hosted auth service. A random user id is used unless --user-id is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive, got %s", ttl)
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			jwtCfg, err := config.NewJWTConfig(cfg.Auth)
			if err != nil {
				return err
			}

			id := uuid.New()
			if userID != "" {
				id, err = uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid --user-id: %w", err)
				}
			}

			token, err := server.NewJWTService(jwtCfg).GenerateToken(id, ttl)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]string{
				"user_id": id.String(),
				"token":   token,
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "User id to put in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
