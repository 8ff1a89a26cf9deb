package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/natal-chart/internal/domain/auth"
	"github.com/yanqian/natal-chart/pkg/logger"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the /api/v1 routes",
		Long: `Signs an HS256 access token with the API secret. The secret comes from
--secret or, when omitted, the AUTH_SECRET environment variable.`,
		RunE: runToken,
	}
	cmd.Flags().String("subject", "", "token subject, recorded as the chart owner")
	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().String("secret", "", "signing secret (default $AUTH_SECRET)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func runToken(cmd *cobra.Command, _ []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	secret, _ := cmd.Flags().GetString("secret")
	if secret == "" {
		secret = os.Getenv("AUTH_SECRET")
	}
	if secret == "" {
		return fmt.Errorf("token: --secret or AUTH_SECRET is required")
	}

	svc := auth.NewService(auth.Config{Secret: secret, TokenTTL: ttl}, logger.NewCLI(cmd.ErrOrStderr()))
	resp, err := svc.IssueToken(cmd.Context(), auth.TokenRequest{Subject: subject, TTL: ttl})
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	return writeJSON(cmd, cmd.OutOrStdout(), resp)
}
