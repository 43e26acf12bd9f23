package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/server"
	"github.com/jonathan/resume-screener/internal/types"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API bearer token",
	Long:  "Signs a JWT for the given subject with JWT_SECRET. The token is printed to stdout.",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenHours   int
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Subject UUID (required)")
	tokenCmd.Flags().IntVar(&tokenHours, "hours", 0, "Lifetime in hours (overrides JWT_EXPIRATION_HOURS)")
	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	req := &types.TokenRequest{Subject: tokenSubject}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("--subject must be a UUID: %w", err)
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("hours") {
		if tokenHours <= 0 {
			return fmt.Errorf("--hours must be positive")
		}
		jwtCfg.ExpirationHours = tokenHours
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(uuid.MustParse(req.Subject))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, token)
	return nil
}
