// Command devtoken mints an identity token for local development, standing in
// for the external identity provider.
package main

import (
	"errors"
	"fmt"
	"linkbio/internal/auth"
	"linkbio/internal/config"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		accountID string
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Mint a signed identity token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cfg.JWT.Secret == "" {
				return errors.New("jwt.secret must be set")
			}

			token, err := auth.GenerateJWT(accountID, cfg.JWT.Secret, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&accountID, "account", "a", "", "account ID to place in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.MarkFlagRequired("account")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
