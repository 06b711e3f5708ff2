/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authdemo/apiserver/config"
	"github.com/authdemo/apiserver/internal/auth"
)

// tokenCmd groups offline token helpers that sign with JWT_SECRET.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue or inspect bearer tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Print a token bound to --user-id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := cmd.Flags().GetInt("user-id")
		if err != nil {
			return err
		}
		if userID < 1 {
			return errors.New("--user-id must be a positive integer")
		}

		issuer, err := loadIssuer()
		if err != nil {
			return err
		}
		token, err := issuer.Issue(userID)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var tokenVerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Verify a token and print its user id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issuer, err := loadIssuer()
		if err != nil {
			return err
		}
		userID, err := issuer.Verify(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), userID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenCmd.AddCommand(tokenVerifyCmd)

	tokenIssueCmd.Flags().Int("user-id", 0, "user id to embed in the token")
}

func loadIssuer() (*auth.TokenIssuer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), nil
}
