/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "authdemo",
	Short: "Username/password authentication demo server",
	Long: `authdemo registers users, authenticates them with bcrypt-hashed
passwords and issues HS256 bearer tokens accepted by the profile endpoint.

Configuration is read from the environment (PORT, JWT_SECRET, TOKEN_TTL,
BCRYPT_COST, CORS_ALLOWED_ORIGINS, STATIC_DIR, LOG_LEVEL, LOG_FORMAT).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
