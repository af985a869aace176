package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the wishlist CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Wishlist accounts service",
		Long: `Wishlist accounts service: signup, login and remembered sessions.
Configuration is read from environment variables.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
