package main

import (
	"os"

	"github.com/spf13/cobra"

	"chatledger/internal/interfaces/cli/migrate"
	"chatledger/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chatledger",
		Short: "Identity mirror, subscription, and token ledger service",
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
