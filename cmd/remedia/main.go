package main

import (
	"os"

	"github.com/spf13/cobra"

	"remedia/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "remedia",
		Short: "Remedia - natural remedy search API",
		Long:  `Remedia serves the remedy search API behind a request gate enforcing CSRF protection, ownership checks, and per-plan usage quotas.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
