package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "solarthermal",
		Short:        "Size a solar thermal hot-water system for a multi-unit building",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(calcCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
