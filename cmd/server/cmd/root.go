package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "breachvault",
	Short: "Breachvault - credential vault with breach exposure tracking",
	Long: `Breachvault stores credentials encrypted at rest with per-item key
material and checks email addresses against a breach data oracle,
aggregating sightings into a canonical breach registry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
