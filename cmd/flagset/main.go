package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flagset",
	Short: "Inspect and validate flag collection documents",
	Long: `flagset loads TOML flag collection documents, validates them against
the declaration rules (bit assignment, aliases, uniqueness modes) and shows
the resolved collections.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(evalCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
