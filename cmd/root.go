// Package cmd wires the CLI entrypoints.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "solance",
	Short: "Adaptive learning backend",
	Long: `Solance mediates between clients and a hosted LLM to generate
adaptive practice questions, guide students step by step, grade answers
and let educators author course cartridges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Running with no subcommand starts the server.
		return runServe(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
