package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hoopscout",
	Short: "Multi-agent research crew for basketball league platforms",
	Long: `hoopscout runs a fixed crew of seven role-played research agents
through a sequential task pipeline and assembles their findings into a
single Markdown report.

The pipeline covers market research, user research, technical
architecture, compliance, feature prioritization, UI design, and the
business model for a youth basketball league management platform.
Later tasks receive the outputs of earlier tasks as prompt context.

All console output from a run is captured to a timestamped log file
alongside the report.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// The original workflow reads API credentials from a .env file in
	// the working directory; keep honoring it before config loads.
	_ = godotenv.Load()

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
