package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hoopscout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Display the effective configuration after merging defaults, the
user config, any project config, and environment variables.

Configuration is stored at ~/.config/hoopscout/config.yaml
Project-specific overrides can be placed in .hoopscout.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		// Never print the key itself.
		apiKeyDisplay := "(not set)"
		if cfg.Anthropic.APIKey != "" {
			apiKeyDisplay = "****"
		}
		fmt.Printf("anthropic.api_key: %s\n", apiKeyDisplay)
		fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
		fmt.Printf("anthropic.use_bedrock: %t\n", cfg.Anthropic.UseBedrock)
		if cfg.Anthropic.UseBedrock {
			fmt.Printf("anthropic.aws_region: %s\n", cfg.Anthropic.AWSRegion)
			fmt.Printf("anthropic.aws_profile: %s\n", cfg.Anthropic.AWSProfile)
		}
		fmt.Printf("crew.max_iterations: %d\n", cfg.Crew.MaxIterations)
		fmt.Printf("crew.task_timeout: %s\n", cfg.Crew.TaskTimeout)
		fmt.Printf("crew.retry_backoff: %s\n", cfg.Crew.RetryBackoff)
		fmt.Printf("output.dir: %s\n", cfg.Output.Dir)
		fmt.Printf("roster.overrides: %s\n", cfg.Roster.Overrides)

		fmt.Println()
		fmt.Printf("user config: %s\n", config.GetUserConfigPath())
		if project := config.GetProjectConfigPath(); project != "" {
			fmt.Printf("project config: %s\n", project)
		}
	},
}
