package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hoopscout/internal/roster"
)

var agentsVerbose bool

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the configured research agents",
	Long: `Display the crew's seven research agents with their goals.

Use --verbose to include each agent's full backstory.`,
	Run: func(cmd *cobra.Command, args []string) {
		bold := color.New(color.Bold)
		dim := color.New(color.Faint)

		for i, a := range roster.Agents() {
			bold.Printf("%d. %s\n", i+1, a.Role)
			fmt.Printf("   goal: %s\n", a.Goal)
			if agentsVerbose {
				for _, line := range strings.Split(strings.TrimSpace(a.Backstory), "\n") {
					dim.Printf("   %s\n", strings.TrimSpace(line))
				}
			}
			fmt.Println()
		}
	},
}

func init() {
	agentsCmd.Flags().BoolVarP(&agentsVerbose, "verbose", "v", false, "Include agent backstories")
}
