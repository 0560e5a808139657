package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hoopscout/internal/roster"
)

var tasksVerbose bool

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the research pipeline tasks",
	Long: `Display the seven pipeline tasks in execution order, including
which agent runs each one and which earlier outputs feed into it.

Use --verbose to include each task's full prompt.`,
	Run: func(cmd *cobra.Command, args []string) {
		bold := color.New(color.Bold)
		dim := color.New(color.Faint)

		_, tasks := roster.Build()
		for i, t := range tasks {
			bold.Printf("%d. %s\n", i+1, t.Name)
			fmt.Printf("   agent: %s\n", t.Agent.Role)
			if len(t.Context) > 0 {
				var deps []string
				for _, dep := range t.Context {
					deps = append(deps, dep.Name)
				}
				fmt.Printf("   context: %s\n", strings.Join(deps, ", "))
			}
			fmt.Printf("   expected: %s\n", t.ExpectedOutput)
			if tasksVerbose {
				fmt.Println()
				for _, line := range strings.Split(strings.TrimSpace(t.Description), "\n") {
					dim.Printf("   %s\n", line)
				}
			}
			fmt.Println()
		}
	},
}

func init() {
	tasksCmd.Flags().BoolVarP(&tasksVerbose, "verbose", "v", false, "Include full task prompts")
}
