package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hoopscout/internal/state"
	"hoopscout/pkg/models"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past research runs",
	Long: `Display past runs from the local history database, newest first.

Shows run ID, status, model, token usage, and output files.`,
	RunE: listRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run's per-task results",
	Args:  cobra.ExactArgs(1),
	RunE:  showRun,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "Maximum number of runs to list")
	runsCmd.AddCommand(runsShowCmd)
}

func listRuns(cmd *cobra.Command, args []string) error {
	dbPath := state.DefaultPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	db, err := state.OpenDefault()
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	runs, err := db.ListRuns(nil, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %s  %s  in:%d out:%d  $%.2f\n",
			shortID(r.ID),
			statusColor(r.Status).Sprintf("%-9s", r.Status),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Model,
			r.InputTokens, r.OutputTokens, r.Cost)
		if r.ReportFile != "" {
			fmt.Printf("          report: %s\n", r.ReportFile)
		}
		if r.Error != "" {
			fmt.Printf("          error: %s\n", firstLine(r.Error))
		}
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	db, err := state.OpenDefault()
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	run, err := resolveRun(db, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run %s (%s)\n", run.ID, run.Status)
	fmt.Printf("model:   %s\n", run.Model)
	fmt.Printf("started: %s\n", run.StartedAt.Local().Format(time.RFC1123))
	if run.FinishedAt != nil {
		fmt.Printf("took:    %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Second))
	}
	if run.LogFile != "" {
		fmt.Printf("log:     %s\n", run.LogFile)
	}
	if run.ReportFile != "" {
		fmt.Printf("report:  %s\n", run.ReportFile)
	}
	fmt.Println()

	records, err := db.ListTaskResults(run.ID)
	if err != nil {
		return err
	}
	for _, rec := range records {
		fmt.Printf("%d. %-24s %s  %s  attempts:%d  %s\n",
			rec.Position+1, rec.Name,
			taskStateColor(rec.State).Sprintf("%-7s", rec.State),
			rec.AgentRole,
			rec.Attempts,
			(time.Duration(rec.DurationMS) * time.Millisecond).Round(time.Second))
		if rec.Error != "" {
			fmt.Printf("   error: %s\n", firstLine(rec.Error))
		}
	}
	return nil
}

// resolveRun accepts a full or shortened run ID.
func resolveRun(db *state.DB, id string) (*models.Run, error) {
	run, err := db.GetRun(id)
	if err != nil {
		return nil, err
	}
	if run != nil {
		return run, nil
	}

	runs, err := db.ListRuns(nil, 0)
	if err != nil {
		return nil, err
	}
	var match *models.Run
	for i := range runs {
		if strings.HasPrefix(runs[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("run ID %q is ambiguous", id)
			}
			match = &runs[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("run %q not found", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func statusColor(s models.RunStatus) *color.Color {
	switch s {
	case models.RunStatusCompleted:
		return color.New(color.FgGreen)
	case models.RunStatusFailed:
		return color.New(color.FgRed)
	case models.RunStatusCanceled:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func taskStateColor(s models.TaskState) *color.Color {
	switch s {
	case models.TaskStateDone:
		return color.New(color.FgGreen)
	case models.TaskStateFailed:
		return color.New(color.FgRed)
	case models.TaskStateSkipped:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
