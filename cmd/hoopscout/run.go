package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hoopscout/internal/api"
	"hoopscout/internal/config"
	"hoopscout/internal/crew"
	"hoopscout/internal/logtee"
	"hoopscout/internal/report"
	"hoopscout/internal/roster"
	"hoopscout/internal/signals"
	"hoopscout/internal/state"
	"hoopscout/pkg/models"
)

var (
	runHeadless   bool
	runModel      string
	runOutputDir  string
	runOverrides  string
	runSkipReport bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the research crew",
	Long: `Run the full seven-task research pipeline.

Tasks execute strictly in order; the feature prioritization, UI design
and business model tasks receive the outputs of earlier tasks as
context. Expect a long run: each task is a full model completion.

Outputs land in the configured output directory:
  basketball_research_FULL_<timestamp>.txt              full console capture
  basketball_league_COMPLETE_research_<timestamp>.md    assembled report

Drop a file named "stop" into <output-dir>/signals/ to abort the run
at the next task boundary; a "pause" file holds it there until removed.`,
	RunE: runResearch,
}

func init() {
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "Run without TUI (plain console output)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Model identifier override")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "Directory for logs and the report")
	runCmd.Flags().StringVar(&runOverrides, "overrides", "", "YAML file overriding agent/task text")
	runCmd.Flags().BoolVar(&runSkipReport, "skip-report", false, "Skip writing the Markdown report")
}

func runResearch(cmd *cobra.Command, args []string) (retErr error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if runModel != "" {
		cfg.Anthropic.Model = runModel
	}
	if runOutputDir != "" {
		cfg.Output.Dir = runOutputDir
	}
	if runOverrides != "" {
		cfg.Roster.Overrides = runOverrides
	}

	agents, tasks, err := buildRoster(cfg)
	if err != nil {
		return err
	}

	client, err := api.NewClient(api.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return err
	}

	ts := time.Now()
	logPath := filepath.Join(cfg.Output.Dir, logtee.Filename(ts))

	// Under the TUI the console belongs to bubbletea; the tee then
	// writes the transcript to the capture file only.
	terminal := io.Writer(os.Stdout)
	if !runHeadless {
		terminal = io.Discard
	}
	tee, err := logtee.New(terminal, logPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := tee.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	watcher, err := signals.New(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer watcher.Close()
	watcher.Clear()

	runner := api.NewRunner(client, api.Pricing{
		InputPerMTok:  cfg.Anthropic.InputCostPerMTok,
		OutputPerMTok: cfg.Anthropic.OutputCostPerMTok,
	})
	c, err := crew.New(agents, tasks, crew.Config{
		Process:      crew.ProcessSequential,
		Executor:     runner,
		TaskTimeout:  cfg.Crew.TaskTimeout,
		RetryBackoff: cfg.Crew.RetryBackoff,
		Gate:         watcher.Gate,
	})
	if err != nil {
		return err
	}

	db, err := state.OpenDefault()
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate run history: %w", err)
	}

	run := &models.Run{
		ID:        uuid.NewString(),
		Model:     string(client.Model()),
		Status:    models.RunStatusActive,
		LogFile:   logPath,
		StartedAt: ts,
	}
	if err := db.CreateRun(run); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tee.Printf("🏀 Starting Basketball League Management App Research...\n")
	tee.Printf("%s\n", banner)
	tee.Printf("\n🚀 Executing research crew with UI Designer... This may take 12-18 minutes.\n")
	tee.Printf("📝 Full output is being saved to: %s\n\n", logPath)

	var runErr error
	if runHeadless {
		runErr = runCrewHeadless(ctx, c, runner, tee)
	} else {
		runErr = runCrewWithTUI(ctx, c, runner, tee)
	}

	// The report is assembled from whatever outputs exist, even when
	// the run failed midway.
	reportPath := ""
	if !runSkipReport {
		reportPath = filepath.Join(cfg.Output.Dir, report.Filename(ts))
		outputs := make(map[string]string, len(tasks))
		for _, t := range tasks {
			outputs[t.Name] = t.Output
		}
		if err := report.WriteFile(reportPath, report.Params{
			GeneratedAt: time.Now(),
			LogFile:     logPath,
			Outputs:     outputs,
		}); err != nil {
			tee.Printf("⚠️  %v\n", err)
			if runErr == nil {
				runErr = err
			}
			reportPath = ""
		}
	}

	finishRun(db, run, tasks, runner, reportPath, runErr)

	if runErr != nil {
		tee.Printf("\n❌ Error occurred: %v\n", runErr)
		tee.Printf("Partial results may have been saved.\n")
		return runErr
	}

	tee.Printf("\n%s\n", banner)
	tee.Printf("✅ Research completed with UI Design!\n")
	if reportPath != "" {
		tee.Printf("📄 Complete Markdown report: %s\n", reportPath)
	}
	tee.Printf("📝 Full output log: %s\n", logPath)
	tee.Printf("%s\n", banner)
	return nil
}

// banner matches the console ruler width used in the report.
const banner = "============================================================"

// buildRoster assembles the crew registries with customizations
// applied. The config-wide max_iterations is a default only: a
// per-agent max_iter in the overrides file wins over it.
func buildRoster(cfg *config.Config) ([]*crew.Agent, []*crew.Task, error) {
	agents, tasks := roster.Build()
	if cfg.Crew.MaxIterations > 0 {
		for _, a := range agents {
			a.MaxIter = cfg.Crew.MaxIterations
		}
	}
	if cfg.Roster.Overrides != "" {
		ov, err := roster.LoadOverrides(cfg.Roster.Overrides)
		if err != nil {
			return nil, nil, err
		}
		if err := ov.Apply(agents, tasks); err != nil {
			return nil, nil, err
		}
	}
	return agents, tasks, nil
}

// runCrewHeadless drains crew events to colored console lines and
// writes each task's transcript through the tee.
func runCrewHeadless(ctx context.Context, c *crew.Crew, runner *api.Runner, tee *logtee.Tee) error {
	done := make(chan error, 1)
	go func() {
		_, err := c.Kickoff(ctx)
		done <- err
	}()

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	for ev := range c.Events() {
		switch ev.Type {
		case crew.EventTaskStarted:
			tee.Printf("\n%s\n", banner)
			tee.Printf("▶ %s — %s (%s)\n", ev.Message, ev.Task, ev.Agent)
		case crew.EventTaskRetry:
			yellow.Fprintf(tee, "  retrying %s: %s\n", ev.Task, ev.Message)
		case crew.EventTaskCompleted:
			tee.Printf("\n%s\n\n", ev.Output)
			green.Fprintf(tee, "✓ %s completed\n", ev.Task)
		case crew.EventTaskFailed:
			red.Fprintf(tee, "✗ %s failed: %v\n", ev.Task, ev.Err)
		case crew.EventTaskSkipped:
			yellow.Fprintf(tee, "- %s skipped\n", ev.Task)
		}
	}

	return <-done
}

// finishRun persists the final run record and per-task results.
// Persistence failures are reported but never mask the run error.
func finishRun(db *state.DB, run *models.Run, tasks []*crew.Task, runner *api.Runner, reportPath string, runErr error) {
	usage := runner.Usage()
	now := time.Now()

	run.ReportFile = reportPath
	run.InputTokens = usage.InputTokens
	run.OutputTokens = usage.OutputTokens
	run.Cost = usage.Cost
	run.FinishedAt = &now
	switch {
	case runErr == nil:
		run.Status = models.RunStatusCompleted
	case errors.Is(runErr, context.Canceled):
		run.Status = models.RunStatusCanceled
		run.Error = runErr.Error()
	default:
		run.Status = models.RunStatusFailed
		run.Error = runErr.Error()
	}

	if err := db.UpdateRun(run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: save run: %v\n", err)
	}

	for i, t := range tasks {
		rec := &models.TaskRecord{
			RunID:      run.ID,
			Name:       t.Name,
			Position:   i,
			AgentRole:  t.Agent.Role,
			State:      t.State,
			Output:     t.Output,
			Attempts:   t.Attempts,
			DurationMS: t.Duration.Milliseconds(),
		}
		if t.Err != nil {
			rec.Error = t.Err.Error()
		}
		if err := db.SaveTaskResult(rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: save task result %s: %v\n", t.Name, err)
		}
	}
}
