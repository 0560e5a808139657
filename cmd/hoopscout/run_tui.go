package main

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"hoopscout/internal/api"
	"hoopscout/internal/crew"
	"hoopscout/internal/logtee"
	"hoopscout/internal/tui"
)

// runCrewWithTUI runs the crew behind a bubbletea progress display.
// The transcript still flows through the tee so the capture file is
// identical to a headless run.
func runCrewWithTUI(ctx context.Context, c *crew.Crew, runner *api.Runner, tee *logtee.Tee) (retErr error) {
	// Suppress log output while the TUI owns the terminal.
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("PANIC in runCrewWithTUI: %v", r)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var names []string
	for _, t := range c.Tasks() {
		names = append(names, t.Name)
	}
	program, _ := tui.NewRunProgram(names)

	crewDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crewDone <- fmt.Errorf("PANIC in crew: %v", r)
			}
		}()
		_, err := c.Kickoff(ctx)
		crewDone <- err
	}()

	go forwardEventsToTUI(program, c.Events(), runner, tee)

	tuiDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				tuiDone <- fmt.Errorf("PANIC in TUI: %v", r)
			}
		}()
		_, err := program.Run()
		tuiDone <- err
	}()

	select {
	case err := <-crewDone:
		if err != nil {
			program.Send(tui.RunDoneMsg{Success: false, Message: err.Error()})
		} else {
			program.Send(tui.RunDoneMsg{Success: true, Message: "Research completed"})
		}
		// Wait for the user to quit (press q) so they can see the result.
		<-tuiDone
		return err

	case err := <-tuiDone:
		// TUI quit first (user abort); cancel the run and wait for the
		// crew to unwind.
		cancel()
		crewErr := <-crewDone
		if err != nil {
			return err
		}
		return crewErr
	}
}

// forwardEventsToTUI converts crew events to TUI messages and writes
// the run transcript through the tee.
func forwardEventsToTUI(program *tea.Program, events <-chan crew.Event, runner *api.Runner, tee *logtee.Tee) {
	for event := range events {
		errStr := ""
		if event.Err != nil {
			errStr = event.Err.Error()
		}
		program.Send(tui.CrewEventMsg{
			Type:    string(event.Type),
			Task:    event.Task,
			Agent:   event.Agent,
			Message: event.Message,
			Error:   errStr,
		})

		switch event.Type {
		case crew.EventTaskStarted:
			tee.Printf("\n%s\n▶ %s — %s (%s)\n", banner, event.Message, event.Task, event.Agent)
		case crew.EventTaskCompleted:
			tee.Printf("\n%s\n\n✓ %s completed\n", event.Output, event.Task)
			usage := runner.Usage()
			program.Send(tui.UsageMsg{
				InputTokens:  usage.InputTokens,
				OutputTokens: usage.OutputTokens,
				Cost:         usage.Cost,
			})
		case crew.EventTaskFailed:
			tee.Printf("✗ %s failed: %s\n", event.Task, errStr)
		}
	}
}
