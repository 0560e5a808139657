// Package crew implements a small sequential multi-agent execution
// engine: named role agents run an ordered list of prompt tasks, with
// the outputs of earlier tasks injected as context into later ones.
package crew

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hoopscout/pkg/models"
)

// Agent is a role configuration handed to the executor for each task
// it is assigned. It carries no state between tasks.
type Agent struct {
	// Role is the human-readable role title (e.g. "Market Research Analyst").
	Role string
	// Goal is the one-line objective used in the system prompt.
	Goal string
	// Backstory is the persona description used in the system prompt.
	Backstory string
	// MaxIter bounds execution attempts for a task assigned to this agent.
	MaxIter int
	// AllowDelegation is carried for registry fidelity; the sequential
	// process never delegates.
	AllowDelegation bool
	// Model optionally overrides the crew-wide model for this agent.
	Model string
}

// Name returns a stable lowercase identifier derived from the role.
func (a *Agent) Name() string {
	return strings.ToLower(strings.ReplaceAll(a.Role, " ", "_"))
}

// Task is a prompt template plus its expected output description.
// A task may declare earlier tasks as context; their outputs are
// appended to this task's prompt before execution.
type Task struct {
	// Name is the registry identifier (e.g. "market_research").
	Name string
	// Description is the full prompt body for the task.
	Description string
	// ExpectedOutput describes the deliverable the agent should produce.
	ExpectedOutput string
	// Agent is the agent assigned to execute this task.
	Agent *Agent
	// Context lists tasks whose outputs feed into this task's prompt.
	// Every entry must appear earlier in the crew's task list.
	Context []*Task

	// State is the task's execution state, updated during Kickoff.
	State models.TaskState
	// Output is the captured output after a successful execution.
	Output string
	// Attempts is the number of execution attempts made.
	Attempts int
	// Duration is the wall-clock execution time.
	Duration time.Duration
	// Err holds the final error if the task failed.
	Err error
}

// Prompt assembles the full prompt for the task, including the outputs
// of its context tasks when present.
func (t *Task) Prompt() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(t.Description))
	if t.ExpectedOutput != "" {
		b.WriteString("\n\nExpected output: ")
		b.WriteString(t.ExpectedOutput)
	}
	ctx := t.contextBlock()
	if ctx != "" {
		b.WriteString("\n\n")
		b.WriteString(ctx)
	}
	return b.String()
}

// contextBlock renders the outputs of completed context tasks.
// Context tasks that produced no output are skipped.
func (t *Task) contextBlock() string {
	var parts []string
	for _, dep := range t.Context {
		if dep.Output == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("### Output of %s\n\n%s", dep.Name, dep.Output))
	}
	if len(parts) == 0 {
		return ""
	}
	return "## Context from earlier tasks\n\n" + strings.Join(parts, "\n\n")
}

// Process selects how the crew walks its task list.
type Process string

const (
	// ProcessSequential runs tasks one at a time in declaration order.
	ProcessSequential Process = "sequential"
)

// Executor performs a single task attempt for an agent. Implementations
// wrap the LLM transport; the crew itself never talks to the API.
type Executor interface {
	Execute(ctx context.Context, agent *Agent, prompt string) (string, error)
}

// Usage reports token consumption for a finished run.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	Cost         float64
}

// UsageReporter is optionally implemented by executors that track
// token usage across calls.
type UsageReporter interface {
	Usage() Usage
}

// Result holds the outcome of a crew run.
type Result struct {
	// Tasks is the crew's task list with outputs and states filled in.
	Tasks []*Task
	// Final is the output of the last completed task.
	Final string
	// Usage is the aggregate token usage, if the executor reports it.
	Usage Usage
	// Duration is the wall-clock run time.
	Duration time.Duration
}

// TaskByName returns the result task with the given name, or nil.
func (r *Result) TaskByName(name string) *Task {
	for _, t := range r.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Config configures a Crew.
type Config struct {
	// Process selects the execution order. Only sequential is supported.
	Process Process
	// Executor performs task attempts. Required.
	Executor Executor
	// TaskTimeout bounds a single task attempt. Zero means no bound.
	TaskTimeout time.Duration
	// RetryBackoff is the base delay between failed attempts.
	RetryBackoff time.Duration
	// Gate, when non-nil, is consulted at each task boundary. It blocks
	// while the run is paused and returns an error to stop the run.
	Gate func(ctx context.Context) error
}

// Crew executes an ordered list of tasks across a set of agents.
type Crew struct {
	agents []*Agent
	tasks  []*Task
	cfg    Config
	events chan Event
}

// New creates a crew over the given agents and tasks.
// It validates that every task has an assigned agent and that context
// references point at earlier tasks only.
func New(agents []*Agent, tasks []*Task, cfg Config) (*Crew, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("crew: executor is required")
	}
	if cfg.Process == "" {
		cfg.Process = ProcessSequential
	}
	if cfg.Process != ProcessSequential {
		return nil, fmt.Errorf("crew: unsupported process %q", cfg.Process)
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 2 * time.Second
	}

	seen := make(map[*Task]bool, len(tasks))
	for _, t := range tasks {
		if t.Agent == nil {
			return nil, fmt.Errorf("crew: task %q has no agent", t.Name)
		}
		for _, dep := range t.Context {
			if !seen[dep] {
				return nil, fmt.Errorf("crew: task %q depends on %q which does not run before it", t.Name, dep.Name)
			}
		}
		seen[t] = true
		t.State = models.TaskStatePending
	}

	return &Crew{
		agents: agents,
		tasks:  tasks,
		cfg:    cfg,
		events: make(chan Event, len(tasks)*4+4),
	}, nil
}

// Agents returns the crew's agent set.
func (c *Crew) Agents() []*Agent { return c.agents }

// Tasks returns the crew's ordered task list.
func (c *Crew) Tasks() []*Task { return c.tasks }

// Events returns the crew's event stream. The channel is closed when
// Kickoff returns.
func (c *Crew) Events() <-chan Event { return c.events }

// Kickoff runs every task in order. On the first task failure the run
// stops: remaining tasks are marked skipped and the task error is
// returned. Completed outputs are always retained on the task list so
// a partial report can still be assembled.
func (c *Crew) Kickoff(ctx context.Context) (*Result, error) {
	defer close(c.events)

	start := time.Now()
	result := &Result{Tasks: c.tasks}

	c.emit(Event{Type: EventRunStarted, Message: fmt.Sprintf("%d tasks queued", len(c.tasks))})

	var runErr error
	for i, task := range c.tasks {
		if runErr != nil {
			task.State = models.TaskStateSkipped
			c.emit(Event{Type: EventTaskSkipped, Task: task.Name})
			continue
		}
		if c.cfg.Gate != nil {
			if err := c.cfg.Gate(ctx); err != nil {
				runErr = err
				task.State = models.TaskStateSkipped
				c.emit(Event{Type: EventTaskSkipped, Task: task.Name})
				continue
			}
		}
		if err := c.runTask(ctx, i, task); err != nil {
			runErr = fmt.Errorf("task %s: %w", task.Name, err)
		}
	}

	for _, task := range c.tasks {
		if task.State == models.TaskStateDone {
			result.Final = task.Output
		}
	}
	if ur, ok := c.cfg.Executor.(UsageReporter); ok {
		result.Usage = ur.Usage()
	}
	result.Duration = time.Since(start)

	c.emit(Event{Type: EventRunFinished, Err: runErr})
	return result, runErr
}

// runTask executes one task with retries up to the agent's MaxIter.
func (c *Crew) runTask(ctx context.Context, pos int, task *Task) error {
	task.State = models.TaskStateRunning
	c.emit(Event{
		Type:    EventTaskStarted,
		Task:    task.Name,
		Agent:   task.Agent.Role,
		Message: fmt.Sprintf("task %d/%d", pos+1, len(c.tasks)),
	})

	maxAttempts := task.Agent.MaxIter
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	start := time.Now()
	prompt := task.Prompt()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		task.Attempts = attempt
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		if attempt > 1 {
			c.emit(Event{
				Type:    EventTaskRetry,
				Task:    task.Name,
				Agent:   task.Agent.Role,
				Message: fmt.Sprintf("attempt %d/%d", attempt, maxAttempts),
			})
			if err := sleepCtx(ctx, c.cfg.RetryBackoff*time.Duration(attempt-1)); err != nil {
				lastErr = err
				break
			}
		}

		output, err := c.attempt(ctx, task.Agent, prompt)
		if err == nil {
			task.Output = output
			task.State = models.TaskStateDone
			task.Duration = time.Since(start)
			c.emit(Event{Type: EventTaskCompleted, Task: task.Name, Agent: task.Agent.Role, Output: output})
			return nil
		}
		lastErr = err
	}

	task.State = models.TaskStateFailed
	task.Duration = time.Since(start)
	task.Err = lastErr
	c.emit(Event{Type: EventTaskFailed, Task: task.Name, Agent: task.Agent.Role, Err: lastErr})
	return lastErr
}

// attempt performs a single bounded executor call.
func (c *Crew) attempt(ctx context.Context, agent *Agent, prompt string) (string, error) {
	if c.cfg.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.TaskTimeout)
		defer cancel()
	}
	return c.cfg.Executor.Execute(ctx, agent, prompt)
}

func (c *Crew) emit(e Event) {
	e.Timestamp = time.Now()
	select {
	case c.events <- e:
	default:
		// Never block execution on a slow consumer.
	}
}

// sleepCtx sleeps for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
