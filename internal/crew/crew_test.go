package crew

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"hoopscout/pkg/models"
)

// fakeExecutor records prompts and returns scripted outputs.
type fakeExecutor struct {
	mu       sync.Mutex
	calls    []fakeCall
	outputs  map[string]string // keyed by agent role
	failures map[string]int    // role -> number of failures before success
}

type fakeCall struct {
	role   string
	prompt string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		outputs:  make(map[string]string),
		failures: make(map[string]int),
	}
}

func (f *fakeExecutor) Execute(ctx context.Context, agent *Agent, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{role: agent.Role, prompt: prompt})

	if n := f.failures[agent.Role]; n > 0 {
		f.failures[agent.Role] = n - 1
		return "", fmt.Errorf("transient error for %s", agent.Role)
	}
	if out, ok := f.outputs[agent.Role]; ok {
		return out, nil
	}
	return "output from " + agent.Role, nil
}

func (f *fakeExecutor) callRoles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var roles []string
	for _, c := range f.calls {
		roles = append(roles, c.role)
	}
	return roles
}

func testCrew(t *testing.T, tasks []*Task, exec Executor) *Crew {
	t.Helper()
	var agents []*Agent
	seen := make(map[*Agent]bool)
	for _, task := range tasks {
		if task.Agent != nil && !seen[task.Agent] {
			agents = append(agents, task.Agent)
			seen[task.Agent] = true
		}
	}
	c, err := New(agents, tasks, Config{Executor: exec, RetryBackoff: time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func drain(c *Crew) {
	go func() {
		for range c.Events() {
		}
	}()
}

func TestNew_Validation(t *testing.T) {
	agent := &Agent{Role: "Analyst", MaxIter: 1}

	t.Run("missing executor", func(t *testing.T) {
		_, err := New(nil, nil, Config{})
		if err == nil {
			t.Fatal("New() with no executor should fail")
		}
	})

	t.Run("task without agent", func(t *testing.T) {
		tasks := []*Task{{Name: "orphan"}}
		_, err := New(nil, tasks, Config{Executor: newFakeExecutor()})
		if err == nil || !strings.Contains(err.Error(), "no agent") {
			t.Fatalf("New() error = %v, want no-agent error", err)
		}
	})

	t.Run("forward context reference", func(t *testing.T) {
		later := &Task{Name: "later", Agent: agent}
		first := &Task{Name: "first", Agent: agent, Context: []*Task{later}}
		_, err := New([]*Agent{agent}, []*Task{first, later}, Config{Executor: newFakeExecutor()})
		if err == nil || !strings.Contains(err.Error(), "does not run before") {
			t.Fatalf("New() error = %v, want ordering error", err)
		}
	})

	t.Run("unsupported process", func(t *testing.T) {
		_, err := New(nil, nil, Config{Executor: newFakeExecutor(), Process: Process("parallel")})
		if err == nil {
			t.Fatal("New() with unsupported process should fail")
		}
	})
}

func TestKickoff_SequentialOrder(t *testing.T) {
	a := &Agent{Role: "First", MaxIter: 1}
	b := &Agent{Role: "Second", MaxIter: 1}
	c := &Agent{Role: "Third", MaxIter: 1}
	tasks := []*Task{
		{Name: "one", Agent: a, Description: "d1"},
		{Name: "two", Agent: b, Description: "d2"},
		{Name: "three", Agent: c, Description: "d3"},
	}
	exec := newFakeExecutor()
	cr := testCrew(t, tasks, exec)
	drain(cr)

	result, err := cr.Kickoff(context.Background())
	if err != nil {
		t.Fatalf("Kickoff() error = %v", err)
	}

	roles := exec.callRoles()
	want := []string{"First", "Second", "Third"}
	if len(roles) != len(want) {
		t.Fatalf("got %d calls, want %d", len(roles), len(want))
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, roles[i], want[i])
		}
	}
	for _, task := range result.Tasks {
		if task.State != models.TaskStateDone {
			t.Errorf("task %s state = %s, want done", task.Name, task.State)
		}
	}
	if result.Final != "output from Third" {
		t.Errorf("Final = %q, want output of last task", result.Final)
	}
}

func TestKickoff_ContextInjection(t *testing.T) {
	researcher := &Agent{Role: "Researcher", MaxIter: 1}
	analyst := &Agent{Role: "Analyst", MaxIter: 1}

	research := &Task{Name: "research", Agent: researcher, Description: "gather data"}
	analysis := &Task{Name: "analysis", Agent: analyst, Description: "analyze findings", Context: []*Task{research}}

	exec := newFakeExecutor()
	exec.outputs["Researcher"] = "KEY FINDING: the market is underserved"
	cr := testCrew(t, []*Task{research, analysis}, exec)
	drain(cr)

	if _, err := cr.Kickoff(context.Background()); err != nil {
		t.Fatalf("Kickoff() error = %v", err)
	}

	var analystPrompt string
	exec.mu.Lock()
	for _, call := range exec.calls {
		if call.role == "Analyst" {
			analystPrompt = call.prompt
		}
	}
	exec.mu.Unlock()

	if !strings.Contains(analystPrompt, "Context from earlier tasks") {
		t.Error("analyst prompt missing context header")
	}
	if !strings.Contains(analystPrompt, "KEY FINDING: the market is underserved") {
		t.Error("analyst prompt missing researcher output")
	}
	if !strings.Contains(analystPrompt, "### Output of research") {
		t.Error("analyst prompt missing context section heading")
	}
}

func TestKickoff_RetryThenSuccess(t *testing.T) {
	agent := &Agent{Role: "Flaky", MaxIter: 3}
	task := &Task{Name: "flaky_task", Agent: agent, Description: "try hard"}

	exec := newFakeExecutor()
	exec.failures["Flaky"] = 2
	cr := testCrew(t, []*Task{task}, exec)
	drain(cr)

	if _, err := cr.Kickoff(context.Background()); err != nil {
		t.Fatalf("Kickoff() error = %v", err)
	}
	if task.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", task.Attempts)
	}
	if task.State != models.TaskStateDone {
		t.Errorf("State = %s, want done", task.State)
	}
}

func TestKickoff_FailureSkipsRemaining(t *testing.T) {
	broken := &Agent{Role: "Broken", MaxIter: 2}
	healthy := &Agent{Role: "Healthy", MaxIter: 1}
	first := &Task{Name: "first", Agent: broken, Description: "will fail"}
	second := &Task{Name: "second", Agent: healthy, Description: "never runs"}

	exec := newFakeExecutor()
	exec.failures["Broken"] = 99
	cr := testCrew(t, []*Task{first, second}, exec)
	drain(cr)

	result, err := cr.Kickoff(context.Background())
	if err == nil {
		t.Fatal("Kickoff() should return the task error")
	}
	if !strings.Contains(err.Error(), "task first") {
		t.Errorf("error = %v, want it to name the failed task", err)
	}
	if first.State != models.TaskStateFailed {
		t.Errorf("first state = %s, want failed", first.State)
	}
	if second.State != models.TaskStateSkipped {
		t.Errorf("second state = %s, want skipped", second.State)
	}
	if first.Attempts != 2 {
		t.Errorf("first attempts = %d, want MaxIter (2)", first.Attempts)
	}
	// Partial results stay on the task list for the report.
	if result == nil || len(result.Tasks) != 2 {
		t.Fatal("result should still carry the full task list")
	}
}

func TestKickoff_GateStopsRun(t *testing.T) {
	agent := &Agent{Role: "Worker", MaxIter: 1}
	first := &Task{Name: "first", Agent: agent, Description: "runs"}
	second := &Task{Name: "second", Agent: agent, Description: "stopped"}

	exec := newFakeExecutor()
	calls := 0
	gate := func(ctx context.Context) error {
		calls++
		if calls > 1 {
			return fmt.Errorf("stop signal received")
		}
		return nil
	}

	cr, err := New([]*Agent{agent}, []*Task{first, second}, Config{
		Executor:     exec,
		RetryBackoff: time.Millisecond,
		Gate:         gate,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	drain(cr)

	_, err = cr.Kickoff(context.Background())
	if err == nil || !strings.Contains(err.Error(), "stop signal") {
		t.Fatalf("Kickoff() error = %v, want stop signal", err)
	}
	if first.State != models.TaskStateDone {
		t.Errorf("first state = %s, want done", first.State)
	}
	if second.State != models.TaskStateSkipped {
		t.Errorf("second state = %s, want skipped", second.State)
	}
}

func TestKickoff_ContextCanceled(t *testing.T) {
	agent := &Agent{Role: "Worker", MaxIter: 3}
	task := &Task{Name: "only", Agent: agent, Description: "canceled"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cr := testCrew(t, []*Task{task}, newFakeExecutor())
	drain(cr)

	if _, err := cr.Kickoff(ctx); err == nil {
		t.Fatal("Kickoff() with canceled context should fail")
	}
	if task.State != models.TaskStateFailed {
		t.Errorf("state = %s, want failed", task.State)
	}
	if task.Attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retries after cancel)", task.Attempts)
	}
}

func TestKickoff_Events(t *testing.T) {
	agent := &Agent{Role: "Worker", MaxIter: 1}
	task := &Task{Name: "only", Agent: agent, Description: "emit"}

	cr := testCrew(t, []*Task{task}, newFakeExecutor())

	done := make(chan struct{})
	var types []EventType
	go func() {
		defer close(done)
		for ev := range cr.Events() {
			types = append(types, ev.Type)
		}
	}()

	if _, err := cr.Kickoff(context.Background()); err != nil {
		t.Fatalf("Kickoff() error = %v", err)
	}
	<-done

	want := []EventType{EventRunStarted, EventTaskStarted, EventTaskCompleted, EventRunFinished}
	if len(types) != len(want) {
		t.Fatalf("got %d events (%v), want %d", len(types), types, len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestTask_Prompt(t *testing.T) {
	dep := &Task{Name: "dep", Output: "dep output"}
	empty := &Task{Name: "empty"}
	task := &Task{
		Name:           "main",
		Description:    "do the thing",
		ExpectedOutput: "a thing, done",
		Context:        []*Task{dep, empty},
	}

	got := task.Prompt()
	if !strings.HasPrefix(got, "do the thing") {
		t.Errorf("prompt should start with the description, got %q", got)
	}
	if !strings.Contains(got, "Expected output: a thing, done") {
		t.Error("prompt missing expected output line")
	}
	if !strings.Contains(got, "### Output of dep") {
		t.Error("prompt missing dep context")
	}
	if strings.Contains(got, "### Output of empty") {
		t.Error("prompt should skip context tasks with no output")
	}
}

func TestAgent_Name(t *testing.T) {
	a := &Agent{Role: "Market Research Analyst"}
	if got := a.Name(); got != "market_research_analyst" {
		t.Errorf("Name() = %q", got)
	}
}
