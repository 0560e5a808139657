package models

import "time"

// RunStatus represents the current state of a research run.
type RunStatus string

const (
	// RunStatusActive indicates the run is executing tasks.
	RunStatusActive RunStatus = "active"
	// RunStatusCompleted indicates every task finished successfully.
	RunStatusCompleted RunStatus = "completed"
	// RunStatusFailed indicates the run stopped on a task failure.
	RunStatusFailed RunStatus = "failed"
	// RunStatusCanceled indicates the run was interrupted by the user.
	RunStatusCanceled RunStatus = "canceled"
)

// Valid returns true if the status is a known value.
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusActive, RunStatusCompleted, RunStatusFailed, RunStatusCanceled:
		return true
	default:
		return false
	}
}

// TaskState represents the current state of a single crew task.
type TaskState string

const (
	// TaskStatePending indicates the task has not started.
	TaskStatePending TaskState = "pending"
	// TaskStateRunning indicates the task is executing.
	TaskStateRunning TaskState = "running"
	// TaskStateDone indicates the task produced an output.
	TaskStateDone TaskState = "done"
	// TaskStateFailed indicates the task exhausted its attempts.
	TaskStateFailed TaskState = "failed"
	// TaskStateSkipped indicates the run stopped before this task ran.
	TaskStateSkipped TaskState = "skipped"
)

// Valid returns true if the state is a known value.
func (s TaskState) Valid() bool {
	switch s {
	case TaskStatePending, TaskStateRunning, TaskStateDone, TaskStateFailed, TaskStateSkipped:
		return true
	default:
		return false
	}
}

// Run records one execution of the research crew.
type Run struct {
	// ID is the unique identifier for this run.
	ID string `json:"id"`
	// Model is the model identifier the run used.
	Model string `json:"model"`
	// Status is the current state of the run.
	Status RunStatus `json:"status"`
	// LogFile is the path to the full console capture file.
	LogFile string `json:"log_file,omitempty"`
	// ReportFile is the path to the assembled Markdown report.
	ReportFile string `json:"report_file,omitempty"`
	// InputTokens is the total API input tokens consumed.
	InputTokens int64 `json:"input_tokens"`
	// OutputTokens is the total API output tokens consumed.
	OutputTokens int64 `json:"output_tokens"`
	// Cost is the estimated cost in dollars for this run.
	Cost float64 `json:"cost"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the run ended, if it has.
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	// Error contains the failure message if the run failed.
	Error string `json:"error,omitempty"`
}

// TaskRecord records the outcome of one task within a run.
type TaskRecord struct {
	// RunID is the run this record belongs to.
	RunID string `json:"run_id"`
	// Name is the task's registry name (e.g. "market_research").
	Name string `json:"name"`
	// Position is the task's zero-based position in the sequence.
	Position int `json:"position"`
	// AgentRole is the role of the agent that executed the task.
	AgentRole string `json:"agent_role"`
	// State is the final state of the task.
	State TaskState `json:"state"`
	// Output is the captured task output, if any.
	Output string `json:"output,omitempty"`
	// Attempts is the number of execution attempts made.
	Attempts int `json:"attempts"`
	// DurationMS is the wall-clock task duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`
	// Error contains the failure message if the task failed.
	Error string `json:"error,omitempty"`
}
