package crew

import "time"

// EventType identifies a crew lifecycle event.
type EventType string

const (
	EventRunStarted    EventType = "run_started"
	EventTaskStarted   EventType = "task_started"
	EventTaskRetry     EventType = "task_retry"
	EventTaskCompleted EventType = "task_completed"
	EventTaskFailed    EventType = "task_failed"
	EventTaskSkipped   EventType = "task_skipped"
	EventRunFinished   EventType = "run_finished"
)

// Event is emitted on the crew's event channel as the run progresses.
// Consumers (the TUI, the headless printer) must drain the channel;
// emission never blocks and excess events are dropped.
type Event struct {
	// Type identifies the lifecycle transition.
	Type EventType
	// Task is the task name, when the event concerns a task.
	Task string
	// Agent is the executing agent's role, when applicable.
	Agent string
	// Message carries free-form progress detail.
	Message string
	// Output carries the task output on EventTaskCompleted.
	Output string
	// Err carries the failure on EventTaskFailed and EventRunFinished.
	Err error
	// Timestamp is when the event was emitted.
	Timestamp time.Time
}
