package models

import "testing"

func TestRunStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status RunStatus
		want   bool
	}{
		{"active is valid", RunStatusActive, true},
		{"completed is valid", RunStatusCompleted, true},
		{"failed is valid", RunStatusFailed, true},
		{"canceled is valid", RunStatusCanceled, true},
		{"empty string is invalid", RunStatus(""), false},
		{"unknown status is invalid", RunStatus("paused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("RunStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestTaskState_Valid(t *testing.T) {
	tests := []struct {
		name  string
		state TaskState
		want  bool
	}{
		{"pending is valid", TaskStatePending, true},
		{"running is valid", TaskStateRunning, true},
		{"done is valid", TaskStateDone, true},
		{"failed is valid", TaskStateFailed, true},
		{"skipped is valid", TaskStateSkipped, true},
		{"empty string is invalid", TaskState(""), false},
		{"typo is invalid", TaskState("donee"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Valid(); got != tt.want {
				t.Errorf("TaskState(%q).Valid() = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}
