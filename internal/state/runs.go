package state

import (
	"database/sql"
	"fmt"

	"hoopscout/pkg/models"
)

// Run CRUD operations

// CreateRun records a new run.
func (db *DB) CreateRun(r *models.Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (id, model, status, log_file, report_file, input_tokens, output_tokens, cost, started_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Model, string(r.Status), r.LogFile, r.ReportFile,
		r.InputTokens, r.OutputTokens, r.Cost, formatTime(r.StartedAt), r.Error)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil when the run is unknown.
func (db *DB) GetRun(id string) (*models.Run, error) {
	row := db.QueryRow(`
		SELECT id, model, status, log_file, report_file, input_tokens, output_tokens, cost, started_at, finished_at, error
		FROM runs WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// UpdateRun updates a run's mutable fields.
func (db *DB) UpdateRun(r *models.Run) error {
	var finishedAt any
	if r.FinishedAt != nil {
		finishedAt = formatTime(*r.FinishedAt)
	}
	_, err := db.Exec(`
		UPDATE runs SET status = ?, log_file = ?, report_file = ?, input_tokens = ?, output_tokens = ?, cost = ?, finished_at = ?, error = ?
		WHERE id = ?
	`, string(r.Status), r.LogFile, r.ReportFile, r.InputTokens, r.OutputTokens, r.Cost, finishedAt, r.Error, r.ID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// ListRuns returns runs in reverse chronological order, optionally
// filtered by status and limited to n entries (0 for all).
func (db *DB) ListRuns(status *models.RunStatus, n int) ([]models.Run, error) {
	query := `
		SELECT id, model, status, log_file, report_file, input_tokens, output_tokens, cost, started_at, finished_at, error
		FROM runs`
	var args []any
	if status != nil {
		query += " WHERE status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY started_at DESC"
	if n > 0 {
		query += " LIMIT ?"
		args = append(args, n)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.Run, error) {
	var r models.Run
	var status, startedAt string
	var logFile, reportFile, errMsg sql.NullString
	var finishedAt sql.NullString

	err := s.Scan(&r.ID, &r.Model, &status, &logFile, &reportFile,
		&r.InputTokens, &r.OutputTokens, &r.Cost, &startedAt, &finishedAt, &errMsg)
	if err != nil {
		return nil, err
	}

	r.Status = models.RunStatus(status)
	r.LogFile = logFile.String
	r.ReportFile = reportFile.String
	r.Error = errMsg.String
	r.StartedAt, _ = parseTime(startedAt)
	r.FinishedAt = parseNullableTime(finishedAt)
	return &r, nil
}

// Task result operations

// SaveTaskResult inserts or replaces the result row for a task.
func (db *DB) SaveTaskResult(t *models.TaskRecord) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO task_results (run_id, name, position, agent_role, state, output, attempts, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.RunID, t.Name, t.Position, t.AgentRole, string(t.State), t.Output, t.Attempts, t.DurationMS, t.Error)
	if err != nil {
		return fmt.Errorf("save task result: %w", err)
	}
	return nil
}

// ListTaskResults returns a run's task results in pipeline order.
func (db *DB) ListTaskResults(runID string) ([]models.TaskRecord, error) {
	rows, err := db.Query(`
		SELECT run_id, name, position, agent_role, state, output, attempts, duration_ms, error
		FROM task_results WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list task results: %w", err)
	}
	defer rows.Close()

	var records []models.TaskRecord
	for rows.Next() {
		var t models.TaskRecord
		var state string
		var output, errMsg sql.NullString
		err := rows.Scan(&t.RunID, &t.Name, &t.Position, &t.AgentRole,
			&state, &output, &t.Attempts, &t.DurationMS, &errMsg)
		if err != nil {
			return nil, fmt.Errorf("scan task result: %w", err)
		}
		t.State = models.TaskState(state)
		t.Output = output.String
		t.Error = errMsg.String
		records = append(records, t)
	}
	return records, rows.Err()
}
