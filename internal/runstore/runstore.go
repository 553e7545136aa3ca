// Package runstore tracks completed analysis runs in an embedded SQLite
// database for the runs status and export commands.
package runstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"teampulse/internal/contract"
	"teampulse/schema"
)

const runsTable = "teampulse_runs"

// StoreImpl implements the RunStore interface over SQLite. A nil db means
// tracking is disabled and every method is a no-op.
type StoreImpl struct {
	db *sql.DB
}

var _ contract.RunStore = &StoreImpl{} // Compile-time check

// NewStore opens (or creates) the run-history database at dbPath. An empty
// path returns a disabled no-op store.
func NewStore(dbPath string) (contract.RunStore, error) {
	if dbPath == "" {
		return &StoreImpl{db: nil}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	createQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id INTEGER PRIMARY KEY AUTOINCREMENT,
			start_time TEXT NOT NULL,
			end_time TEXT,
			run_duration_ms INTEGER,
			spaces TEXT NOT NULL,
			member_count INTEGER,
			task_count INTEGER,
			health_score REAL,
			source TEXT
		);
	`, runsTable)
	if _, err := db.Exec(createQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}

	return &StoreImpl{db: db}, nil
}

// BeginRun creates a new run row and returns its unique ID.
func (rs *StoreImpl) BeginRun(startTime time.Time, spaces []string) (int64, error) {
	if rs.db == nil {
		return 0, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (start_time, spaces) VALUES (?, ?)`, runsTable)
	result, err := rs.db.Exec(query, startTime.Format(time.RFC3339Nano), strings.Join(spaces, ","))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return runID, nil
}

// EndRun updates the run row with completion data derived from the result.
func (rs *StoreImpl) EndRun(runID int64, endTime time.Time, result *schema.AnalysisResult) error {
	if rs.db == nil {
		return nil
	}

	var startTimeStr string
	selectQuery := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, runsTable)
	if err := rs.db.QueryRow(selectQuery, runID).Scan(&startTimeStr); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	taskCount := 0
	for _, m := range result.Members {
		taskCount += m.ActiveTasks
	}

	updateQuery := fmt.Sprintf(`
		UPDATE %s SET end_time = ?, run_duration_ms = ?, member_count = ?, task_count = ?, health_score = ?, source = ?
		WHERE run_id = ?`, runsTable)
	_, err = rs.db.Exec(updateQuery,
		endTime.Format(time.RFC3339Nano), durationMs,
		len(result.Members), taskCount, result.Overview.HealthScore, string(result.Source), runID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *StoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:   "sqlite",
		Connected: rs.db != nil,
	}
	if rs.db == nil {
		status.Backend = "none"
		return status, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)
	if err := rs.db.QueryRow(countQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		var lastRunTimeStr string
		if err := rs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime
	}
	return status, nil
}

// GetAllRuns retrieves all run records, oldest first.
func (rs *StoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, spaces,
		COALESCE(member_count, 0), COALESCE(task_count, 0), COALESCE(health_score, 0), COALESCE(source, '')
		FROM %s ORDER BY run_id`, runsTable)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var startTimeStr string
		var endTimeStr *string
		if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.DurationMs,
			&record.Spaces, &record.MemberCount, &record.TaskCount, &record.HealthScore, &record.Source); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		record.StartTime = startTime
		if endTimeStr != nil {
			endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (rs *StoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}
