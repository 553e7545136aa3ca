package schema

import "time"

// RunRecord represents a row from the teampulse_runs history table.
type RunRecord struct {
	RunID       int64
	StartTime   time.Time
	EndTime     *time.Time
	DurationMs  *int64
	Spaces      string
	MemberCount int
	TaskCount   int
	HealthScore float64
	Source      string
}

// RunStatus reports the state of the run-history store.
type RunStatus struct {
	Backend     string    `json:"backend"`
	Connected   bool      `json:"connected"`
	TotalRuns   int       `json:"total_runs"`
	LastRunID   int64     `json:"last_run_id"`
	LastRunTime time.Time `json:"last_run_time"`
}

// SnapshotInfo describes one stored snapshot file for listing purposes.
type SnapshotInfo struct {
	Namespace    string    `json:"namespace"`
	ScopeDate    string    `json:"scope_date"`
	GeneratedAt  time.Time `json:"generated_at"`
	IsHistorical bool      `json:"is_historical"`
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
}
