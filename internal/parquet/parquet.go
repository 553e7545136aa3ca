// Package parquet exports workload results and run history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"teampulse/schema"
)

// MemberRow is the Parquet projection of one member's workload.
type MemberRow struct {
	// Username is the member's upstream identity
	Username string `parquet:"username,snappy"`

	// ActiveTasks is the count of tasks in an active status
	ActiveTasks int32 `parquet:"active_tasks,snappy"`

	// UrgentTasks is the count of urgent-priority active tasks
	UrgentTasks int32 `parquet:"urgent_tasks,snappy"`

	// HighPriorityTasks is the count of high-priority active tasks
	HighPriorityTasks int32 `parquet:"high_priority_tasks,snappy"`

	// DueSoonTasks is the count of active tasks due within the window
	DueSoonTasks int32 `parquet:"due_soon_tasks,snappy"`

	// EstimateMinutes is the summed task estimate in minutes
	EstimateMinutes int32 `parquet:"estimate_minutes,snappy"`

	// SpentMinutes is the summed logged time in minutes
	SpentMinutes int32 `parquet:"spent_minutes,snappy"`

	// WorkloadScore is the complexity-weighted score
	WorkloadScore float64 `parquet:"workload_score,snappy"`

	// BaseScore is the unweighted score
	BaseScore float64 `parquet:"base_score,snappy"`

	// Status is the workload band label
	Status string `parquet:"status,snappy"`

	// ProjectsCount is the number of distinct projects touched
	ProjectsCount int32 `parquet:"projects_count,snappy"`

	// ScopeDate is the analysis scope date (YYYY-MM-DD)
	ScopeDate string `parquet:"scope_date,snappy"`

	// GeneratedAt is when the result was produced
	GeneratedAt time.Time `parquet:"generated_at,snappy"`
}

// RunRow is the Parquet projection of one run-history record.
type RunRow struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// DurationMs is the run duration in milliseconds (nullable)
	DurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// Spaces is the comma-joined list of analyzed space ids
	Spaces string `parquet:"spaces,snappy"`

	// MemberCount is the number of members in the result
	MemberCount int32 `parquet:"member_count,snappy"`

	// TaskCount is the number of active tasks in the result
	TaskCount int32 `parquet:"task_count,snappy"`

	// HealthScore is the team health score of the result
	HealthScore float64 `parquet:"health_score,snappy"`

	// Source records how the result was obtained (fresh, cache, demo)
	Source string `parquet:"source,snappy"`
}

// WriteMemberRowsParquet writes member workload rows to a Parquet file.
func WriteMemberRowsParquet(data []MemberRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteRunRowsParquet writes run-history rows to a Parquet file.
func WriteRunRowsParquet(data []RunRow, outputPath string) error {
	return writeRows(data, outputPath)
}

func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the row struct tags.
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertMembers flattens an analysis result into Parquet member rows,
// ordered by descending workload score.
func ConvertMembers(result *schema.AnalysisResult) []MemberRow {
	rows := make([]MemberRow, 0, len(result.Members))
	for _, m := range result.SortedMembers() {
		rows = append(rows, MemberRow{
			Username:          m.Username,
			ActiveTasks:       int32(m.ActiveTasks),
			UrgentTasks:       int32(m.UrgentTasks),
			HighPriorityTasks: int32(m.HighPriorityTasks),
			DueSoonTasks:      int32(m.DueSoonTasks),
			EstimateMinutes:   int32(m.EstimateMinutes),
			SpentMinutes:      int32(m.SpentMinutes),
			WorkloadScore:     m.WorkloadScore,
			BaseScore:         m.BaseScore,
			Status:            string(m.Status),
			ProjectsCount:     int32(m.ProjectsCount),
			ScopeDate:         result.ScopeDate,
			GeneratedAt:       result.GeneratedAt,
		})
	}
	return rows
}

// ConvertRunRecords converts run-history records to Parquet rows.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	rows := make([]RunRow, len(records))
	for i, r := range records {
		rows[i] = RunRow{
			RunID:       r.RunID,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			DurationMs:  r.DurationMs,
			Spaces:      r.Spaces,
			MemberCount: int32(r.MemberCount),
			TaskCount:   int32(r.TaskCount),
			HealthScore: r.HealthScore,
			Source:      r.Source,
		}
	}
	return rows
}
