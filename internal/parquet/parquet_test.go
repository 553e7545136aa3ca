package parquet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teampulse/schema"
)

// TestConvertMembers orders rows by descending score and carries provenance.
func TestConvertMembers(t *testing.T) {
	generated := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	result := &schema.AnalysisResult{
		Members: map[string]*schema.MemberWorkload{
			"alice": {Username: "alice", ActiveTasks: 5, WorkloadScore: 145, BaseScore: 120, Status: schema.WorkloadHigh},
			"bob":   {Username: "bob", ActiveTasks: 2, WorkloadScore: 20, BaseScore: 20, Status: schema.WorkloadLight},
		},
		ScopeDate:   "2026-03-10",
		GeneratedAt: generated,
	}

	rows := ConvertMembers(result)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, int32(5), rows[0].ActiveTasks)
	assert.Equal(t, 145.0, rows[0].WorkloadScore)
	assert.Equal(t, 120.0, rows[0].BaseScore)
	assert.Equal(t, "high", rows[0].Status)
	assert.Equal(t, "2026-03-10", rows[0].ScopeDate)
	assert.True(t, rows[0].GeneratedAt.Equal(generated))
	assert.Equal(t, "bob", rows[1].Username)
}

// TestConvertRunRecords preserves nullable completion fields.
func TestConvertRunRecords(t *testing.T) {
	start := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	durationMs := int64(2000)

	rows := ConvertRunRecords([]schema.RunRecord{
		{RunID: 1, StartTime: start, EndTime: &end, DurationMs: &durationMs, Spaces: "123", MemberCount: 3, HealthScore: 87.5, Source: "fresh"},
		{RunID: 2, StartTime: start, Spaces: "123"},
	})
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].RunID)
	require.NotNil(t, rows[0].EndTime)
	assert.Equal(t, int64(2000), *rows[0].DurationMs)
	assert.Equal(t, int32(3), rows[0].MemberCount)

	assert.Nil(t, rows[1].EndTime)
	assert.Nil(t, rows[1].DurationMs)
}

// TestWriteMemberRowsParquet writes a readable file.
func TestWriteMemberRowsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.parquet")
	rows := []MemberRow{{Username: "alice", ActiveTasks: 3, WorkloadScore: 30, Status: "light", ScopeDate: "2026-03-10"}}

	require.NoError(t, WriteMemberRowsParquet(rows, path))
	assert.FileExists(t, path)
}
