package upstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teampulse/schema"
)

// TestNormalizeTask converts the wire representation into the internal model.
func TestNormalizeTask(t *testing.T) {
	raw := rawTask{
		ID:       "t1",
		Name:     "Ship feature",
		Status:   rawStatusRef{Status: "In Progress"},
		Priority: &rawPriorityRef{Priority: "urgent"},
		Assignees: []rawAssignee{
			{Username: "alice"},
			{Email: "bob@example.com"},
			{},
		},
		DueDate:  "1767952800000",
		Estimate: 7_200_000,
		Spent:    1_800_000,
		List:     rawListRef{ID: "l1", Name: "Sprint 12"},
		Project:  rawProjectRef{ID: "p1", Name: "Web Platform"},
	}

	task := normalizeTask(raw)
	assert.Equal(t, schema.StatusInProgress, task.Status)
	assert.Equal(t, schema.PriorityUrgent, task.Priority)
	assert.Equal(t, []string{"alice", "bob@example.com"}, task.Assignees)
	assert.Equal(t, 120, task.EstimateMinutes)
	assert.Equal(t, 30, task.SpentMinutes)
	assert.Equal(t, "p1", task.ProjectID)
	assert.Equal(t, "Web Platform", task.ProjectName)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, int64(1767952800000), task.DueDate.UnixMilli())
}

// TestNormalizeTaskDefaults covers absent optional fields.
func TestNormalizeTaskDefaults(t *testing.T) {
	raw := rawTask{
		ID:     "t2",
		Name:   "Loose end",
		Status: rawStatusRef{Status: "someday maybe"},
		List:   rawListRef{ID: "l1", Name: "Backlog"},
	}

	task := normalizeTask(raw)
	assert.Equal(t, schema.StatusUnknown, task.Status)
	assert.Equal(t, schema.PriorityNone, task.Priority)
	assert.Empty(t, task.Assignees)
	assert.Nil(t, task.DueDate)
	assert.Zero(t, task.EstimateMinutes)

	// No project link: the containing list stands in.
	assert.Equal(t, "l1", task.ProjectID)
	assert.Equal(t, "Backlog", task.ProjectName)
}

// TestParseEpochMillis rejects empty, malformed and non-positive values.
func TestParseEpochMillis(t *testing.T) {
	ts := parseEpochMillis("1767952800000")
	require.NotNil(t, ts)
	assert.Equal(t, time.UnixMilli(1767952800000).Unix(), ts.Unix())

	assert.Nil(t, parseEpochMillis(""))
	assert.Nil(t, parseEpochMillis("soon"))
	assert.Nil(t, parseEpochMillis("-5"))
	assert.Nil(t, parseEpochMillis("0"))
}

// TestIsExcludedName matches case-insensitively on substring.
func TestIsExcludedName(t *testing.T) {
	excludes := []string{"template", " Archive "}

	assert.True(t, isExcludedName("Sprint Template", excludes))
	assert.True(t, isExcludedName("ARCHIVED 2025", excludes))
	assert.False(t, isExcludedName("Sprint 12", excludes))
	assert.False(t, isExcludedName("Sprint 12", nil))
}

// TestMatchesStatusFilter is case-insensitive and open when empty.
func TestMatchesStatusFilter(t *testing.T) {
	filter := []string{"open", "In Progress"}

	assert.True(t, matchesStatusFilter("OPEN", filter))
	assert.True(t, matchesStatusFilter("in progress", filter))
	assert.False(t, matchesStatusFilter("done", filter))
	assert.True(t, matchesStatusFilter("anything", nil))
}
