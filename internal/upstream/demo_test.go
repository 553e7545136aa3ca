package upstream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// TestDemoSource pins the fixture's deadlines to the injected clock so the
// overdue and due-soon paths stay reachable without credentials.
func TestDemoSource(t *testing.T) {
	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	demo := NewDemoSource(func() time.Time { return now })

	info, err := demo.FetchSpaceInfo(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", info.ID)

	lists, err := demo.FetchLists(context.Background(), "123")
	require.NoError(t, err)
	require.Len(t, lists, 3)

	var tasks []schema.Task
	for _, list := range lists {
		assert.NotEmpty(t, list.Description)
		listTasks, err := demo.FetchTasks(context.Background(), list.ID, nil)
		require.NoError(t, err)
		for _, task := range listTasks {
			assert.Equal(t, list.ID, task.ProjectID)
		}
		tasks = append(tasks, listTasks...)
	}
	require.Len(t, tasks, 5)

	overdue, dueSoon := 0, 0
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		if contract.IsOverdue(*task.DueDate, now) {
			overdue++
		}
		if contract.IsDueSoon(*task.DueDate, now) {
			dueSoon++
		}
	}
	assert.Equal(t, 1, overdue)
	assert.Equal(t, 1, dueSoon)
}
