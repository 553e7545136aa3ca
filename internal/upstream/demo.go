package upstream

import (
	"context"
	"fmt"
	"time"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// DemoSource is a deterministic in-memory task source used when the real
// upstream rejects the session. It keeps the pipeline, renderers and tests
// exercising the full result shape without credentials.
type DemoSource struct {
	now func() time.Time
}

var _ contract.TaskSource = (*DemoSource)(nil)

// NewDemoSource creates a demo source; now may be nil for wall-clock time.
func NewDemoSource(now func() time.Time) *DemoSource {
	if now == nil {
		now = time.Now
	}
	return &DemoSource{now: now}
}

// FetchSpaceInfo returns a synthetic space derived from the requested id.
func (d *DemoSource) FetchSpaceInfo(_ context.Context, spaceID string) (schema.SpaceInfo, error) {
	return schema.SpaceInfo{
		ID:   spaceID,
		Name: fmt.Sprintf("Demo Space %s", spaceID),
	}, nil
}

// FetchLists returns one synthetic list per demo project, each with a
// description the complexity weighter can read.
func (d *DemoSource) FetchLists(_ context.Context, spaceID string) ([]schema.TaskList, error) {
	return []schema.TaskList{
		{
			ID:          "demo-proj-web",
			Name:        "Web Platform",
			Description: "Customer-facing storefront with realtime checkout and payment infrastructure",
			SpaceID:     spaceID,
			TaskCount:   2,
		},
		{
			ID:          "demo-proj-ops",
			Name:        "Operations",
			Description: "Internal tooling and build infrastructure upkeep",
			SpaceID:     spaceID,
			TaskCount:   2,
		},
		{
			ID:          "demo-proj-docs",
			Name:        "Documentation",
			Description: "Small onboarding and reference docs refresh",
			SpaceID:     spaceID,
			TaskCount:   1,
		},
	}, nil
}

// FetchTasks returns the fixed tasks of one demo list with due dates pinned
// relative to the current day so timeline and due-soon behavior stays
// observable. Demo tasks resolve their project through the containing list.
func (d *DemoSource) FetchTasks(_ context.Context, listID string, _ []string) ([]schema.Task, error) {
	now := d.now()
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)
	yesterday := now.AddDate(0, 0, -1)

	all := []schema.Task{
		{
			ID:              "demo-proj-web-t1",
			Name:            "Ship checkout redesign",
			Status:          schema.StatusInProgress,
			Priority:        schema.PriorityUrgent,
			Assignees:       []string{"alice"},
			DueDate:         &tomorrow,
			EstimateMinutes: 480,
			SpentMinutes:    300,
			ProjectID:       "demo-proj-web",
			ProjectName:     "Web Platform",
		},
		{
			ID:              "demo-proj-web-t2",
			Name:            "Fix payment webhook retries",
			Status:          schema.StatusOpen,
			Priority:        schema.PriorityHigh,
			Assignees:       []string{"alice"},
			DueDate:         &yesterday,
			EstimateMinutes: 240,
			SpentMinutes:    60,
			ProjectID:       "demo-proj-web",
			ProjectName:     "Web Platform",
		},
		{
			ID:              "demo-proj-ops-t1",
			Name:            "Draft Q3 capacity plan",
			Status:          schema.StatusReview,
			Priority:        schema.PriorityNormal,
			Assignees:       []string{"bob"},
			DueDate:         &nextWeek,
			EstimateMinutes: 120,
			SpentMinutes:    90,
			ProjectID:       "demo-proj-ops",
			ProjectName:     "Operations",
		},
		{
			ID:              "demo-proj-ops-t2",
			Name:            "Upgrade build runners",
			Status:          schema.StatusBlocked,
			Priority:        schema.PriorityNormal,
			Assignees:       []string{"bob", "carol"},
			EstimateMinutes: 360,
			ProjectID:       "demo-proj-ops",
			ProjectName:     "Operations",
		},
		{
			ID:              "demo-proj-docs-t1",
			Name:            "Write onboarding docs",
			Status:          schema.StatusOpen,
			Priority:        schema.PriorityNone,
			Assignees:       []string{"carol"},
			DueDate:         &nextWeek,
			EstimateMinutes: 180,
			SpentMinutes:    30,
			ProjectID:       "demo-proj-docs",
			ProjectName:     "Documentation",
		},
	}

	var out []schema.Task
	for _, task := range all {
		if task.ProjectID == listID {
			out = append(out, task)
		}
	}
	return out, nil
}
