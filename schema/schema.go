// Package schema has configs, models and shared types for all parts of teampulse.
package schema

import "time"

// Task represents a single task record fetched from the upstream
// project-management API, normalized into closed status and priority sets.
// Tasks are immutable once fetched within a single analysis run.
type Task struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Status          TaskStatus    `json:"status"`
	Priority        PriorityLevel `json:"priority"`
	Assignees       []string      `json:"assignees"`
	DueDate         *time.Time    `json:"due_date,omitempty"`
	EstimateMinutes int           `json:"estimate_minutes"`
	SpentMinutes    int           `json:"spent_minutes"`
	ProjectID       string        `json:"project_id"`
	ProjectName     string        `json:"project_name"`
}

// TaskSummary is a compact view of a task kept on each MemberWorkload
// for UI drill-down.
type TaskSummary struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Status      TaskStatus    `json:"status"`
	Priority    PriorityLevel `json:"priority"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	ProjectName string        `json:"project_name"`
}

// SpaceInfo describes one organizational space of the upstream system.
type SpaceInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Private bool   `json:"private"`
}

// TaskList is a list (or folder-nested list) of tasks inside a space. The
// Description carries the upstream list content, which becomes the project
// description for tasks that resolve to this list.
type TaskList struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SpaceID     string `json:"space_id"`
	TaskCount   int    `json:"task_count"`
	Archived    bool   `json:"archived"`
}

// ProjectAnalytics aggregates task-level facts for a single project.
// The Description field is the input to the complexity weighter.
type ProjectAnalytics struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	TaskCount       int           `json:"task_count"`
	Members         []string      `json:"members"`
	EstimateMinutes int           `json:"estimate_minutes"`
	EarliestDue     *time.Time    `json:"earliest_due,omitempty"`
	Priority        PriorityLevel `json:"priority"`
}

// ComplexityWeight is a per-project complexity assessment produced once per
// analysis run and applied multiplicatively to per-member metrics.
type ComplexityWeight struct {
	ProjectID   string       `json:"project_id"`
	Score       int          `json:"score"` // 1-10
	Level       string       `json:"level"`
	Explanation string       `json:"explanation"`
	Method      WeightMethod `json:"method"`
}

// ComplexityLevel maps a 1-10 complexity score to a coarse label.
func ComplexityLevel(score int) string {
	switch {
	case score >= 8:
		return "very high"
	case score >= 6:
		return "high"
	case score >= 4:
		return "medium"
	default:
		return "low"
	}
}
