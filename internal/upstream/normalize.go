package upstream

import (
	"strconv"
	"strings"
	"time"

	"teampulse/schema"
)

// Wire types for the upstream JSON payloads. Only the fields the pipeline
// consumes are declared; unknown fields are ignored by the decoder.

type rawSpace struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Private bool   `json:"private"`
}

type rawListPage struct {
	Lists []rawList `json:"lists"`
}

type rawFolderPage struct {
	Folders []rawFolder `json:"folders"`
}

type rawFolder struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Lists []rawList `json:"lists"`
}

type rawList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"` // free-form list description
	TaskCount int    `json:"task_count"`
	Archived  bool   `json:"archived"`
}

type rawTaskPage struct {
	Tasks    []rawTask `json:"tasks"`
	LastPage bool      `json:"last_page"`
}

type rawTask struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Status    rawStatusRef    `json:"status"`
	Priority  *rawPriorityRef `json:"priority"`
	Assignees []rawAssignee   `json:"assignees"`
	DueDate   string          `json:"due_date"`      // epoch millis as string, may be empty
	Estimate  int64           `json:"time_estimate"` // milliseconds
	Spent     int64           `json:"time_spent"`    // milliseconds
	List      rawListRef      `json:"list"`
	Project   rawProjectRef   `json:"project"`
}

type rawStatusRef struct {
	Status string `json:"status"`
}

type rawPriorityRef struct {
	Priority string `json:"priority"`
}

type rawAssignee struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type rawListRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func normalizeSpace(raw rawSpace) schema.SpaceInfo {
	return schema.SpaceInfo{ID: raw.ID, Name: raw.Name, Private: raw.Private}
}

func normalizeList(raw rawList, spaceID string) schema.TaskList {
	return schema.TaskList{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: strings.TrimSpace(raw.Content),
		SpaceID:     spaceID,
		TaskCount:   raw.TaskCount,
		Archived:    raw.Archived,
	}
}

// normalizeTask converts a wire task into the internal model: statuses and
// priorities collapse into their closed sets, durations convert from
// milliseconds to minutes, and the project falls back to the containing list
// when the upstream record has no project link.
func normalizeTask(raw rawTask) schema.Task {
	task := schema.Task{
		ID:              raw.ID,
		Name:            raw.Name,
		Status:          schema.NormalizeStatus(raw.Status.Status),
		EstimateMinutes: int(raw.Estimate / 60000),
		SpentMinutes:    int(raw.Spent / 60000),
		ProjectID:       raw.Project.ID,
		ProjectName:     raw.Project.Name,
	}

	if raw.Priority != nil {
		task.Priority = schema.NormalizePriority(raw.Priority.Priority)
	} else {
		task.Priority = schema.PriorityNone
	}

	for _, a := range raw.Assignees {
		name := a.Username
		if name == "" {
			name = a.Email
		}
		if name != "" {
			task.Assignees = append(task.Assignees, name)
		}
	}

	if due := parseEpochMillis(raw.DueDate); due != nil {
		task.DueDate = due
	}

	if task.ProjectID == "" {
		task.ProjectID = raw.List.ID
		task.ProjectName = raw.List.Name
	}
	return task
}

// parseEpochMillis converts the upstream's string epoch-millisecond timestamps.
func parseEpochMillis(s string) *time.Time {
	if s == "" {
		return nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms)
	return &t
}
