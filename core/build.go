package core

import (
	"sort"
	"time"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// spaceAnalysis holds the scored output of one space before aggregation.
type spaceAnalysis struct {
	spaceID  string
	members  map[string]*schema.MemberWorkload
	projects map[string]schema.ProjectAnalytics
	weights  map[string]schema.ComplexityWeight
	tasks    []schema.Task
}

// buildMembers folds a space's tasks into per-member workloads and scores
// them. Unassigned tasks contribute to project analytics but to no member.
func buildMembers(tasks []schema.Task, now time.Time) map[string]*schema.MemberWorkload {
	members := make(map[string]*schema.MemberWorkload)

	for _, task := range tasks {
		if !schema.IsActiveStatus(task.Status) {
			continue
		}
		for _, username := range task.Assignees {
			mw, ok := members[username]
			if !ok {
				mw = &schema.MemberWorkload{
					Username:     username,
					ProjectTerms: make(map[string]schema.TermCounts),
				}
				members[username] = mw
			}
			addTaskToMember(mw, task, now)
		}
	}

	for _, mw := range members {
		finalizeProjects(mw)
		ScoreMember(mw)
	}
	return members
}

// addTaskToMember accumulates one active task into a member's counts, both
// the overall totals and the per-project terms the weighter consumes.
func addTaskToMember(mw *schema.MemberWorkload, task schema.Task, now time.Time) {
	terms := schema.TermCounts{Active: 1}
	mw.ActiveTasks++

	switch task.Priority {
	case schema.PriorityUrgent:
		mw.UrgentTasks++
		terms.Urgent = 1
	case schema.PriorityHigh:
		mw.HighPriorityTasks++
		terms.HighPriority = 1
	}

	if task.DueDate != nil && contract.IsDueSoon(*task.DueDate, now) {
		mw.DueSoonTasks++
		terms.DueSoon = 1
	}

	mw.EstimateMinutes += task.EstimateMinutes
	mw.SpentMinutes += task.SpentMinutes

	mw.ProjectTerms[task.ProjectID] = mw.ProjectTerms[task.ProjectID].Add(terms)
	mw.Tasks = append(mw.Tasks, schema.TaskSummary{
		ID:          task.ID,
		Name:        task.Name,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		ProjectName: task.ProjectName,
	})
	mw.Projects = appendDistinct(mw.Projects, task.ProjectName)
}

// finalizeProjects sorts the project list and recounts distinct names.
func finalizeProjects(mw *schema.MemberWorkload) {
	sort.Strings(mw.Projects)
	mw.ProjectsCount = len(mw.Projects)
}

// buildProjects folds a space's tasks into per-project analytics. All tasks
// count here, active or not, so totals reflect the full project. Descriptions
// come from the containing list, keyed by list id; projects with an explicit
// upstream link and no matching list keep an empty description.
func buildProjects(tasks []schema.Task, descriptions map[string]string) map[string]schema.ProjectAnalytics {
	projects := make(map[string]schema.ProjectAnalytics)

	for _, task := range tasks {
		p, ok := projects[task.ProjectID]
		if !ok {
			p = schema.ProjectAnalytics{
				ID:          task.ProjectID,
				Name:        task.ProjectName,
				Description: descriptions[task.ProjectID],
				Priority:    schema.PriorityNone,
			}
		}
		p.TaskCount++
		p.EstimateMinutes += task.EstimateMinutes
		for _, username := range task.Assignees {
			p.Members = appendDistinct(p.Members, username)
		}
		if task.DueDate != nil && (p.EarliestDue == nil || task.DueDate.Before(*p.EarliestDue)) {
			due := *task.DueDate
			p.EarliestDue = &due
		}
		if priorityRank(task.Priority) > priorityRank(p.Priority) {
			p.Priority = task.Priority
		}
		projects[task.ProjectID] = p
	}

	for id, p := range projects {
		sort.Strings(p.Members)
		projects[id] = p
	}
	return projects
}

// priorityRank orders priorities for the project-level classification.
func priorityRank(p schema.PriorityLevel) int {
	switch p {
	case schema.PriorityUrgent:
		return 3
	case schema.PriorityHigh:
		return 2
	case schema.PriorityNormal:
		return 1
	default:
		return 0
	}
}

func appendDistinct(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
