package core

import (
	"sort"
	"time"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// BuildTimeline derives deadline analysis from a run's active tasks: urgent
// tasks, tasks due within the window, overdue tasks, and a per-member
// pressure count (due-soon plus overdue).
func BuildTimeline(tasks []schema.Task, now time.Time) schema.TimelineAnalysis {
	tl := schema.TimelineAnalysis{
		DeadlinePressure: make(map[string]int),
	}

	for _, task := range tasks {
		if !schema.IsActiveStatus(task.Status) {
			continue
		}
		summary := schema.TaskSummary{
			ID:          task.ID,
			Name:        task.Name,
			Status:      task.Status,
			Priority:    task.Priority,
			DueDate:     task.DueDate,
			ProjectName: task.ProjectName,
		}

		if task.Priority == schema.PriorityUrgent {
			tl.UrgentTasks = append(tl.UrgentTasks, summary)
		}
		if task.DueDate == nil {
			continue
		}
		switch {
		case contract.IsOverdue(*task.DueDate, now):
			tl.OverdueTasks = append(tl.OverdueTasks, summary)
			addPressure(tl.DeadlinePressure, task.Assignees)
		case contract.IsDueSoon(*task.DueDate, now):
			tl.UpcomingTasks = append(tl.UpcomingTasks, summary)
			addPressure(tl.DeadlinePressure, task.Assignees)
		}
	}

	sortByDue(tl.OverdueTasks)
	sortByDue(tl.UpcomingTasks)
	return tl
}

// mergeTimelines concatenates the task lists and sums per-member pressure.
func mergeTimelines(a, b schema.TimelineAnalysis) schema.TimelineAnalysis {
	merged := schema.TimelineAnalysis{
		DeadlinePressure: make(map[string]int, len(a.DeadlinePressure)+len(b.DeadlinePressure)),
	}
	merged.UrgentTasks = append(merged.UrgentTasks, a.UrgentTasks...)
	merged.UrgentTasks = append(merged.UrgentTasks, b.UrgentTasks...)
	merged.UpcomingTasks = append(merged.UpcomingTasks, a.UpcomingTasks...)
	merged.UpcomingTasks = append(merged.UpcomingTasks, b.UpcomingTasks...)
	merged.OverdueTasks = append(merged.OverdueTasks, a.OverdueTasks...)
	merged.OverdueTasks = append(merged.OverdueTasks, b.OverdueTasks...)
	for member, n := range a.DeadlinePressure {
		merged.DeadlinePressure[member] += n
	}
	for member, n := range b.DeadlinePressure {
		merged.DeadlinePressure[member] += n
	}
	sortByDue(merged.OverdueTasks)
	sortByDue(merged.UpcomingTasks)
	return merged
}

func addPressure(pressure map[string]int, assignees []string) {
	for _, username := range assignees {
		pressure[username]++
	}
}

func sortByDue(tasks []schema.TaskSummary) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
