package core

import (
	"fmt"

	"teampulse/schema"
)

// Recommendation rule types.
const (
	recOverloaded   = "overloaded"
	recHighLoad     = "high_load"
	recUrgent       = "urgent_tasks"
	recDueSoon      = "due_soon"
	recTimeOverrun  = "time_overrun"
	recRedistribute = "redistribute_urgent"
	recSprintPlan   = "sprint_planning"
	recImbalance    = "load_imbalance"
	recOverdue      = "overdue_tasks"
)

// Score spread beyond which the team is flagged as imbalanced.
const imbalanceSpread = 100.0

// BuildRecommendations evaluates the fixed rule list: five per-member rules
// in order, then the team-wide rules. Each rule emits at most one
// recommendation and rules never deduplicate against each other.
func BuildRecommendations(result *schema.AnalysisResult) []schema.Recommendation {
	var recs []schema.Recommendation

	for _, mw := range result.SortedMembers() {
		recs = append(recs, memberRecommendations(mw)...)
	}
	recs = append(recs, teamRecommendations(result)...)
	return recs
}

func memberRecommendations(mw *schema.MemberWorkload) []schema.Recommendation {
	var recs []schema.Recommendation

	if mw.Status == schema.WorkloadOverloaded {
		recs = append(recs, schema.Recommendation{
			Type:     recOverloaded,
			Priority: schema.RecHigh,
			Member:   mw.Username,
			Message: fmt.Sprintf("%s is overloaded with %d active tasks (score %.1f)",
				mw.Username, mw.ActiveTasks, mw.WorkloadScore),
			SuggestedAction: "Redistribute tasks to members with lighter workloads",
		})
	}
	if mw.Status == schema.WorkloadHigh {
		recs = append(recs, schema.Recommendation{
			Type:     recHighLoad,
			Priority: schema.RecMedium,
			Member:   mw.Username,
			Message: fmt.Sprintf("%s is carrying a high workload (score %.1f)",
				mw.Username, mw.WorkloadScore),
			SuggestedAction: "Avoid assigning new tasks until the load drops",
		})
	}
	if mw.UrgentTasks > 0 {
		recs = append(recs, schema.Recommendation{
			Type:     recUrgent,
			Priority: schema.RecHigh,
			Member:   mw.Username,
			Message: fmt.Sprintf("%s has %d urgent task(s) needing immediate attention",
				mw.Username, mw.UrgentTasks),
			SuggestedAction: "Confirm urgent tasks are actively being worked",
		})
	}
	if mw.DueSoonTasks > 0 {
		recs = append(recs, schema.Recommendation{
			Type:     recDueSoon,
			Priority: schema.RecMedium,
			Member:   mw.Username,
			Message: fmt.Sprintf("%s has %d task(s) due within 3 days",
				mw.Username, mw.DueSoonTasks),
			SuggestedAction: "Check that upcoming deadlines are achievable",
		})
	}
	if mw.RemainingMinutes < 0 {
		overrunHours := float64(-mw.RemainingMinutes) / 60.0
		recs = append(recs, schema.Recommendation{
			Type:     recTimeOverrun,
			Priority: schema.RecMedium,
			Member:   mw.Username,
			Message: fmt.Sprintf("%s has logged %.1f hours beyond the original estimates",
				mw.Username, overrunHours),
			SuggestedAction: "Review estimates or scope on long-running tasks",
		})
	}
	return recs
}

func teamRecommendations(result *schema.AnalysisResult) []schema.Recommendation {
	var recs []schema.Recommendation
	ov := result.Overview

	if ov.TotalUrgentTasks > 3 {
		recs = append(recs, schema.Recommendation{
			Type:     recRedistribute,
			Priority: schema.RecHigh,
			Message: fmt.Sprintf("Team has %d urgent tasks across all members",
				ov.TotalUrgentTasks),
			SuggestedAction: "Redistribute urgent work or escalate blockers",
		})
	}
	if ov.TotalDueSoonTasks > 5 {
		recs = append(recs, schema.Recommendation{
			Type:     recSprintPlan,
			Priority: schema.RecMedium,
			Message: fmt.Sprintf("Team has %d tasks due within 3 days",
				ov.TotalDueSoonTasks),
			SuggestedAction: "Review sprint planning to smooth deadline clustering",
		})
	}
	lb := result.LoadBalance
	if len(result.Members) > 1 && lb.HighestScore-lb.LowestScore > imbalanceSpread {
		recs = append(recs, schema.Recommendation{
			Type:     recImbalance,
			Priority: schema.RecMedium,
			Message: fmt.Sprintf("Workload spread of %.1f points between %s and %s",
				lb.HighestScore-lb.LowestScore, lb.HighestMember, lb.LowestMember),
			SuggestedAction: "Rebalance assignments between the extremes",
		})
	}
	if n := len(result.Timeline.OverdueTasks); n > 0 {
		recs = append(recs, schema.Recommendation{
			Type:            recOverdue,
			Priority:        schema.RecHigh,
			Message:         fmt.Sprintf("Team has %d overdue task(s)", n),
			SuggestedAction: "Triage overdue tasks: reschedule, reassign or close",
		})
	}
	return recs
}
