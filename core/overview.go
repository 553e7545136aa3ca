package core

import (
	"fmt"
	"sort"

	"teampulse/schema"
)

// Health penalty weights: overloaded members cost twice what high-band
// members cost.
const (
	healthOverloadedPenalty = 50.0
	healthHighPenalty       = 25.0
)

// BuildOverview computes team-wide aggregates and the 0-100 health score.
// Health is defined as 0 for an empty team, and the penalty breakdown is
// exposed so the number can be audited.
func BuildOverview(members map[string]*schema.MemberWorkload) schema.Overview {
	ov := schema.Overview{
		TotalMembers: len(members),
		StatusCounts: make(map[schema.WorkloadStatus]int),
	}

	totalScore := 0.0
	for _, mw := range members {
		ov.TotalActiveTasks += mw.ActiveTasks
		ov.TotalUrgentTasks += mw.UrgentTasks
		ov.TotalDueSoonTasks += mw.DueSoonTasks
		ov.TotalEstimateMinutes += mw.EstimateMinutes
		ov.TotalSpentMinutes += mw.SpentMinutes
		ov.StatusCounts[mw.Status]++
		totalScore += mw.WorkloadScore
	}

	if ov.TotalMembers == 0 {
		ov.HealthScore = 0
		return ov
	}
	ov.AverageScore = totalScore / float64(ov.TotalMembers)

	total := float64(ov.TotalMembers)
	ov.Health = schema.HealthBreakdown{
		OverloadedRatio: float64(ov.StatusCounts[schema.WorkloadOverloaded]) / total,
		HighRatio:       float64(ov.StatusCounts[schema.WorkloadHigh]) / total,
	}
	ov.Health.OverloadedPenalty = ov.Health.OverloadedRatio * healthOverloadedPenalty
	ov.Health.HighPenalty = ov.Health.HighRatio * healthHighPenalty

	health := 100.0 - ov.Health.OverloadedPenalty - ov.Health.HighPenalty
	if health < 0 {
		health = 0
	}
	if health > 100 {
		health = 100
	}
	ov.HealthScore = health
	return ov
}

// BuildLoadBalance identifies the extremes of the score distribution and
// proposes transfers from overloaded members to those with spare capacity.
func BuildLoadBalance(members map[string]*schema.MemberWorkload) schema.LoadBalance {
	lb := schema.LoadBalance{}
	if len(members) == 0 {
		return lb
	}

	first := true
	for _, mw := range members {
		if first || mw.WorkloadScore > lb.HighestScore {
			lb.HighestMember = mw.Username
			lb.HighestScore = mw.WorkloadScore
		}
		if first || mw.WorkloadScore < lb.LowestScore {
			lb.LowestMember = mw.Username
			lb.LowestScore = mw.WorkloadScore
		}
		first = false

		switch mw.Status {
		case schema.WorkloadOverloaded:
			lb.Overloaded = append(lb.Overloaded, mw.Username)
		case schema.WorkloadLight:
			lb.Available = append(lb.Available, mw.Username)
		}
	}
	sort.Strings(lb.Overloaded)
	sort.Strings(lb.Available)

	for i, from := range lb.Overloaded {
		if i >= len(lb.Available) {
			break
		}
		to := lb.Available[i]
		lb.Transfers = append(lb.Transfers, schema.TransferSuggestion{
			From:   from,
			To:     to,
			Reason: fmt.Sprintf("%s is overloaded while %s has spare capacity", from, to),
		})
	}
	return lb
}
