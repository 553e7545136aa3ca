// Package core implements the workload analysis pipeline: scoring,
// complexity weighting, freshness-gated caching, multi-space aggregation,
// recommendations and the narrative summary.
package core

import (
	"teampulse/schema"
)

// Score term weights. The formula is deliberately simple and deterministic:
// score = active*10 + urgent*25 + high*15 + dueSoon*10.
const (
	weightActive       = 10.0
	weightUrgent       = 25.0
	weightHighPriority = 15.0
	weightDueSoon      = 10.0
)

// Workload band thresholds, checked in descending order.
const (
	thresholdOverloaded = 150.0
	thresholdHigh       = 100.0
	thresholdBalanced   = 50.0
)

// ComputeScore evaluates the scoring formula over one set of term counts and
// returns the total plus each term's numeric contribution.
func ComputeScore(counts schema.TermCounts) (float64, map[schema.BreakdownKey]float64) {
	breakdown := map[schema.BreakdownKey]float64{
		schema.BreakdownActive:       float64(counts.Active) * weightActive,
		schema.BreakdownUrgent:       float64(counts.Urgent) * weightUrgent,
		schema.BreakdownHighPriority: float64(counts.HighPriority) * weightHighPriority,
		schema.BreakdownDueSoon:      float64(counts.DueSoon) * weightDueSoon,
	}
	total := 0.0
	for _, v := range breakdown {
		total += v
	}
	return total, breakdown
}

// ClassifyWorkload maps a score onto a workload band. First match wins, so
// classification is monotonic in the score.
func ClassifyWorkload(score float64) schema.WorkloadStatus {
	switch {
	case score >= thresholdOverloaded:
		return schema.WorkloadOverloaded
	case score >= thresholdHigh:
		return schema.WorkloadHigh
	case score >= thresholdBalanced:
		return schema.WorkloadBalanced
	default:
		return schema.WorkloadLight
	}
}

// ScoreMember computes and attaches the score, band and per-term breakdown to
// a member workload. BaseScore tracks the unweighted score; the complexity
// weighter later overwrites WorkloadScore only.
func ScoreMember(mw *schema.MemberWorkload) {
	score, breakdown := ComputeScore(mw.Counts())
	mw.WorkloadScore = score
	mw.BaseScore = score
	mw.Status = ClassifyWorkload(score)
	mw.Breakdown = breakdown
	mw.RemainingMinutes = mw.EstimateMinutes - mw.SpentMinutes
}
