package schema

import (
	"sort"
	"time"
)

// TimelineAnalysis collects deadline-related task lists plus a per-member
// deadline pressure count (due-soon plus overdue tasks).
type TimelineAnalysis struct {
	UrgentTasks      []TaskSummary  `json:"urgent_tasks"`
	UpcomingTasks    []TaskSummary  `json:"upcoming_tasks"`
	OverdueTasks     []TaskSummary  `json:"overdue_tasks"`
	DeadlinePressure map[string]int `json:"deadline_pressure"`
}

// TransferSuggestion proposes moving work between two members.
type TransferSuggestion struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// LoadBalance summarizes how evenly work is spread across the team.
type LoadBalance struct {
	HighestMember string               `json:"highest_member"`
	HighestScore  float64              `json:"highest_score"`
	LowestMember  string               `json:"lowest_member"`
	LowestScore   float64              `json:"lowest_score"`
	Overloaded    []string             `json:"overloaded"`
	Available     []string             `json:"available"`
	Transfers     []TransferSuggestion `json:"transfers,omitempty"`
}

// HealthBreakdown exposes the ratios and penalty terms behind the health
// score so the number can be audited.
type HealthBreakdown struct {
	OverloadedRatio   float64 `json:"overloaded_ratio"`
	HighRatio         float64 `json:"high_ratio"`
	OverloadedPenalty float64 `json:"overloaded_penalty"`
	HighPenalty       float64 `json:"high_penalty"`
}

// Overview holds team-wide aggregate statistics including the 0-100 health score.
type Overview struct {
	TotalMembers         int                    `json:"total_members"`
	TotalActiveTasks     int                    `json:"total_active_tasks"`
	TotalUrgentTasks     int                    `json:"total_urgent_tasks"`
	TotalDueSoonTasks    int                    `json:"total_due_soon_tasks"`
	TotalEstimateMinutes int                    `json:"total_estimate_minutes"`
	TotalSpentMinutes    int                    `json:"total_spent_minutes"`
	AverageScore         float64                `json:"average_score"`
	StatusCounts         map[WorkloadStatus]int `json:"status_counts"`
	HealthScore          float64                `json:"health_score"`
	Health               HealthBreakdown        `json:"health_breakdown"`
}

// Recommendation is a single actionable warning derived from scored workloads.
type Recommendation struct {
	Type            string                 `json:"type"`
	Priority        RecommendationPriority `json:"priority"`
	Member          string                 `json:"member,omitempty"`
	Message         string                 `json:"message"`
	SuggestedAction string                 `json:"suggested_action"`
}

// RuleBasedAnalysis is the local, dependency-free team assessment. It is
// always present in a TeamSummary; Available is false only when the input
// result was malformed.
type RuleBasedAnalysis struct {
	Available          bool     `json:"available"`
	ScoreVariance      float64  `json:"score_variance"`
	UtilizationRate    float64  `json:"utilization_rate"`
	PriorityPressure   float64  `json:"priority_pressure"`
	EstimationAccuracy float64  `json:"estimation_accuracy"`
	Findings           []string `json:"findings"`
	Assessment         string   `json:"assessment"`
}

// TeamSummary is the narrative team assessment. RuleBased is always set;
// AIText is present only when an intelligence provider succeeded.
type TeamSummary struct {
	RuleBased  RuleBasedAnalysis `json:"rule_based"`
	AIText     string            `json:"ai_text,omitempty"`
	AIProvider string            `json:"ai_provider,omitempty"`
	Confidence SummaryConfidence `json:"analysis_confidence"`
}

// Diagnostics carries debug-only fields attached when a request sets
// debug=true. It never alters the core result.
type Diagnostics struct {
	FreshnessState   string   `json:"freshness_state"`
	CacheDecision    string   `json:"cache_decision"`
	ListsFetched     int      `json:"lists_fetched"`
	ListsSkipped     []string `json:"lists_skipped,omitempty"`
	TasksFetched     int      `json:"tasks_fetched"`
	SpacesSkipped    []string `json:"spaces_skipped,omitempty"`
	StatusFilter     []string `json:"status_filter,omitempty"`
	ProviderAttempts []string `json:"provider_attempts,omitempty"`
}

// AnalysisResult is the top-level aggregate produced by one analysis run.
type AnalysisResult struct {
	Members         map[string]*MemberWorkload  `json:"members"`
	Projects        map[string]ProjectAnalytics `json:"projects"`
	Weights         map[string]ComplexityWeight `json:"weights,omitempty"`
	Timeline        TimelineAnalysis            `json:"timeline"`
	LoadBalance     LoadBalance                 `json:"load_balance"`
	Overview        Overview                    `json:"overview"`
	Recommendations []Recommendation            `json:"recommendations"`
	Summary         TeamSummary                 `json:"summary"`

	Spaces      []string     `json:"spaces"`
	ScopeDate   string       `json:"scope_date"` // YYYY-MM-DD
	GeneratedAt time.Time    `json:"generated_at"`
	Source      ResultSource `json:"source"`

	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// SortedMembers returns the member workloads ordered by descending workload
// score, with username as the tie-breaker for deterministic output.
func (r *AnalysisResult) SortedMembers() []*MemberWorkload {
	members := make([]*MemberWorkload, 0, len(r.Members))
	for _, m := range r.Members {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].WorkloadScore != members[j].WorkloadScore {
			return members[i].WorkloadScore > members[j].WorkloadScore
		}
		return members[i].Username < members[j].Username
	})
	return members
}

// Snapshot is one persisted AnalysisResult tied to a generation time and a
// logical "as of" date. ScopeDate never changes after creation; whether a
// snapshot is historical is derived from it at read time, not stored.
type Snapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	ScopeDate   string         `json:"scope_date"`
	Result      AnalysisResult `json:"result"`
}
