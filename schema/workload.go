package schema

// TermCounts holds the four task-count terms that feed the workload score,
// scoped to one owning project. The complexity weighter multiplies each
// project's terms by that project's weight multiplier before re-summing.
type TermCounts struct {
	Active       int `json:"active"`
	Urgent       int `json:"urgent"`
	HighPriority int `json:"high_priority"`
	DueSoon      int `json:"due_soon"`
}

// Add returns the element-wise sum of two TermCounts.
func (tc TermCounts) Add(other TermCounts) TermCounts {
	return TermCounts{
		Active:       tc.Active + other.Active,
		Urgent:       tc.Urgent + other.Urgent,
		HighPriority: tc.HighPriority + other.HighPriority,
		DueSoon:      tc.DueSoon + other.DueSoon,
	}
}

// MemberWorkload holds the scored workload of a single member within a space
// (or across spaces after merging). Created fresh per analysis run; after
// scoring it is only touched by the complexity weighter and, in multi-space
// mode, replaced wholesale by the aggregator's immutable merge.
type MemberWorkload struct {
	Username          string `json:"username"`
	ActiveTasks       int    `json:"active_tasks"`
	UrgentTasks       int    `json:"urgent_tasks"`
	HighPriorityTasks int    `json:"high_priority_tasks"`
	DueSoonTasks      int    `json:"due_soon_tasks"`

	EstimateMinutes int `json:"estimate_minutes"`
	SpentMinutes    int `json:"spent_minutes"`
	// RemainingMinutes is estimate minus spent; negative means over-estimate.
	RemainingMinutes int `json:"remaining_minutes"`

	// WorkloadScore is the primary score. When complexity weighting is
	// applied it holds the weighted score and BaseScore retains the raw one.
	WorkloadScore float64        `json:"workload_score"`
	BaseScore     float64        `json:"base_score"`
	Status        WorkloadStatus `json:"status"`

	Projects      []string      `json:"projects"`
	ProjectsCount int           `json:"projects_count"`
	Tasks         []TaskSummary `json:"tasks"`

	// ProjectTerms breaks the count terms down by owning project name so the
	// weighter can apply per-project multipliers.
	ProjectTerms map[string]TermCounts `json:"project_terms,omitempty"`

	// Breakdown holds each score term's numeric contribution for auditability.
	Breakdown map[BreakdownKey]float64 `json:"breakdown,omitempty"`
}

// Counts returns the member's overall term counts.
func (mw *MemberWorkload) Counts() TermCounts {
	return TermCounts{
		Active:       mw.ActiveTasks,
		Urgent:       mw.UrgentTasks,
		HighPriority: mw.HighPriorityTasks,
		DueSoon:      mw.DueSoonTasks,
	}
}
