package core

import (
	"sort"

	"teampulse/schema"
)

// MergeMemberWorkloads combines two workloads for the same username into a
// new value, never mutating either input. Additive fields are summed, list
// fields concatenated, and the score is recomputed from the merged counts so
// the band thresholds apply once to the combined load.
func MergeMemberWorkloads(a, b *schema.MemberWorkload) *schema.MemberWorkload {
	merged := &schema.MemberWorkload{
		Username:          a.Username,
		ActiveTasks:       a.ActiveTasks + b.ActiveTasks,
		UrgentTasks:       a.UrgentTasks + b.UrgentTasks,
		HighPriorityTasks: a.HighPriorityTasks + b.HighPriorityTasks,
		DueSoonTasks:      a.DueSoonTasks + b.DueSoonTasks,
		EstimateMinutes:   a.EstimateMinutes + b.EstimateMinutes,
		SpentMinutes:      a.SpentMinutes + b.SpentMinutes,
		ProjectTerms:      make(map[string]schema.TermCounts, len(a.ProjectTerms)+len(b.ProjectTerms)),
	}

	merged.Tasks = append(merged.Tasks, a.Tasks...)
	merged.Tasks = append(merged.Tasks, b.Tasks...)

	for _, name := range a.Projects {
		merged.Projects = appendDistinct(merged.Projects, name)
	}
	for _, name := range b.Projects {
		merged.Projects = appendDistinct(merged.Projects, name)
	}
	sort.Strings(merged.Projects)
	merged.ProjectsCount = len(merged.Projects)

	for id, terms := range a.ProjectTerms {
		merged.ProjectTerms[id] = merged.ProjectTerms[id].Add(terms)
	}
	for id, terms := range b.ProjectTerms {
		merged.ProjectTerms[id] = merged.ProjectTerms[id].Add(terms)
	}

	score, breakdown := ComputeScore(merged.Counts())
	merged.WorkloadScore = score
	merged.BaseScore = score
	merged.Status = ClassifyWorkload(score)
	merged.Breakdown = breakdown
	merged.RemainingMinutes = merged.EstimateMinutes - merged.SpentMinutes
	return merged
}

// aggregateSpaces merges per-space analyses into combined member, project and
// weight maps. Project identifiers (and the matching weight and term keys)
// are namespaced as {space_id}_{project_id} so spaces cannot collide. Weights
// are reapplied after the merge so the weighted score reflects the combined
// per-project terms.
func aggregateSpaces(analyses []*spaceAnalysis) (map[string]*schema.MemberWorkload, map[string]schema.ProjectAnalytics, map[string]schema.ComplexityWeight) {
	members := make(map[string]*schema.MemberWorkload)
	projects := make(map[string]schema.ProjectAnalytics)
	weights := make(map[string]schema.ComplexityWeight)

	multiSpace := len(analyses) > 1

	for _, sa := range analyses {
		for id, p := range sa.projects {
			key := namespaceKey(sa.spaceID, id, multiSpace)
			p.ID = key
			projects[key] = p
		}
		for id, w := range sa.weights {
			key := namespaceKey(sa.spaceID, id, multiSpace)
			w.ProjectID = key
			weights[key] = w
		}

		for username, mw := range sa.members {
			scoped := rekeyProjectTerms(mw, sa.spaceID, multiSpace)
			if existing, ok := members[username]; ok {
				members[username] = MergeMemberWorkloads(existing, scoped)
			} else {
				members[username] = scoped
			}
		}
	}

	ApplyWeights(members, weights)
	return members, projects, weights
}

// rekeyProjectTerms returns a copy of the workload whose per-project term
// keys carry the space namespace. Single-space runs keep raw keys.
func rekeyProjectTerms(mw *schema.MemberWorkload, spaceID string, multiSpace bool) *schema.MemberWorkload {
	if !multiSpace {
		return mw
	}
	copied := *mw
	copied.ProjectTerms = make(map[string]schema.TermCounts, len(mw.ProjectTerms))
	for id, terms := range mw.ProjectTerms {
		copied.ProjectTerms[namespaceKey(spaceID, id, true)] = terms
	}
	return &copied
}

func namespaceKey(spaceID, projectID string, multiSpace bool) string {
	if !multiSpace {
		return projectID
	}
	return spaceID + "_" + projectID
}
