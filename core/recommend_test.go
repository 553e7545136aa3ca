package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"teampulse/schema"
)

func recTypes(recs []schema.Recommendation) []string {
	types := make([]string, len(recs))
	for i, r := range recs {
		types[i] = r.Type
	}
	return types
}

// TestMemberRecommendations checks the per-member rules fire independently
// and in their fixed order.
func TestMemberRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		member   *schema.MemberWorkload
		expected []string
	}{
		{
			name:     "quiet member",
			member:   &schema.MemberWorkload{Username: "a", Status: schema.WorkloadLight},
			expected: []string{},
		},
		{
			name: "overloaded with everything",
			member: &schema.MemberWorkload{
				Username: "a", Status: schema.WorkloadOverloaded,
				ActiveTasks: 9, UrgentTasks: 2, DueSoonTasks: 1,
				WorkloadScore: 180, RemainingMinutes: -90,
			},
			expected: []string{recOverloaded, recUrgent, recDueSoon, recTimeOverrun},
		},
		{
			name: "high load only",
			member: &schema.MemberWorkload{
				Username: "a", Status: schema.WorkloadHigh, WorkloadScore: 120,
			},
			expected: []string{recHighLoad},
		},
		{
			name: "balanced with deadlines",
			member: &schema.MemberWorkload{
				Username: "a", Status: schema.WorkloadBalanced,
				DueSoonTasks: 2, RemainingMinutes: 30,
			},
			expected: []string{recDueSoon},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, recTypes(memberRecommendations(tt.member)))
		})
	}
}

// TestTeamRecommendations checks the team-wide thresholds, including the
// boundary values that must not fire.
func TestTeamRecommendations(t *testing.T) {
	quiet := &schema.AnalysisResult{
		Members: map[string]*schema.MemberWorkload{
			"a": {Username: "a"}, "b": {Username: "b"},
		},
		Overview: schema.Overview{TotalUrgentTasks: 3, TotalDueSoonTasks: 5},
		LoadBalance: schema.LoadBalance{
			HighestMember: "a", HighestScore: 100,
			LowestMember: "b", LowestScore: 0,
		},
	}
	assert.Empty(t, teamRecommendations(quiet))

	loud := &schema.AnalysisResult{
		Members: map[string]*schema.MemberWorkload{
			"a": {Username: "a"}, "b": {Username: "b"},
		},
		Overview: schema.Overview{TotalUrgentTasks: 4, TotalDueSoonTasks: 6},
		LoadBalance: schema.LoadBalance{
			HighestMember: "a", HighestScore: 160,
			LowestMember: "b", LowestScore: 10,
		},
		Timeline: schema.TimelineAnalysis{
			OverdueTasks: []schema.TaskSummary{{ID: "t1", Name: "late"}},
		},
	}
	assert.Equal(t,
		[]string{recRedistribute, recSprintPlan, recImbalance, recOverdue},
		recTypes(teamRecommendations(loud)))
}

// TestTeamRecommendationsSingleMember never flags imbalance for a team of one.
func TestTeamRecommendationsSingleMember(t *testing.T) {
	solo := &schema.AnalysisResult{
		Members: map[string]*schema.MemberWorkload{"a": {Username: "a"}},
		LoadBalance: schema.LoadBalance{
			HighestMember: "a", HighestScore: 200,
			LowestMember: "a", LowestScore: 200,
		},
	}
	assert.Empty(t, teamRecommendations(solo))
}

// TestBuildRecommendations walks members by descending score and appends the
// team rules last, without deduplication across rules.
func TestBuildRecommendations(t *testing.T) {
	result := &schema.AnalysisResult{
		Members: map[string]*schema.MemberWorkload{
			"light": {Username: "light", Status: schema.WorkloadLight, WorkloadScore: 10},
			"heavy": {
				Username: "heavy", Status: schema.WorkloadOverloaded,
				ActiveTasks: 8, UrgentTasks: 4, WorkloadScore: 180,
			},
		},
		Overview: schema.Overview{TotalUrgentTasks: 4},
		LoadBalance: schema.LoadBalance{
			HighestMember: "heavy", HighestScore: 180,
			LowestMember: "light", LowestScore: 10,
		},
	}

	recs := BuildRecommendations(result)
	assert.Equal(t,
		[]string{recOverloaded, recUrgent, recRedistribute, recImbalance},
		recTypes(recs))

	// Member rules carry the member, team rules do not.
	assert.Equal(t, "heavy", recs[0].Member)
	assert.Equal(t, schema.RecHigh, recs[0].Priority)
	assert.Empty(t, recs[2].Member)
}
