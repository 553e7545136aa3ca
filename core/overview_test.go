package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"teampulse/schema"
)

func member(username string, status schema.WorkloadStatus, score float64) *schema.MemberWorkload {
	return &schema.MemberWorkload{Username: username, Status: status, WorkloadScore: score}
}

// TestBuildOverviewHealth validates the health formula and its bounds.
func TestBuildOverviewHealth(t *testing.T) {
	tests := []struct {
		name     string
		members  map[string]*schema.MemberWorkload
		expected float64
	}{
		{
			name:     "no members",
			members:  map[string]*schema.MemberWorkload{},
			expected: 0,
		},
		{
			name: "no overloaded or high members",
			members: map[string]*schema.MemberWorkload{
				"a": member("a", schema.WorkloadLight, 10),
				"b": member("b", schema.WorkloadBalanced, 60),
			},
			expected: 100,
		},
		{
			name: "one of two high",
			members: map[string]*schema.MemberWorkload{
				"a": member("a", schema.WorkloadBalanced, 55),
				"b": member("b", schema.WorkloadHigh, 145),
			},
			expected: 87.5,
		},
		{
			name: "everyone overloaded",
			members: map[string]*schema.MemberWorkload{
				"a": member("a", schema.WorkloadOverloaded, 200),
				"b": member("b", schema.WorkloadOverloaded, 250),
			},
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov := BuildOverview(tt.members)
			assert.InDelta(t, tt.expected, ov.HealthScore, 0.001)
			assert.GreaterOrEqual(t, ov.HealthScore, 0.0)
			assert.LessOrEqual(t, ov.HealthScore, 100.0)
		})
	}
}

// TestBuildOverviewBreakdown checks that ratios and penalties are exposed.
func TestBuildOverviewBreakdown(t *testing.T) {
	members := map[string]*schema.MemberWorkload{
		"a": member("a", schema.WorkloadOverloaded, 160),
		"b": member("b", schema.WorkloadHigh, 110),
		"c": member("c", schema.WorkloadLight, 10),
		"d": member("d", schema.WorkloadLight, 20),
	}
	ov := BuildOverview(members)

	assert.InDelta(t, 0.25, ov.Health.OverloadedRatio, 0.001)
	assert.InDelta(t, 0.25, ov.Health.HighRatio, 0.001)
	assert.InDelta(t, 12.5, ov.Health.OverloadedPenalty, 0.001)
	assert.InDelta(t, 6.25, ov.Health.HighPenalty, 0.001)
	assert.InDelta(t, 81.25, ov.HealthScore, 0.001)
	assert.InDelta(t, 75.0, ov.AverageScore, 0.001)
	assert.Equal(t, 2, ov.StatusCounts[schema.WorkloadLight])
}

// TestBuildLoadBalance checks extremes, buckets and transfer suggestions.
func TestBuildLoadBalance(t *testing.T) {
	members := map[string]*schema.MemberWorkload{
		"heavy": member("heavy", schema.WorkloadOverloaded, 180),
		"mid":   member("mid", schema.WorkloadBalanced, 70),
		"idle":  member("idle", schema.WorkloadLight, 5),
	}
	lb := BuildLoadBalance(members)

	assert.Equal(t, "heavy", lb.HighestMember)
	assert.InDelta(t, 180.0, lb.HighestScore, 0.001)
	assert.Equal(t, "idle", lb.LowestMember)
	assert.InDelta(t, 5.0, lb.LowestScore, 0.001)
	assert.Equal(t, []string{"heavy"}, lb.Overloaded)
	assert.Equal(t, []string{"idle"}, lb.Available)
	assert.Len(t, lb.Transfers, 1)
	assert.Equal(t, "heavy", lb.Transfers[0].From)
	assert.Equal(t, "idle", lb.Transfers[0].To)
}

// TestBuildLoadBalanceEmpty ensures an empty team yields a zero value.
func TestBuildLoadBalanceEmpty(t *testing.T) {
	lb := BuildLoadBalance(map[string]*schema.MemberWorkload{})
	assert.Empty(t, lb.HighestMember)
	assert.Empty(t, lb.Overloaded)
	assert.Empty(t, lb.Transfers)
}
