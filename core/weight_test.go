package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// fakeProvider is a canned IntelligenceProvider for pipeline tests.
type fakeProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(_ context.Context, _ string, _ int) (string, error) {
	f.calls++
	return f.reply, f.err
}

func weightConfig() *contract.Config {
	return &contract.Config{
		HighKeywords:   []string{"migration", "distributed", "security"},
		LowKeywords:    []string{"typo", "copy change"},
		ScopeKeywords:  []string{"platform", "infrastructure"},
		NarrowKeywords: []string{"single page"},
	}
}

// TestRuleBasedWeightBounds checks that the heuristic stays inside [1,10]
// for arbitrary inputs.
func TestRuleBasedWeightBounds(t *testing.T) {
	cfg := weightConfig()
	projects := []schema.ProjectAnalytics{
		{ID: "p1", Name: "", Description: "", TaskCount: 0},
		{ID: "p2", Name: "Huge migration", Description: "distributed security platform infrastructure", TaskCount: 40},
		{ID: "p3", Name: "Typo fix", Description: "copy change on a single page", TaskCount: 1},
		{ID: "p4", Name: strings.Repeat("x", 500), TaskCount: 12},
	}

	for _, p := range projects {
		w := ruleBasedWeight(cfg, p)
		assert.GreaterOrEqual(t, w.Score, weightMin, p.ID)
		assert.LessOrEqual(t, w.Score, weightMax, p.ID)
		assert.Equal(t, schema.WeightRuleBased, w.Method)
		assert.NotEmpty(t, w.Explanation)
	}
}

// TestKeywordScore verifies the capped keyword and task-count adjustments
// around the baseline.
func TestKeywordScore(t *testing.T) {
	cfg := weightConfig()
	tests := []struct {
		name      string
		text      string
		taskCount int
		expected  int
	}{
		{"plain project", "ordinary work", 10, 5},
		{"one complexity keyword", "a migration effort", 10, 6},
		{"complexity keywords capped at three", "migration distributed security plus more", 10, 8},
		{"simplicity keyword", "fix a typo", 10, 4},
		{"broad scope", "platform work", 10, 6},
		{"narrow scope", "single page tweak", 10, 4},
		{"large task count", "ordinary work", 30, 7},
		{"moderate task count", "ordinary work", 20, 6},
		{"tiny task count", "ordinary work", 2, 4},
		{"floor", "typo copy change single page tweak", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, keywordScore(cfg, tt.text, tt.taskCount))
		})
	}
}

// TestExtractScore exercises the first-integer extraction.
func TestExtractScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
		ok       bool
	}{
		{"leading integer", "7 - the project spans several services", 7, true},
		{"ten", "10, this is the hardest project here", 10, true},
		{"embedded integer", "I would rate this a 3 overall.", 3, true},
		{"zero is out of range", "0 effort required", 0, false},
		{"no integer", "quite complex indeed", 0, false},
		{"part of larger number", "took 250 hours", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := extractScore(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, score)
		})
	}
}

// TestComputeWeightsProvider covers the AI path, the keyword fallback on an
// unusable reply, and the rule-based fallback on provider failure or short
// descriptions.
func TestComputeWeightsProvider(t *testing.T) {
	cfg := weightConfig()
	projects := map[string]schema.ProjectAnalytics{
		"p1": {ID: "p1", Name: "Core", Description: "a long enough description of the work", TaskCount: 8},
	}

	prov := &fakeProvider{name: "fake", reply: "8 because of the service fan-out"}
	weights := ComputeWeights(context.Background(), prov, cfg, projects)
	assert.Equal(t, 8, weights["p1"].Score)
	assert.Equal(t, schema.WeightAI, weights["p1"].Method)
	assert.Equal(t, 1, prov.calls)

	// Reply without a usable integer: keyword scoring over the reply text.
	prov = &fakeProvider{name: "fake", reply: "this looks like a migration across the platform"}
	weights = ComputeWeights(context.Background(), prov, cfg, projects)
	assert.Equal(t, 7, weights["p1"].Score)
	assert.Equal(t, schema.WeightAI, weights["p1"].Method)

	// Provider failure falls back to the rule-based strategy.
	prov = &fakeProvider{name: "fake", err: contract.ErrProviderSoft}
	weights = ComputeWeights(context.Background(), prov, cfg, projects)
	assert.Equal(t, schema.WeightRuleBased, weights["p1"].Method)

	// Short descriptions never reach the provider.
	short := map[string]schema.ProjectAnalytics{
		"p2": {ID: "p2", Name: "Tiny", Description: "brief", TaskCount: 8},
	}
	prov = &fakeProvider{name: "fake", reply: "9"}
	weights = ComputeWeights(context.Background(), prov, cfg, short)
	assert.Equal(t, schema.WeightRuleBased, weights["p2"].Method)
	assert.Zero(t, prov.calls)
}

// TestApplyWeights checks that per-project multipliers reweight the total
// while the raw score is kept.
func TestApplyWeights(t *testing.T) {
	mw := scoredMember("dev", schema.TermCounts{Active: 4}, []string{"Web", "Ops"},
		map[string]schema.TermCounts{
			"p1": {Active: 2}, // raw 20
			"p2": {Active: 2}, // raw 20
		})
	assert.InDelta(t, 40.0, mw.WorkloadScore, 0.001)

	members := map[string]*schema.MemberWorkload{"dev": mw}
	weights := map[string]schema.ComplexityWeight{
		"p1": {ProjectID: "p1", Score: 10}, // multiplier 2.0
		// p2 has no weight and keeps a neutral 1.0 multiplier.
	}
	ApplyWeights(members, weights)

	assert.InDelta(t, 60.0, mw.WorkloadScore, 0.001)
	assert.InDelta(t, 40.0, mw.BaseScore, 0.001)
	assert.Equal(t, schema.WorkloadBalanced, mw.Status)

	// A neutral weight of 5 changes nothing.
	neutral := scoredMember("ops", schema.TermCounts{Active: 3}, []string{"Web"},
		map[string]schema.TermCounts{"p1": {Active: 3}})
	ApplyWeights(map[string]*schema.MemberWorkload{"ops": neutral},
		map[string]schema.ComplexityWeight{"p1": {ProjectID: "p1", Score: 5}})
	assert.InDelta(t, 30.0, neutral.WorkloadScore, 0.001)
}
