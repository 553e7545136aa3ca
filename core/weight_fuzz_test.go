package core

import (
	"testing"

	"teampulse/internal/contract"
)

// FuzzKeywordScore fuzzes the keyword heuristic with random descriptions.
func FuzzKeywordScore(f *testing.F) {
	seeds := []struct {
		text      string
		taskCount int
	}{
		{"distributed platform migration", 30},
		{"typo fix on a single landing page", 1},
		{"", 0},
		{"quick fix", -5},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.taskCount)
	}

	cfg := &contract.Config{
		HighKeywords:   contract.DefaultHighKeywords,
		LowKeywords:    contract.DefaultLowKeywords,
		ScopeKeywords:  contract.DefaultScopeKeywords,
		NarrowKeywords: contract.DefaultNarrowKeywords,
	}

	f.Fuzz(func(t *testing.T, text string, taskCount int) {
		score := keywordScore(cfg, text, taskCount)
		if score < weightMin || score > weightMax {
			t.Errorf("score %d out of bounds for %q (%d tasks)", score, text, taskCount)
		}
	})
}

// FuzzExtractScore fuzzes integer extraction from model replies.
func FuzzExtractScore(f *testing.F) {
	seeds := []string{
		"7 - moderately complex",
		"I would rate this 10 out of 10",
		"no number here",
		"",
		"250 lines of config",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		score, ok := extractScore(text)
		if ok && (score < weightMin || score > weightMax) {
			t.Errorf("extracted %d out of bounds from %q", score, text)
		}
		if !ok && score != 0 {
			t.Errorf("miss should report zero, got %d from %q", score, text)
		}
	})
}
