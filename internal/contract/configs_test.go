package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teampulse/schema"
)

// validInput returns a raw input that passes validation unchanged.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		SpaceIDs:       []string{"123abc"},
		Output:         "text",
		Precision:      1,
		Color:          "yes",
		Retention:      DefaultRetention,
		WorkHoursStart: DefaultWorkHoursStart,
		WorkHoursEnd:   DefaultWorkHoursEnd,
		BaseURL:        "https://api.example.com/v2/",
		CacheDir:       "/tmp/teampulse-test",
		HistoryOff:     true,
	}
}

var configNow = time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

// TestProcessAndValidateDefaults checks the defaults applied to a minimal input.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(), configNow))

	assert.Equal(t, "2026-03-10", cfg.ScopeDate)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultFreshWindow, cfg.FreshWindow)
	assert.Equal(t, DefaultInterSpaceDelay, cfg.InterSpaceDelay)
	assert.Equal(t, DefaultProviderTimeout, cfg.ProviderTimeout)
	assert.Equal(t, DefaultStatusFilter, cfg.StatusFilter)
	assert.Equal(t, DefaultHighKeywords, cfg.HighKeywords)
	assert.Equal(t, "https://api.example.com/v2", cfg.UpstreamBaseURL)
}

// TestProcessAndValidateRejects covers each rejected input in isolation.
func TestProcessAndValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"malformed space id", func(in *ConfigRawInput) { in.SpaceIDs = []string{"bad space!"} }},
		{"malformed date", func(in *ConfigRawInput) { in.Date = "03/10/2026" }},
		{"unknown output mode", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"precision too high", func(in *ConfigRawInput) { in.Precision = 3 }},
		{"precision too low", func(in *ConfigRawInput) { in.Precision = 0 }},
		{"bad color flag", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"zero retention", func(in *ConfigRawInput) { in.Retention = 0 }},
		{"bad fresh window", func(in *ConfigRawInput) { in.FreshWindow = "soon" }},
		{"negative fresh window", func(in *ConfigRawInput) { in.FreshWindow = "-1h" }},
		{"inverted working hours", func(in *ConfigRawInput) { in.WorkHoursStart = 18; in.WorkHoursEnd = 9 }},
		{"bad inter-space delay", func(in *ConfigRawInput) { in.InterSpaceDelay = "fast" }},
		{"negative retries", func(in *ConfigRawInput) { in.MaxRetries = -1 }},
		{"bad provider timeout", func(in *ConfigRawInput) { in.ProviderTimeout = "never" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input, configNow))
		})
	}
}

// TestProcessAndValidateScopeDate accepts any well-formed date, past or future;
// date semantics are enforced later by the freshness logic.
func TestProcessAndValidateScopeDate(t *testing.T) {
	input := validInput()
	input.Date = "2025-12-31"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, configNow))
	assert.Equal(t, "2025-12-31", cfg.ScopeDate)
}

// TestProcessAndValidateCSVFields checks comma-separated overrides.
func TestProcessAndValidateCSVFields(t *testing.T) {
	input := validInput()
	input.StatusFilter = "open, blocked , "
	input.ExcludedLists = "scratch,old stuff"
	input.OpenRouterModels = "model-a,model-b"
	input.FreshWindow = "45m"
	input.InterSpaceDelay = "0s"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, configNow))

	assert.Equal(t, []string{"open", "blocked"}, cfg.StatusFilter)
	// Excluded lists extend the defaults rather than replacing them.
	assert.Subset(t, cfg.ExcludedLists, DefaultExcludedLists)
	assert.Contains(t, cfg.ExcludedLists, "scratch")
	assert.Contains(t, cfg.ExcludedLists, "old stuff")
	assert.Equal(t, []string{"model-a", "model-b"}, cfg.OpenRouterModels)
	assert.Equal(t, 45*time.Minute, cfg.FreshWindow)
	assert.Zero(t, cfg.InterSpaceDelay)
}

// TestProcessKeywordOverrides replaces only the lists that were supplied.
func TestProcessKeywordOverrides(t *testing.T) {
	input := validInput()
	input.Weighting.HighKeywords = []string{"blockchain"}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, configNow))

	assert.Equal(t, []string{"blockchain"}, cfg.HighKeywords)
	assert.Equal(t, DefaultLowKeywords, cfg.LowKeywords)
}

// TestNamespace sorts and lowercases space ids into a stable cache key.
func TestNamespace(t *testing.T) {
	tests := []struct {
		name     string
		spaces   []string
		expected string
	}{
		{"single space", []string{"123"}, "123"},
		{"sorted multi space", []string{"zeta", "Alpha"}, "alpha+zeta"},
		{"order independent", []string{"b", "a", "c"}, "a+b+c"},
		{"no spaces", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SpaceIDs: tt.spaces}
			assert.Equal(t, tt.expected, cfg.Namespace())
		})
	}
}

// TestNamespaceDoesNotMutate keeps the configured order intact.
func TestNamespaceDoesNotMutate(t *testing.T) {
	cfg := &Config{SpaceIDs: []string{"zeta", "alpha"}}
	_ = cfg.Namespace()
	assert.Equal(t, []string{"zeta", "alpha"}, cfg.SpaceIDs)
}

// TestSplitCSV trims parts and drops empties.
func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitCSV(" a , b c ,, "))
	assert.Nil(t, splitCSV(""))
	assert.Nil(t, splitCSV(" , "))
}
