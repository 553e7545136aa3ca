package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"teampulse/schema"
)

// Default values for configuration.
const (
	DefaultFreshWindow     = 3 * time.Hour
	DefaultWorkHoursStart  = 9
	DefaultWorkHoursEnd    = 17
	DefaultRetention       = 10
	DefaultInterSpaceDelay = 2 * time.Second
	DefaultMaxRetries      = 3
	DefaultRetryBaseDelay  = 1 * time.Second
	DefaultProviderTimeout = 30 * time.Second
	DefaultPrecision       = 1
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// spaceIDPattern accepts the upstream's numeric-or-slug space identifiers.
var spaceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DefaultStatusFilter is the set of upstream status labels that count toward
// workload, matched case-insensitively at the adapter boundary.
var DefaultStatusFilter = []string{"open", "to do", "in progress", "review", "blocked"}

// DefaultExcludedLists are list names skipped during fetch.
var DefaultExcludedLists = []string{"template", "archive", "sandbox"}

// Default keyword sets for the rule-based complexity heuristic. Tunable via
// the weighting.* config keys; the defaults are a starting point, not a
// frozen contract.
var (
	DefaultHighKeywords = []string{
		"distributed", "microservice", "kubernetes", "aws", "gcp", "azure",
		"machine learning", "ml", "ai", "kafka", "realtime", "real-time",
		"migration", "framework", "infrastructure",
	}
	DefaultLowKeywords    = []string{"static site", "brochure", "landing page", "wordpress", "one-pager"}
	DefaultScopeKeywords  = []string{"multi-phase", "enterprise", "platform", "multi-tenant"}
	DefaultNarrowKeywords = []string{"small", "quick fix", "prototype", "poc"}
)

// Config holds the runtime configuration for an analysis run.
// This struct is the final, validated config.
type Config struct {
	SpaceIDs     []string
	ScopeDate    string // YYYY-MM-DD
	ForceRefresh bool
	Debug        bool

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	CacheDir        string
	Retention       int
	FreshWindow     time.Duration
	WorkHoursStart  int
	WorkHoursEnd    int
	InterSpaceDelay time.Duration

	UpstreamBaseURL string
	UpstreamToken   string // Please use env var as this is plaintext
	MaxRetries      int
	RetryBaseDelay  time.Duration
	StatusFilter    []string
	ExcludedLists   []string

	OpenAIKey        string
	OpenAIModel      string
	OpenRouterKey    string
	OpenRouterModels []string
	ProviderTimeout  time.Duration
	AIWeighting      bool

	HistoryDBPath string
	HistoryOff    bool

	HighKeywords   []string
	LowKeywords    []string
	ScopeKeywords  []string
	NarrowKeywords []string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag
	SpaceIDs []string

	Date    string `mapstructure:"date"`
	Refresh bool   `mapstructure:"refresh"`
	Debug   bool   `mapstructure:"debug"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`

	CacheDir        string `mapstructure:"cache-dir"`
	Retention       int    `mapstructure:"retention"`
	FreshWindow     string `mapstructure:"fresh-window"`
	WorkHoursStart  int    `mapstructure:"work-hours-start"`
	WorkHoursEnd    int    `mapstructure:"work-hours-end"`
	InterSpaceDelay string `mapstructure:"inter-space-delay"`

	BaseURL       string `mapstructure:"base-url"`
	Token         string `mapstructure:"token"`
	MaxRetries    int    `mapstructure:"max-retries"`
	StatusFilter  string `mapstructure:"status-filter"`
	ExcludedLists string `mapstructure:"exclude-lists"`

	OpenAIKey        string `mapstructure:"openai-key"`
	OpenAIModel      string `mapstructure:"openai-model"`
	OpenRouterKey    string `mapstructure:"openrouter-key"`
	OpenRouterModels string `mapstructure:"openrouter-models"`
	ProviderTimeout  string `mapstructure:"provider-timeout"`
	AIWeighting      bool   `mapstructure:"ai-weighting"`

	HistoryDB  string `mapstructure:"history-db"`
	HistoryOff bool   `mapstructure:"history-off"`

	// --- Weighting keyword overrides from config file ---
	Weighting WeightingRawInput `mapstructure:"weighting"`
}

// WeightingRawInput holds keyword-list overrides from the YAML config file.
type WeightingRawInput struct {
	HighKeywords   []string `mapstructure:"high_keywords"`
	LowKeywords    []string `mapstructure:"low_keywords"`
	ScopeKeywords  []string `mapstructure:"scope_keywords"`
	NarrowKeywords []string `mapstructure:"narrow_keywords"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSpacesAndDate(cfg, input, now); err != nil {
		return err
	}
	if err := validateOutput(cfg, input); err != nil {
		return err
	}
	if err := validateCachePolicy(cfg, input); err != nil {
		return err
	}
	if err := validateUpstream(cfg, input); err != nil {
		return err
	}
	if err := validateProviders(cfg, input); err != nil {
		return err
	}
	processKeywords(cfg, input)
	return nil
}

// validateSpacesAndDate checks space identifiers and the scope date.
func validateSpacesAndDate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	// Commands that only inspect stores run without space arguments; the
	// analyze command enforces at least one at the CLI layer.
	for _, id := range input.SpaceIDs {
		if !spaceIDPattern.MatchString(id) {
			return fmt.Errorf("%w: malformed space id %q", ErrInvalidRequest, id)
		}
	}
	cfg.SpaceIDs = input.SpaceIDs

	cfg.ScopeDate = DateOf(now)
	if input.Date != "" {
		t, err := time.ParseInLocation(DateFormat, input.Date, now.Location())
		if err != nil {
			return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidRequest, input.Date)
		}
		cfg.ScopeDate = DateOf(t)
	}

	cfg.ForceRefresh = input.Refresh
	cfg.Debug = input.Debug
	return nil
}

// validateOutput checks rendering options.
func validateOutput(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	return nil
}

// validateCachePolicy checks freshness and retention settings.
func validateCachePolicy(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheDir = input.CacheDir
	if cfg.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot resolve home directory for cache: %w", err)
		}
		cfg.CacheDir = filepath.Join(home, ".teampulse", "snapshots")
	}

	cfg.Retention = input.Retention
	if cfg.Retention <= 0 {
		return fmt.Errorf("retention must be greater than 0 (received %d)", input.Retention)
	}

	cfg.FreshWindow = DefaultFreshWindow
	if input.FreshWindow != "" {
		d, err := time.ParseDuration(input.FreshWindow)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid fresh-window %q", input.FreshWindow)
		}
		cfg.FreshWindow = d
	}

	cfg.WorkHoursStart = input.WorkHoursStart
	cfg.WorkHoursEnd = input.WorkHoursEnd
	if cfg.WorkHoursStart < 0 || cfg.WorkHoursEnd > 24 || cfg.WorkHoursStart >= cfg.WorkHoursEnd {
		return fmt.Errorf("invalid working hours window %d-%d", cfg.WorkHoursStart, cfg.WorkHoursEnd)
	}

	cfg.InterSpaceDelay = DefaultInterSpaceDelay
	if input.InterSpaceDelay != "" {
		d, err := time.ParseDuration(input.InterSpaceDelay)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid inter-space-delay %q", input.InterSpaceDelay)
		}
		cfg.InterSpaceDelay = d
	}
	return nil
}

// validateUpstream checks adapter settings.
func validateUpstream(cfg *Config, input *ConfigRawInput) error {
	cfg.UpstreamBaseURL = strings.TrimRight(input.BaseURL, "/")
	cfg.UpstreamToken = input.Token

	cfg.MaxRetries = input.MaxRetries
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max-retries cannot be negative (received %d)", input.MaxRetries)
	}
	cfg.RetryBaseDelay = DefaultRetryBaseDelay

	cfg.StatusFilter = DefaultStatusFilter
	if input.StatusFilter != "" {
		cfg.StatusFilter = splitCSV(input.StatusFilter)
	}
	cfg.ExcludedLists = DefaultExcludedLists
	if input.ExcludedLists != "" {
		cfg.ExcludedLists = append(cfg.ExcludedLists, splitCSV(input.ExcludedLists)...)
	}
	return nil
}

// validateProviders checks intelligence-provider settings.
func validateProviders(cfg *Config, input *ConfigRawInput) error {
	cfg.OpenAIKey = input.OpenAIKey
	cfg.OpenAIModel = input.OpenAIModel
	cfg.OpenRouterKey = input.OpenRouterKey
	if input.OpenRouterModels != "" {
		cfg.OpenRouterModels = splitCSV(input.OpenRouterModels)
	}
	cfg.AIWeighting = input.AIWeighting

	cfg.ProviderTimeout = DefaultProviderTimeout
	if input.ProviderTimeout != "" {
		d, err := time.ParseDuration(input.ProviderTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid provider-timeout %q", input.ProviderTimeout)
		}
		cfg.ProviderTimeout = d
	}

	cfg.HistoryOff = input.HistoryOff
	cfg.HistoryDBPath = input.HistoryDB
	if cfg.HistoryDBPath == "" && !cfg.HistoryOff {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot resolve home directory for history db: %w", err)
		}
		cfg.HistoryDBPath = filepath.Join(home, ".teampulse", "runs.db")
	}
	return nil
}

// processKeywords applies keyword-list overrides, falling back to defaults.
func processKeywords(cfg *Config, input *ConfigRawInput) {
	cfg.HighKeywords = DefaultHighKeywords
	cfg.LowKeywords = DefaultLowKeywords
	cfg.ScopeKeywords = DefaultScopeKeywords
	cfg.NarrowKeywords = DefaultNarrowKeywords

	if len(input.Weighting.HighKeywords) > 0 {
		cfg.HighKeywords = input.Weighting.HighKeywords
	}
	if len(input.Weighting.LowKeywords) > 0 {
		cfg.LowKeywords = input.Weighting.LowKeywords
	}
	if len(input.Weighting.ScopeKeywords) > 0 {
		cfg.ScopeKeywords = input.Weighting.ScopeKeywords
	}
	if len(input.Weighting.NarrowKeywords) > 0 {
		cfg.NarrowKeywords = input.Weighting.NarrowKeywords
	}
}

// Namespace returns the cache namespace for this request: the sorted space
// ids joined with '+'.
func (c *Config) Namespace() string {
	ids := make([]string, len(c.SpaceIDs))
	copy(ids, c.SpaceIDs)
	for i := range ids {
		ids[i] = strings.ToLower(ids[i])
	}
	sort.Strings(ids)
	return strings.Join(ids, "+")
}

// splitCSV splits a comma-separated string into trimmed, non-empty parts.
func splitCSV(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
