// Package cmd defines the command-line interface for teampulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"teampulse/internal/contract"
	"teampulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the snapshots subcommands to the parent snapshots command
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsClearCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("date", "", "Scope date in YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().Bool("refresh", false, "Force a live fetch even when a fresh snapshot exists")
	rootCmd.PersistentFlags().Bool("debug", false, "Attach cache and fetch diagnostics to the result")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-dir", "", "Snapshot cache directory (default: ~/.teampulse/snapshots)")
	rootCmd.PersistentFlags().Int("retention", contract.DefaultRetention, "Snapshots kept per namespace")
	rootCmd.PersistentFlags().String("fresh-window", "3h", "Same-day snapshot reuse window")
	rootCmd.PersistentFlags().Int("work-hours-start", contract.DefaultWorkHoursStart, "First hour of the working window")
	rootCmd.PersistentFlags().Int("work-hours-end", contract.DefaultWorkHoursEnd, "Hour the working window ends (exclusive)")
	rootCmd.PersistentFlags().String("base-url", "", "Upstream API base URL")
	rootCmd.PersistentFlags().String("token", "", "Upstream API token (prefer TEAMPULSE_TOKEN)")
	rootCmd.PersistentFlags().Int("max-retries", contract.DefaultMaxRetries, "Retry attempts for transient upstream failures")
	rootCmd.PersistentFlags().String("status-filter", "", "Comma-separated status labels that count toward workload")
	rootCmd.PersistentFlags().String("exclude-lists", "", "Comma-separated list-name fragments to skip")
	rootCmd.PersistentFlags().String("history-db", "", "Run-history database path (default: ~/.teampulse/runs.db)")
	rootCmd.PersistentFlags().Bool("history-off", false, "Disable run-history tracking")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().String("inter-space-delay", "2s", "Pause between successive space fetches")
	analyzeCmd.Flags().Bool("ai-weighting", false, "Use an intelligence provider for complexity weighting")
	analyzeCmd.Flags().String("openai-key", "", "OpenAI API key (prefer TEAMPULSE_OPENAI_KEY)")
	analyzeCmd.Flags().String("openai-model", "", "OpenAI model for summaries and weighting")
	analyzeCmd.Flags().String("openrouter-key", "", "OpenRouter API key (prefer TEAMPULSE_OPENROUTER_KEY)")
	analyzeCmd.Flags().String("openrouter-models", "", "Comma-separated OpenRouter candidate models, tried in order")
	analyzeCmd.Flags().String("provider-timeout", "30s", "Per-attempt timeout for provider calls")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}
}
