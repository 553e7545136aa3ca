package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"teampulse/internal/contract"
	"teampulse/internal/provider"
	"teampulse/internal/runstore"
	"teampulse/internal/snapstore"
	"teampulse/internal/upstream"
	"teampulse/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "teampulse",
	Short:              "Analyze team workload from your project-management spaces.",
	Long:               `Teampulse turns raw task data into per-member workload scores, team health and actionable recommendations.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".teampulse") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("TEAMPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("retention", contract.DefaultRetention)
	viper.SetDefault("fresh-window", "3h")
	viper.SetDefault("work-hours-start", contract.DefaultWorkHoursStart)
	viper.SetDefault("work-hours-end", contract.DefaultWorkHoursEnd)
	viper.SetDefault("inter-space-delay", "2s")
	viper.SetDefault("max-retries", contract.DefaultMaxRetries)
	viper.SetDefault("base-url", "https://api.clickup.com/api/v2")
	viper.SetDefault("provider-timeout", "30s")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.SpaceIDs = args

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input, time.Now())
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// buildDependencies wires the stores, the upstream client and the provider
// chain from the validated config. The caller owns closing deps.Runs.
func buildDependencies() (*contract.Dependencies, error) {
	historyPath := cfg.HistoryDBPath
	if cfg.HistoryOff {
		historyPath = ""
	}
	runs, err := runstore.NewStore(historyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run history: %w", err)
	}

	deps := &contract.Dependencies{
		Source:    upstream.NewClient(cfg),
		Snapshots: snapstore.NewStore(cfg.CacheDir, cfg.Retention),
		Runs:      runs,
		Providers: []contract.IntelligenceProvider{
			provider.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.ProviderTimeout),
			provider.NewOpenRouter(cfg.OpenRouterKey, cfg.OpenRouterModels, cfg.ProviderTimeout),
		},
	}
	return deps, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
