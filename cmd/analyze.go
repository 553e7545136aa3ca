package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"teampulse/core"
	"teampulse/internal/contract"
	"teampulse/internal/outwriter"
)

// analyzeCmd runs the workload analysis pipeline for one or more spaces.
var analyzeCmd = &cobra.Command{
	Use:     "analyze <space-id> [space-id...]",
	Short:   "Analyze team workload for the given spaces",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		deps, err := buildDependencies()
		if err != nil {
			return err
		}
		defer func() { _ = deps.Runs.Close() }()

		start := time.Now()
		result, err := core.GetAnalysis(rootCtx, cfg, deps)
		if err != nil {
			if errors.Is(err, contract.ErrNoData) {
				fmt.Fprintf(os.Stderr, "No data available for %s.\n", cfg.ScopeDate)
				return nil
			}
			return err
		}

		return outwriter.WriteAnalysisResult(result, cfg, time.Since(start))
	},
}
