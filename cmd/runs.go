package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"teampulse/internal/outwriter"
	"teampulse/internal/parquet"
	"teampulse/internal/runstore"
)

// runsCmd groups run-history commands.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and export the analysis run history",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// runsStatusCmd reports the state of the run-history store.
var runsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show run-history store status",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := runstore.NewStore(cfg.HistoryDBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			return err
		}
		return outwriter.WriteRunStatus(status, cfg)
	},
}

// runsListCmd lists all recorded runs.
var runsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recorded analysis runs",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := runstore.NewStore(cfg.HistoryDBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		records, err := store.GetAllRuns()
		if err != nil {
			return err
		}
		return outwriter.WriteRunList(records, cfg)
	},
}

// runsExportCmd exports the run history to a Parquet file.
var runsExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export run history to Parquet",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.OutputFile == "" {
			return fmt.Errorf("runs export requires --output-file")
		}

		store, err := runstore.NewStore(cfg.HistoryDBPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		records, err := store.GetAllRuns()
		if err != nil {
			return err
		}
		if err := parquet.WriteRunRowsParquet(parquet.ConvertRunRecords(records), cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Exported %d run(s) to %s\n", len(records), cfg.OutputFile)
		return nil
	},
}
