package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"teampulse/internal/outwriter"
	"teampulse/internal/snapstore"
)

// snapshotsCmd groups snapshot cache management commands.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect and manage the snapshot cache",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// snapshotsListCmd lists stored snapshots, newest first. With space
// arguments it narrows to that namespace; without, it lists everything.
var snapshotsListCmd = &cobra.Command{
	Use:     "list [space-id...]",
	Short:   "List stored snapshots",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := snapstore.NewStore(cfg.CacheDir, cfg.Retention)
		infos, err := store.List(cfg.Namespace())
		if err != nil {
			return err
		}
		return outwriter.WriteSnapshotList(infos, cfg)
	},
}

// snapshotsClearCmd removes stored snapshots for a namespace, or all of them.
var snapshotsClearCmd = &cobra.Command{
	Use:     "clear [space-id...]",
	Short:   "Delete stored snapshots",
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := snapstore.NewStore(cfg.CacheDir, cfg.Retention)
		if err := store.Clear(cfg.Namespace()); err != nil {
			return err
		}
		target := cfg.Namespace()
		if target == "" {
			target = "all namespaces"
		}
		fmt.Fprintf(os.Stderr, "Cleared snapshots for %s.\n", target)
		return nil
	},
}
