// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"teampulse/schema"
)

// TaskSource defines the operations the pipeline needs from the upstream
// project-management API. This allows the core analysis logic to be tested
// without a live upstream.
type TaskSource interface {
	// FetchSpaceInfo returns metadata for a space. Errors carry upstream HTTP
	// semantics: ErrUpstreamAuth, ErrUpstreamNotFound, ErrUpstreamRateLimited
	// or ErrUpstreamTransient.
	FetchSpaceInfo(ctx context.Context, spaceID string) (schema.SpaceInfo, error)

	// FetchLists returns the task lists of a space, including lists nested in
	// folders, excluding archived, empty and name-excluded lists.
	FetchLists(ctx context.Context, spaceID string) ([]schema.TaskList, error)

	// FetchTasks returns the tasks of a list, pre-filtered to the supplied
	// status labels (matched case-insensitively) and normalized into the
	// closed status/priority sets.
	FetchTasks(ctx context.Context, listID string, statusFilter []string) ([]schema.Task, error)
}

// IntelligenceProvider is a hosted language-model backend used by the
// complexity weighter and the summary pipeline. Complete returns the model's
// text, or an error wrapping ErrProviderSoft (try the next provider) or
// ErrProviderHard (abort the chain).
type IntelligenceProvider interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// SnapshotStore persists full analysis results keyed by generation timestamp
// and exposes the freshness queries the cache layer needs.
type SnapshotStore interface {
	// Write persists one snapshot under the namespace and triggers retention
	// pruning. It returns the path of the written file.
	Write(namespace string, snap *schema.Snapshot) (string, error)

	// LatestForDate returns the most recent snapshot whose scope date equals
	// scopeDate, or ErrNoData when none exists.
	LatestForDate(namespace, scopeDate string) (*schema.Snapshot, error)

	// List returns stored snapshots for a namespace, newest first. An empty
	// namespace lists every namespace.
	List(namespace string) ([]schema.SnapshotInfo, error)

	// Clear removes all snapshots for a namespace; an empty namespace clears
	// everything.
	Clear(namespace string) error
}

// RunStore tracks completed analysis runs for reporting and export.
type RunStore interface {
	BeginRun(startTime time.Time, spaces []string) (int64, error)
	EndRun(runID int64, endTime time.Time, result *schema.AnalysisResult) error
	GetStatus() (schema.RunStatus, error)
	GetAllRuns() ([]schema.RunRecord, error)
	Close() error
}

// Dependencies bundles the collaborators a pipeline run needs. Wiring them
// explicitly keeps the core free of process-wide singletons.
type Dependencies struct {
	Source    TaskSource
	Snapshots SnapshotStore
	Runs      RunStore // optional; nil disables run tracking
	Providers []IntelligenceProvider
	Now       func() time.Time // nil means time.Now
}

// Clock returns the dependency's time source, defaulting to time.Now.
func (d *Dependencies) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}
