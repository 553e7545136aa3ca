package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teampulse/internal/contract"
	"teampulse/internal/upstream"
	"teampulse/schema"
)

// GetAnalysis is the request entry point. It runs the freshness state
// machine against the snapshot cache, and either serves a stored result or
// executes the live pipeline and persists the outcome. Past dates never
// trigger a live fetch; future dates are rejected outright.
func GetAnalysis(ctx context.Context, cfg *contract.Config, deps *contract.Dependencies) (*schema.AnalysisResult, error) {
	now := deps.Clock()()
	namespace := cfg.Namespace()

	latest, err := deps.Snapshots.LatestForDate(namespace, cfg.ScopeDate)
	if err != nil && !errors.Is(err, contract.ErrNoData) {
		return nil, fmt.Errorf("snapshot lookup: %w", err)
	}

	state := EvaluateFreshness(cfg, latest, now)
	contract.LogDebug(cfg.Debug, "freshness state %s for namespace %s", state, namespace)
	switch state {
	case StateFutureInvalid:
		return nil, fmt.Errorf("%w: scope date %s has not elapsed yet", contract.ErrInvalidRequest, cfg.ScopeDate)

	case StatePastDate:
		if latest == nil {
			return nil, fmt.Errorf("%w: no snapshot for %s", contract.ErrNoData, cfg.ScopeDate)
		}
		return serveSnapshot(cfg, latest, state), nil

	case StateTodayFresh:
		return serveSnapshot(cfg, latest, state), nil

	case StateTodayStaleOutsideHours:
		if latest != nil {
			return serveSnapshot(cfg, latest, state), nil
		}
		// No same-day snapshot and no fetch allowed: serve demo data.
		return runDemo(ctx, cfg, deps, now, string(state)), nil

	default: // StateTodayRegenerate
		return runLive(ctx, cfg, deps, now)
	}
}

// serveSnapshot adapts a stored snapshot into a cache-sourced result.
func serveSnapshot(cfg *contract.Config, snap *schema.Snapshot, state FreshnessState) *schema.AnalysisResult {
	result := snap.Result
	result.Source = schema.SourceCache
	if cfg.Debug {
		result.Diagnostics = &schema.Diagnostics{
			FreshnessState: string(state),
			CacheDecision:  fmt.Sprintf("served snapshot generated at %s", snap.GeneratedAt.Format(contract.DateTimeFormat)),
		}
	} else {
		result.Diagnostics = nil
	}
	return &result
}

// runLive executes the full pipeline: sequential per-space fetches with an
// inter-space delay, aggregation, and persistence of exactly one snapshot.
// An auth failure degrades the whole run to the demo dataset so the caller
// still receives a structurally valid result.
func runLive(ctx context.Context, cfg *contract.Config, deps *contract.Dependencies, now time.Time) (*schema.AnalysisResult, error) {
	diag := &schema.Diagnostics{
		FreshnessState: string(StateTodayRegenerate),
		CacheDecision:  "no fresh snapshot, live fetch",
		StatusFilter:   cfg.StatusFilter,
	}

	var runID int64
	if deps.Runs != nil {
		id, err := deps.Runs.BeginRun(now, cfg.SpaceIDs)
		if err != nil {
			contract.LogWarn("recording run start", err)
		} else {
			runID = id
		}
	}

	prov := weightProvider(cfg, deps)
	var analyses []*spaceAnalysis
	for i, spaceID := range cfg.SpaceIDs {
		if i > 0 && cfg.InterSpaceDelay > 0 {
			if err := sleepCtx(ctx, cfg.InterSpaceDelay); err != nil {
				return nil, err
			}
		}

		sa, err := analyzeSpace(ctx, deps.Source, prov, cfg, spaceID, now, diag)
		if err != nil {
			if errors.Is(err, contract.ErrUpstreamAuth) {
				contract.LogWarn("upstream rejected credentials, using demo data", err)
				return runDemo(ctx, cfg, deps, now, string(StateTodayRegenerate)), nil
			}
			if ctx.Err() != nil {
				return nil, err
			}
			contract.LogWarn(fmt.Sprintf("skipping space %s", spaceID), err)
			diag.SpacesSkipped = append(diag.SpacesSkipped, spaceID)
			continue
		}
		analyses = append(analyses, sa)
	}

	if len(analyses) == 0 {
		return nil, fmt.Errorf("%w: no space could be analyzed", contract.ErrNoData)
	}

	result := composeResult(ctx, cfg, deps, analyses, now, schema.SourceFresh, diag)
	if cfg.Debug {
		result.Diagnostics = diag
	}

	persistSnapshot(cfg, deps, result, now)
	finishRun(deps, runID, result)
	return result, nil
}

// runDemo reruns the pipeline against the built-in demo dataset. Demo
// results are never persisted and never recorded as runs.
func runDemo(ctx context.Context, cfg *contract.Config, deps *contract.Dependencies, now time.Time, state string) *schema.AnalysisResult {
	diag := &schema.Diagnostics{
		FreshnessState: state,
		CacheDecision:  "demo dataset fallback",
		StatusFilter:   cfg.StatusFilter,
	}

	demo := upstream.NewDemoSource(deps.Clock())
	var analyses []*spaceAnalysis
	for _, spaceID := range cfg.SpaceIDs {
		sa, err := analyzeSpace(ctx, demo, nil, cfg, spaceID, now, diag)
		if err != nil {
			// The demo source cannot fail; guard anyway.
			continue
		}
		analyses = append(analyses, sa)
	}

	result := composeResult(ctx, cfg, deps, analyses, now, schema.SourceDemo, diag)
	if cfg.Debug {
		result.Diagnostics = diag
	}
	return result
}

// persistSnapshot writes exactly one snapshot for a successful live run.
// Write failures degrade to a warning; the result is still returned.
func persistSnapshot(cfg *contract.Config, deps *contract.Dependencies, result *schema.AnalysisResult, now time.Time) {
	snap := &schema.Snapshot{
		GeneratedAt: now,
		ScopeDate:   result.ScopeDate,
		Result:      *result,
	}
	// Snapshots store the core result, not the per-request diagnostics.
	snap.Result.Diagnostics = nil

	path, err := deps.Snapshots.Write(cfg.Namespace(), snap)
	if err != nil {
		contract.LogWarn("persisting snapshot", err)
		return
	}
	contract.LogDebug(cfg.Debug, "snapshot written to %s", path)
}

func finishRun(deps *contract.Dependencies, runID int64, result *schema.AnalysisResult) {
	if deps.Runs == nil || runID == 0 {
		return
	}
	if err := deps.Runs.EndRun(runID, deps.Clock()(), result); err != nil {
		contract.LogWarn("recording run end", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
