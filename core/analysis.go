package core

import (
	"context"
	"fmt"
	"time"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// analyzeSpace runs the per-space portion of the pipeline: fetch space
// metadata, lists and tasks, fold them into scored member workloads and
// project analytics, and compute this space's complexity weights. A failed
// list fetch skips that list and continues with partial data.
func analyzeSpace(ctx context.Context, source contract.TaskSource, prov contract.IntelligenceProvider, cfg *contract.Config, spaceID string, now time.Time, diag *schema.Diagnostics) (*spaceAnalysis, error) {
	if _, err := source.FetchSpaceInfo(ctx, spaceID); err != nil {
		return nil, err
	}

	lists, err := source.FetchLists(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	descriptions := make(map[string]string, len(lists))
	for _, list := range lists {
		if list.Description != "" {
			descriptions[list.ID] = list.Description
		}
	}

	var tasks []schema.Task
	for _, list := range lists {
		listTasks, err := source.FetchTasks(ctx, list.ID, cfg.StatusFilter)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			contract.LogWarn(fmt.Sprintf("skipping list %s (%s)", list.Name, list.ID), err)
			diag.ListsSkipped = append(diag.ListsSkipped, list.ID)
			continue
		}
		diag.ListsFetched++
		diag.TasksFetched += len(listTasks)
		tasks = append(tasks, listTasks...)
	}

	sa := &spaceAnalysis{
		spaceID:  spaceID,
		members:  buildMembers(tasks, now),
		projects: buildProjects(tasks, descriptions),
		tasks:    tasks,
	}
	sa.weights = ComputeWeights(ctx, prov, cfg, sa.projects)
	return sa, nil
}

// composeResult assembles the full AnalysisResult from per-space analyses:
// aggregation, timeline merge, overview, load balance, recommendations and
// the narrative summary.
func composeResult(ctx context.Context, cfg *contract.Config, deps *contract.Dependencies, analyses []*spaceAnalysis, now time.Time, source schema.ResultSource, diag *schema.Diagnostics) *schema.AnalysisResult {
	members, projects, weights := aggregateSpaces(analyses)

	timeline := schema.TimelineAnalysis{DeadlinePressure: make(map[string]int)}
	for _, sa := range analyses {
		timeline = mergeTimelines(timeline, BuildTimeline(sa.tasks, now))
	}

	result := &schema.AnalysisResult{
		Members:     members,
		Projects:    projects,
		Weights:     weights,
		Timeline:    timeline,
		Spaces:      cfg.SpaceIDs,
		ScopeDate:   cfg.ScopeDate,
		GeneratedAt: now,
		Source:      source,
	}
	result.Overview = BuildOverview(members)
	result.LoadBalance = BuildLoadBalance(members)
	result.Recommendations = BuildRecommendations(result)

	summary, attempts := BuildSummary(ctx, deps.Providers, result)
	result.Summary = summary
	diag.ProviderAttempts = attempts
	return result
}

// weightProvider selects the provider the complexity weighter may use. AI
// weighting is opt-in; the first provider in the chain serves both roles.
func weightProvider(cfg *contract.Config, deps *contract.Dependencies) contract.IntelligenceProvider {
	if !cfg.AIWeighting || len(deps.Providers) == 0 {
		return nil
	}
	return deps.Providers[0]
}
