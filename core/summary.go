package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"teampulse/internal/contract"
	"teampulse/schema"
)

const summaryMaxTokens = 400

// BuildSummary runs the narrative pipeline: the ordered provider chain first,
// then the rule-based analysis which always runs and always succeeds for a
// structurally valid result. A soft provider failure advances the chain; a
// hard failure abandons it. attempts records each provider outcome for
// debug diagnostics.
func BuildSummary(ctx context.Context, providers []contract.IntelligenceProvider, result *schema.AnalysisResult) (schema.TeamSummary, []string) {
	summary := schema.TeamSummary{}
	var attempts []string

	prompt := buildSummaryPrompt(result)
	for _, prov := range providers {
		text, err := prov.Complete(ctx, prompt, summaryMaxTokens)
		if err == nil {
			summary.AIText = strings.TrimSpace(text)
			summary.AIProvider = prov.Name()
			attempts = append(attempts, prov.Name()+": ok")
			break
		}
		attempts = append(attempts, fmt.Sprintf("%s: %v", prov.Name(), err))
		if errors.Is(err, contract.ErrProviderHard) {
			break
		}
	}

	summary.RuleBased = buildRuleBasedAnalysis(result)

	switch {
	case summary.AIText != "":
		summary.Confidence = schema.ConfidenceHigh
	case summary.RuleBased.Available:
		summary.Confidence = schema.ConfidenceEnhanced
	default:
		summary.Confidence = schema.ConfidenceLow
	}
	return summary, attempts
}

// buildSummaryPrompt renders a bounded prompt from the aggregate statistics,
// never the full task payload.
func buildSummaryPrompt(result *schema.AnalysisResult) string {
	ov := result.Overview
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize this team workload analysis in 3-4 sentences for a team lead.\n")
	fmt.Fprintf(&b, "Members: %d, active tasks: %d, urgent: %d, due soon: %d.\n",
		ov.TotalMembers, ov.TotalActiveTasks, ov.TotalUrgentTasks, ov.TotalDueSoonTasks)
	fmt.Fprintf(&b, "Health score: %.1f/100. Average workload score: %.1f.\n", ov.HealthScore, ov.AverageScore)
	fmt.Fprintf(&b, "Band counts: %d overloaded, %d high, %d balanced, %d light.\n",
		ov.StatusCounts[schema.WorkloadOverloaded], ov.StatusCounts[schema.WorkloadHigh],
		ov.StatusCounts[schema.WorkloadBalanced], ov.StatusCounts[schema.WorkloadLight])
	fmt.Fprintf(&b, "Overdue tasks: %d. Recommendations raised: %d.\n",
		len(result.Timeline.OverdueTasks), len(result.Recommendations))
	b.WriteString("Focus on risks and one concrete next step.")
	return b.String()
}

// buildRuleBasedAnalysis is the terminal, dependency-free stage. Its only
// failure mode is a structurally empty result, which yields an explicit
// "analysis unavailable" object instead of an error.
func buildRuleBasedAnalysis(result *schema.AnalysisResult) schema.RuleBasedAnalysis {
	if result == nil || result.Overview.TotalMembers == 0 {
		return schema.RuleBasedAnalysis{
			Available:  false,
			Assessment: "analysis unavailable: no member data",
		}
	}

	analysis := schema.RuleBasedAnalysis{Available: true}
	ov := result.Overview

	analysis.ScoreVariance = scoreVariance(result.Members, ov.AverageScore)
	if ov.TotalEstimateMinutes > 0 {
		analysis.UtilizationRate = float64(ov.TotalSpentMinutes) / float64(ov.TotalEstimateMinutes)
	}
	if ov.TotalActiveTasks > 0 {
		analysis.PriorityPressure = float64(ov.TotalUrgentTasks) / float64(ov.TotalActiveTasks)
	}
	analysis.EstimationAccuracy = estimationAccuracy(result.Members)

	analysis.Findings = buildFindings(result, analysis)
	analysis.Assessment = buildAssessment(ov, analysis)
	return analysis
}

func scoreVariance(members map[string]*schema.MemberWorkload, mean float64) float64 {
	if len(members) == 0 {
		return 0
	}
	sum := 0.0
	for _, mw := range members {
		d := mw.WorkloadScore - mean
		sum += d * d
	}
	return sum / float64(len(members))
}

// estimationAccuracy is the share of members whose logged time stayed within
// their estimates.
func estimationAccuracy(members map[string]*schema.MemberWorkload) float64 {
	if len(members) == 0 {
		return 0
	}
	within := 0
	for _, mw := range members {
		if mw.RemainingMinutes >= 0 {
			within++
		}
	}
	return float64(within) / float64(len(members))
}

func buildFindings(result *schema.AnalysisResult, analysis schema.RuleBasedAnalysis) []string {
	var findings []string
	ov := result.Overview

	if n := ov.StatusCounts[schema.WorkloadOverloaded]; n > 0 {
		findings = append(findings, fmt.Sprintf("%d member(s) overloaded", n))
	}
	if math.Sqrt(analysis.ScoreVariance) > imbalanceSpread/2 {
		findings = append(findings, fmt.Sprintf("uneven workload distribution (stddev %.1f)", math.Sqrt(analysis.ScoreVariance)))
	}
	if analysis.UtilizationRate > 1.0 {
		findings = append(findings, fmt.Sprintf("team is %.0f%% over its time estimates", (analysis.UtilizationRate-1.0)*100))
	}
	if analysis.PriorityPressure > 0.25 {
		findings = append(findings, fmt.Sprintf("%.0f%% of active tasks are urgent", analysis.PriorityPressure*100))
	}
	if n := len(result.Timeline.OverdueTasks); n > 0 {
		findings = append(findings, fmt.Sprintf("%d task(s) overdue", n))
	}
	if len(findings) == 0 {
		findings = append(findings, "workload is evenly distributed with no pressing risks")
	}
	return findings
}

func buildAssessment(ov schema.Overview, analysis schema.RuleBasedAnalysis) string {
	health := contract.GetHealthLabel(ov.HealthScore)
	return fmt.Sprintf("Team of %d is %s (health %.0f/100) with %d active tasks; %s.",
		ov.TotalMembers, health, ov.HealthScore, ov.TotalActiveTasks,
		strings.Join(analysis.Findings, "; "))
}
