package core

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// Rule-based heuristic bounds.
const (
	weightBaseline     = 5
	weightMin          = 1
	weightMax          = 10
	weightCenter       = 5.0 // multiplier = score / weightCenter, centered at 1.0
	weightPromptTokens = 150
	minDescriptionLen  = 20
)

var integerPattern = regexp.MustCompile(`\b([1-9]|10)\b`)

// ComputeWeights produces one complexity weight per project. The AI strategy
// runs only when a provider is supplied and the description is substantial;
// everything else takes the rule-based path.
func ComputeWeights(ctx context.Context, prov contract.IntelligenceProvider, cfg *contract.Config, projects map[string]schema.ProjectAnalytics) map[string]schema.ComplexityWeight {
	weights := make(map[string]schema.ComplexityWeight, len(projects))
	for id, p := range projects {
		weights[id] = computeWeight(ctx, prov, cfg, p)
	}
	return weights
}

func computeWeight(ctx context.Context, prov contract.IntelligenceProvider, cfg *contract.Config, p schema.ProjectAnalytics) schema.ComplexityWeight {
	if prov != nil && len(strings.TrimSpace(p.Description)) >= minDescriptionLen {
		if w, err := aiWeight(ctx, prov, cfg, p); err == nil {
			return w
		}
	}
	return ruleBasedWeight(cfg, p)
}

// aiWeight asks the provider for a 1-10 score and extracts the first integer
// in range from the reply. A reply with no usable integer falls back to
// keyword scoring over the reply text itself.
func aiWeight(ctx context.Context, prov contract.IntelligenceProvider, cfg *contract.Config, p schema.ProjectAnalytics) (schema.ComplexityWeight, error) {
	prompt := fmt.Sprintf(
		"Rate the technical complexity of this project on a scale of 1-10 and explain briefly.\n"+
			"Project: %s\nDescription: %s\nTask count: %d\n"+
			"Reply with the integer first.",
		p.Name, p.Description, p.TaskCount)

	reply, err := prov.Complete(ctx, prompt, weightPromptTokens)
	if err != nil {
		return schema.ComplexityWeight{}, err
	}

	score, ok := extractScore(reply)
	if !ok {
		score = keywordScore(cfg, p.Name+" "+reply, p.TaskCount)
	}
	return schema.ComplexityWeight{
		ProjectID:   p.ID,
		Score:       score,
		Level:       schema.ComplexityLevel(score),
		Explanation: firstLine(reply),
		Method:      schema.WeightAI,
	}, nil
}

// ruleBasedWeight is the always-available strategy: keyword and task-count
// heuristics around a baseline of 5, clamped to [1,10].
func ruleBasedWeight(cfg *contract.Config, p schema.ProjectAnalytics) schema.ComplexityWeight {
	text := strings.ToLower(p.Name + " " + p.Description)
	score := keywordScore(cfg, text, p.TaskCount)
	return schema.ComplexityWeight{
		ProjectID:   p.ID,
		Score:       score,
		Level:       schema.ComplexityLevel(score),
		Explanation: fmt.Sprintf("heuristic score from %d tasks and description keywords", p.TaskCount),
		Method:      schema.WeightRuleBased,
	}
}

func keywordScore(cfg *contract.Config, text string, taskCount int) int {
	lower := strings.ToLower(text)
	score := weightBaseline

	score += min(countMatches(lower, cfg.HighKeywords), 3)
	score -= min(countMatches(lower, cfg.LowKeywords), 2)
	score += min(countMatches(lower, cfg.ScopeKeywords), 2)
	score -= min(countMatches(lower, cfg.NarrowKeywords), 1)

	switch {
	case taskCount > 25:
		score += 2
	case taskCount > 15:
		score++
	case taskCount < 3:
		score--
	}

	return clampScore(score)
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}

func clampScore(score int) int {
	if score < weightMin {
		return weightMin
	}
	if score > weightMax {
		return weightMax
	}
	return score
}

// extractScore finds the first standalone integer in [1,10] in the text.
func extractScore(text string) (int, bool) {
	match := integerPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < weightMin || n > weightMax {
		return 0, false
	}
	return n, true
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return contract.TruncateText(line, 200)
}

// ApplyWeights reweights each member's score: every per-project term block is
// multiplied by its project's weight multiplier (score/5.0, so 1.0 is
// neutral), then re-summed. The weighted total replaces WorkloadScore while
// BaseScore keeps the raw value.
func ApplyWeights(members map[string]*schema.MemberWorkload, weights map[string]schema.ComplexityWeight) {
	if len(weights) == 0 {
		return
	}
	for _, mw := range members {
		weighted := 0.0
		for projectID, terms := range mw.ProjectTerms {
			multiplier := 1.0
			if w, ok := weights[projectID]; ok {
				multiplier = float64(w.Score) / weightCenter
			}
			termScore, _ := ComputeScore(terms)
			weighted += termScore * multiplier
		}
		mw.WorkloadScore = weighted
		mw.Status = ClassifyWorkload(weighted)
	}
}
