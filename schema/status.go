package schema

import "strings"

// TaskStatus is the closed set of recognized task statuses. Upstream labels
// are free-form; NormalizeStatus maps them into this set at the adapter
// boundary and unrecognized values become StatusUnknown rather than erroring.
type TaskStatus string

// Recognized task statuses.
const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusReview     TaskStatus = "review"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
	StatusClosed     TaskStatus = "closed"
	StatusUnknown    TaskStatus = "unknown"
)

// statusAliases maps lowercase upstream labels to the closed set.
var statusAliases = map[string]TaskStatus{
	"open":        StatusOpen,
	"to do":       StatusOpen,
	"todo":        StatusOpen,
	"backlog":     StatusOpen,
	"in progress": StatusInProgress,
	"in_progress": StatusInProgress,
	"doing":       StatusInProgress,
	"active":      StatusInProgress,
	"review":      StatusReview,
	"in review":   StatusReview,
	"qa":          StatusReview,
	"blocked":     StatusBlocked,
	"on hold":     StatusBlocked,
	"done":        StatusDone,
	"complete":    StatusDone,
	"completed":   StatusDone,
	"closed":      StatusClosed,
	"archived":    StatusClosed,
}

// NormalizeStatus maps an arbitrary upstream status label into the closed
// TaskStatus set, case-insensitively. Unrecognized labels map to StatusUnknown.
func NormalizeStatus(raw string) TaskStatus {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}

// IsActiveStatus reports whether a status counts toward active workload.
func IsActiveStatus(s TaskStatus) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusReview, StatusBlocked:
		return true
	default:
		return false
	}
}

// PriorityLevel is the closed set of task priorities.
type PriorityLevel string

// Recognized priority levels.
const (
	PriorityNone    PriorityLevel = "none"
	PriorityNormal  PriorityLevel = "normal"
	PriorityHigh    PriorityLevel = "high"
	PriorityUrgent  PriorityLevel = "urgent"
	PriorityUnknown PriorityLevel = "unknown"
)

// priorityAliases maps lowercase upstream labels to the closed set.
var priorityAliases = map[string]PriorityLevel{
	"":       PriorityNone,
	"none":   PriorityNone,
	"low":    PriorityNormal,
	"normal": PriorityNormal,
	"medium": PriorityNormal,
	"high":   PriorityHigh,
	"urgent": PriorityUrgent,
	"1":      PriorityUrgent,
	"2":      PriorityHigh,
	"3":      PriorityNormal,
	"4":      PriorityNone,
}

// NormalizePriority maps an arbitrary upstream priority label into the closed
// PriorityLevel set. Unrecognized labels map to PriorityUnknown, which the
// scorer treats like PriorityNone.
func NormalizePriority(raw string) PriorityLevel {
	if p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return p
	}
	return PriorityUnknown
}

// WorkloadStatus classifies a member's workload score into a band.
type WorkloadStatus string

// Workload bands, lightest to heaviest.
const (
	WorkloadLight      WorkloadStatus = "light"
	WorkloadBalanced   WorkloadStatus = "balanced"
	WorkloadHigh       WorkloadStatus = "high"
	WorkloadOverloaded WorkloadStatus = "overloaded"
)

// ResultSource records how an AnalysisResult was obtained.
type ResultSource string

// Result provenance values.
const (
	SourceFresh ResultSource = "fresh"
	SourceCache ResultSource = "cache"
	SourceDemo  ResultSource = "demo"
)

// WeightMethod records which strategy produced a ComplexityWeight.
type WeightMethod string

// Weighting strategies.
const (
	WeightAI        WeightMethod = "ai"
	WeightRuleBased WeightMethod = "rule_based"
)

// SummaryConfidence reports how the narrative summary was produced.
type SummaryConfidence string

// Summary confidence levels.
const (
	ConfidenceHigh     SummaryConfidence = "high"
	ConfidenceEnhanced SummaryConfidence = "enhanced_rule_based"
	ConfidenceLow      SummaryConfidence = "low"
)

// RecommendationPriority ranks how urgently a recommendation should be acted on.
type RecommendationPriority string

// Recommendation priorities.
const (
	RecHigh   RecommendationPriority = "high"
	RecMedium RecommendationPriority = "medium"
	RecLow    RecommendationPriority = "low"
)
