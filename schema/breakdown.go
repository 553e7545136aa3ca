package schema

// BreakdownKey identifies one additive term of the workload score. The scorer
// records each term's numeric contribution under these keys so narrative
// layers can audit how a score was assembled.
type BreakdownKey string

// Score breakdown terms.
const (
	BreakdownActive       BreakdownKey = "active"
	BreakdownUrgent       BreakdownKey = "urgent"
	BreakdownHighPriority BreakdownKey = "high_priority"
	BreakdownDueSoon      BreakdownKey = "due_soon"
)

// AllBreakdownKeys lists the score terms in presentation order.
var AllBreakdownKeys = []BreakdownKey{
	BreakdownActive,
	BreakdownUrgent,
	BreakdownHighPriority,
	BreakdownDueSoon,
}
