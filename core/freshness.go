package core

import (
	"time"

	"teampulse/internal/contract"
	"teampulse/schema"
)

// FreshnessState classifies a request against the cache, given the scope
// date and the current time.
type FreshnessState string

// Freshness states. Exactly one applies per request.
const (
	StateFutureInvalid          FreshnessState = "FUTURE_INVALID"
	StatePastDate               FreshnessState = "PAST_DATE"
	StateTodayFresh             FreshnessState = "TODAY_FRESH"
	StateTodayStaleOutsideHours FreshnessState = "TODAY_STALE_OUTSIDE_HOURS"
	StateTodayRegenerate        FreshnessState = "TODAY_REGENERATE"
)

// EvaluateFreshness runs the freshness state machine. latest is the newest
// same-day snapshot, or nil when none exists. Live fetches only ever reflect
// "now", so past dates never regenerate; and outside working hours a stale
// same-day snapshot is preferred over a fetch unless the caller forces one.
func EvaluateFreshness(cfg *contract.Config, latest *schema.Snapshot, now time.Time) FreshnessState {
	switch contract.CompareScopeDate(cfg.ScopeDate, now) {
	case 1:
		return StateFutureInvalid
	case -1:
		return StatePastDate
	}

	if cfg.ForceRefresh {
		return StateTodayRegenerate
	}
	if latest != nil && now.Sub(latest.GeneratedAt) < cfg.FreshWindow {
		return StateTodayFresh
	}
	if !contract.WithinWorkingHours(now, cfg.WorkHoursStart, cfg.WorkHoursEnd) {
		return StateTodayStaleOutsideHours
	}
	return StateTodayRegenerate
}
