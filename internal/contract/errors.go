package contract

import "errors"

// Upstream and request error taxonomy. Callers classify failures with
// errors.Is so wrapped errors keep their HTTP semantics across layers.
var (
	// ErrUpstreamAuth is a 401/403 from the upstream API. Not retried; the
	// pipeline degrades to the demo dataset instead of failing the request.
	ErrUpstreamAuth = errors.New("upstream authorization failed")

	// ErrUpstreamRateLimited is a 429. Retried with backoff, honoring any
	// Retry-After hint.
	ErrUpstreamRateLimited = errors.New("upstream rate limited")

	// ErrUpstreamNotFound is a 404. Not retried; the resource is skipped.
	ErrUpstreamNotFound = errors.New("upstream resource not found")

	// ErrUpstreamTransient is a network error or 5xx. Retried with backoff up
	// to the configured attempt count, then the resource is skipped.
	ErrUpstreamTransient = errors.New("upstream transient failure")

	// ErrNoData marks a valid request with an empty result set, e.g. a past
	// date with no stored snapshot. A normal outcome, not a failure.
	ErrNoData = errors.New("no data available")

	// ErrInvalidRequest marks a request that can never succeed, e.g. a future
	// scope date or a malformed space id.
	ErrInvalidRequest = errors.New("invalid request")
)

// Intelligence-provider failure kinds for the summary chain.
var (
	// ErrProviderSoft means this provider failed but the next one may succeed
	// (timeout, rate limit, non-2xx, missing credentials).
	ErrProviderSoft = errors.New("provider soft failure")

	// ErrProviderHard means the chain should stop trying providers and go
	// straight to the rule-based stage.
	ErrProviderHard = errors.New("provider hard failure")
)

// IsRetryable reports whether an upstream error should be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUpstreamRateLimited) || errors.Is(err, ErrUpstreamTransient)
}
