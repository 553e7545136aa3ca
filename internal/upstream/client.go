// Package upstream implements the task-source adapter over the
// project-management HTTP API.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"teampulse/internal/contract"
	"teampulse/schema"
)

const defaultTimeout = 60 * time.Second

// maxRetryDelay caps the exponential backoff between attempts.
const maxRetryDelay = 30 * time.Second

// Client talks to the upstream API with an explicit session: token, base URL
// and retry policy are fixed at construction, never read from globals.
type Client struct {
	baseURL       string
	token         string
	httpClient    *http.Client
	maxRetries    int
	baseDelay     time.Duration
	excludedLists []string
	sleep         func(ctx context.Context, d time.Duration) error
}

var _ contract.TaskSource = (*Client)(nil)

// NewClient creates an upstream client from the validated config.
func NewClient(cfg *contract.Config) *Client {
	return &Client{
		baseURL:       cfg.UpstreamBaseURL,
		token:         cfg.UpstreamToken,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		maxRetries:    cfg.MaxRetries,
		baseDelay:     cfg.RetryBaseDelay,
		excludedLists: cfg.ExcludedLists,
		sleep:         sleepCtx,
	}
}

// FetchSpaceInfo returns metadata for one space.
func (c *Client) FetchSpaceInfo(ctx context.Context, spaceID string) (schema.SpaceInfo, error) {
	var raw rawSpace
	if err := c.getJSON(ctx, fmt.Sprintf("/space/%s", url.PathEscape(spaceID)), nil, &raw); err != nil {
		return schema.SpaceInfo{}, fmt.Errorf("fetch space %s: %w", spaceID, err)
	}
	return normalizeSpace(raw), nil
}

// FetchLists returns the task lists of a space, flattening folder-nested
// lists and dropping archived, empty and name-excluded ones.
func (c *Client) FetchLists(ctx context.Context, spaceID string) ([]schema.TaskList, error) {
	var flat rawListPage
	if err := c.getJSON(ctx, fmt.Sprintf("/space/%s/list", url.PathEscape(spaceID)), nil, &flat); err != nil {
		return nil, fmt.Errorf("fetch lists for space %s: %w", spaceID, err)
	}

	var folders rawFolderPage
	if err := c.getJSON(ctx, fmt.Sprintf("/space/%s/folder", url.PathEscape(spaceID)), nil, &folders); err != nil {
		// Folderless spaces are common; a missing folder index is not fatal.
		if !errors.Is(err, contract.ErrUpstreamNotFound) {
			return nil, fmt.Errorf("fetch folders for space %s: %w", spaceID, err)
		}
	}

	all := flat.Lists
	for _, f := range folders.Folders {
		all = append(all, f.Lists...)
	}

	var out []schema.TaskList
	for _, raw := range all {
		list := normalizeList(raw, spaceID)
		if list.Archived || list.TaskCount == 0 {
			continue
		}
		if isExcludedName(list.Name, c.excludedLists) {
			continue
		}
		out = append(out, list)
	}
	return out, nil
}

// FetchTasks returns the tasks of a list, filtered to the supplied status
// labels and normalized into the closed status and priority sets.
func (c *Client) FetchTasks(ctx context.Context, listID string, statusFilter []string) ([]schema.Task, error) {
	query := url.Values{}
	for _, s := range statusFilter {
		query.Add("statuses[]", s)
	}
	query.Set("include_closed", "false")

	var tasks []schema.Task
	for page := 0; ; page++ {
		query.Set("page", strconv.Itoa(page))
		var raw rawTaskPage
		if err := c.getJSON(ctx, fmt.Sprintf("/list/%s/task", url.PathEscape(listID)), query, &raw); err != nil {
			return nil, fmt.Errorf("fetch tasks for list %s: %w", listID, err)
		}
		for _, rt := range raw.Tasks {
			task := normalizeTask(rt)
			if !matchesStatusFilter(rt.Status.Status, statusFilter) {
				continue
			}
			tasks = append(tasks, task)
		}
		if raw.LastPage || len(raw.Tasks) == 0 {
			break
		}
	}
	return tasks, nil
}

// getJSON issues a GET with auth, retrying retryable failures with bounded
// exponential backoff, and decodes the 2xx body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(c.baseDelay, attempt, lastErr)
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}

		err := c.doOnce(ctx, endpoint, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !contract.IsRetryable(err) {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", contract.ErrUpstreamTransient, err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", contract.ErrUpstreamTransient, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp); err != nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", contract.ErrUpstreamTransient, err)
	}
	return nil
}

// classifyStatus maps an HTTP response status into the shared error taxonomy.
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", contract.ErrUpstreamAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", contract.ErrUpstreamNotFound, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return &rateLimitError{retryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", contract.ErrUpstreamTransient, resp.StatusCode)
	default:
		return fmt.Errorf("%w: unexpected status %d", contract.ErrUpstreamTransient, resp.StatusCode)
	}
}

// rateLimitError carries the server's Retry-After hint through the taxonomy.
type rateLimitError struct {
	retryAfter time.Duration
}

func (e *rateLimitError) Error() string {
	if e.retryAfter > 0 {
		return fmt.Sprintf("upstream rate limited (retry after %s)", e.retryAfter)
	}
	return contract.ErrUpstreamRateLimited.Error()
}

func (e *rateLimitError) Unwrap() error { return contract.ErrUpstreamRateLimited }

// parseRetryAfter handles the delay-seconds form of the header. The HTTP-date
// form is rare on this API and falls back to the default backoff.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// backoffDelay computes the wait before retry attempt n (1-based), preferring
// an explicit Retry-After hint over the exponential schedule.
func backoffDelay(base time.Duration, attempt int, lastErr error) time.Duration {
	var rle *rateLimitError
	if errors.As(lastErr, &rle) && rle.retryAfter > 0 {
		return min(rle.retryAfter, maxRetryDelay)
	}
	delay := base << (attempt - 1)
	return min(delay, maxRetryDelay)
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

// isExcludedName reports whether a list name matches an exclusion entry,
// case-insensitively on substring.
func isExcludedName(name string, excludes []string) bool {
	lower := strings.ToLower(name)
	for _, ex := range excludes {
		ex = strings.ToLower(strings.TrimSpace(ex))
		if ex != "" && strings.Contains(lower, ex) {
			return true
		}
	}
	return false
}

// matchesStatusFilter reports whether a raw status label passes the filter.
// An empty filter passes everything.
func matchesStatusFilter(rawStatus string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if strings.EqualFold(strings.TrimSpace(rawStatus), strings.TrimSpace(f)) {
			return true
		}
	}
	return false
}
