// Package fetch retrieves the source description and the version page over
// HTTP with an explicit, bounded retry policy.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/erraggy/sdkgen"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// Fetcher retrieves the body of a URL as text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RetryPolicy lists the waits between attempts. A policy with n waits makes
// at most n+1 attempts.
type RetryPolicy struct {
	Backoff []time.Duration
}

// DefaultRetryPolicy waits 1s, 2s and 4s between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Backoff: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}}
}

// Attempts returns the maximum number of attempts.
func (r RetryPolicy) Attempts() int {
	return len(r.Backoff) + 1
}

// DefaultMaxBodySize bounds the size of a fetched body.
const DefaultMaxBodySize int64 = 64 << 20

// HTTPFetcher is a Fetcher backed by an http.Client.
type HTTPFetcher struct {
	// Client performs the requests. If nil, a client with a 30 second
	// timeout is used.
	Client *http.Client
	// Retry is the backoff schedule for transport errors, 429 and 5xx.
	Retry RetryPolicy
	// Limiter, if set, paces every attempt.
	Limiter *rate.Limiter
	// UserAgent is sent with every request.
	UserAgent string
	// MaxBodySize bounds the body; 0 means DefaultMaxBodySize.
	MaxBodySize int64
	// Logger reports retries. If nil, logging is disabled.
	Logger parser.Logger
}

// NewHTTPFetcher returns a fetcher with the default retry policy, at most
// two requests per second and the sdkgen user agent.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: 30 * time.Second},
		Retry:     DefaultRetryPolicy(),
		Limiter:   rate.NewLimiter(rate.Limit(2), 1),
		UserAgent: sdkgen.UserAgent(),
	}
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Fetch performs a GET, retrying transient failures per the retry policy.
// Client errors (4xx other than 429) are not retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	log := f.Logger
	if log == nil {
		log = parser.NopLogger{}
	}

	attempts := f.Retry.Attempts()
	var lastErr error
	var lastStatus int
	for attempt := 1; attempt <= attempts; attempt++ {
		if f.Limiter != nil {
			if err := f.Limiter.Wait(ctx); err != nil {
				return "", &sdkerrors.FetchError{URL: url, Attempts: attempt - 1, StatusCode: lastStatus, Cause: err}
			}
		}

		body, status, err := f.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr, lastStatus = err, status
		if !retryable(status) || ctx.Err() != nil {
			return "", &sdkerrors.FetchError{URL: url, Attempts: attempt, StatusCode: status, Cause: err}
		}
		if attempt == attempts {
			break
		}

		wait := f.Retry.Backoff[attempt-1]
		log.Warn("fetch failed, retrying", "url", url, "attempt", attempt, "wait", wait, "error", err)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", &sdkerrors.FetchError{URL: url, Attempts: attempt, StatusCode: status, Cause: ctx.Err()}
		case <-timer.C:
		}
	}
	return "", &sdkerrors.FetchError{URL: url, Attempts: attempts, StatusCode: lastStatus, Cause: lastErr}
}

func (f *HTTPFetcher) get(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}

	limit := f.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", resp.StatusCode, err
	}
	if int64(len(data)) > limit {
		return "", resp.StatusCode, fmt.Errorf("response exceeds %d bytes", limit)
	}
	return string(data), resp.StatusCode, nil
}

// retryable reports whether a failed attempt with this status may succeed
// later. Status 0 means the request never got a response.
func retryable(status int) bool {
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}
