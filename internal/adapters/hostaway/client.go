// internal/adapters/hostaway/client.go
package hostaway

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

const service = "hostaway"

// Client reads reviews from the Hostaway API. Without credentials, or when a
// call fails, it serves the fallback source instead of surfacing the error.
type Client struct {
	base      string
	hc        *http.Client
	accountID string
	key       string
	rl        *rate.Limiter
	fallback  domain.HostawaySource
}

func New(base, accountID, key string, rps int, fallback domain.HostawaySource) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		hc:        &http.Client{Timeout: 20 * time.Second},
		accountID: accountID,
		key:       key,
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
		fallback:  fallback,
	}
}

func (c *Client) live() bool { return c.accountID != "" && c.key != "" }

// envelope is Hostaway's response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

var (
	ErrUnauthorized  = errors.New("hostaway: unauthorized")
	ErrForbidden     = errors.New("hostaway: forbidden")
	ErrBadEnvelope   = errors.New("hostaway: invalid response format")
	errNoCredentials = errors.New("hostaway: no credentials")
)

// ---- Public API ----

func (c *Client) FetchReviews(ctx context.Context, q domain.HostawayQuery) ([]domain.HostawayReview, error) {
	if !c.live() {
		return c.fallbackReviews(ctx, q, errNoCredentials)
	}

	params := url.Values{}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	u := c.base + "/reviews"
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}

	var out []domain.HostawayReview
	if err := c.getResult(ctx, u, "reviews", &out); err != nil {
		return c.fallbackReviews(ctx, q, err)
	}
	return out, nil
}

func (c *Client) FetchReviewByID(ctx context.Context, id int64) (domain.HostawayReview, error) {
	if !c.live() {
		return c.fallbackReview(ctx, id, errNoCredentials)
	}
	var out domain.HostawayReview
	err := c.getResult(ctx, fmt.Sprintf("%s/reviews/%d", c.base, id), "review", &out)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, domain.ErrNotFound):
		return domain.HostawayReview{}, fmt.Errorf("hostaway review %d: %w", id, err)
	default:
		return c.fallbackReview(ctx, id, err)
	}
}

// ---- Fallback ----

func (c *Client) fallbackReviews(ctx context.Context, q domain.HostawayQuery, cause error) ([]domain.HostawayReview, error) {
	c.noteFallback(cause)
	if c.fallback == nil {
		return nil, fmt.Errorf("hostaway reviews: %w: %w", domain.ErrUpstream, cause)
	}
	return c.fallback.FetchReviews(ctx, q)
}

func (c *Client) fallbackReview(ctx context.Context, id int64, cause error) (domain.HostawayReview, error) {
	c.noteFallback(cause)
	if c.fallback == nil {
		return domain.HostawayReview{}, fmt.Errorf("hostaway review %d: %w: %w", id, domain.ErrUpstream, cause)
	}
	return c.fallback.FetchReviewByID(ctx, id)
}

func (c *Client) noteFallback(cause error) {
	if errors.Is(cause, errNoCredentials) {
		observability.ObserveFallback(service, "no_credentials")
		return
	}
	observability.ObserveFallback(service, "error")
	log.Error().Err(cause).Str("err_type", observability.LabelErr(cause)).Msg("hostaway request failed, falling back to mock reviews")
}

// ---- Internals ----

// getResult GETs url and decodes the "result" member of a success envelope into out.
func (c *Client) getResult(ctx context.Context, url, endpoint string, out any) error {
	var env envelope
	if err := c.get(ctx, url, endpoint, &env); err != nil {
		return err
	}
	if env.Status != "success" || len(env.Result) == 0 || string(env.Result) == "null" {
		return ErrBadEnvelope
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return nil
}

const maxAttempts = 4

// get performs a rate-limited GET and decodes a 200 body into out.
// 429 and transient 5xx are retried, honoring Retry-After when present.
func (c *Client) get(ctx context.Context, url, endpoint string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for attempt := range maxAttempts {
		status, wait, err := c.attempt(ctx, url, endpoint, out)
		if err == nil || !retryable(status) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
		if wait == 0 {
			wait = backoff(attempt)
		}
		log.Debug().Int("attempt", attempt+1).Int("status", status).Dur("wait", wait).Msg("hostaway retry")
		if attempt == maxAttempts-1 || !sleepCtx(ctx, wait) {
			break
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return lastErr
}

// attempt issues one request. status is 0 on transport failure; wait carries Retry-After.
func (c *Client) attempt(ctx context.Context, url, endpoint string, out any) (status int, wait time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return -1, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("X-Account-ID", c.accountID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "flex-reviews/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, endpoint, 0, time.Since(start))
		return 0, 0, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.StatusCode, 0, json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNotFound:
		return resp.StatusCode, 0, domain.ErrNotFound
	case http.StatusUnauthorized:
		return resp.StatusCode, 0, ErrUnauthorized
	case http.StatusForbidden:
		return resp.StatusCode, 0, ErrForbidden
	}
	if retryable(resp.StatusCode) {
		return resp.StatusCode, retryAfter(resp), fmt.Errorf("hostaway: remote %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, 0, fmt.Errorf("hostaway: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
}

// retryable covers transport failures (status 0), throttling and transient 5xx.
func retryable(status int) bool {
	switch status {
	case 0, http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// sleepCtx reports false if ctx ends before d elapses.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter reads Retry-After as delta-seconds or an HTTP date; 0 when unusable.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff is 200ms doubling per attempt, plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
