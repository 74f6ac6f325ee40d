package lckapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/platform/logging"
	"github.com/junseong2im/Esports/internal/platform/resilience"
	"github.com/junseong2im/Esports/internal/usecase"
)

const (
	defaultBaseURL    = "https://esportscalender-nzpn.onrender.com"
	defaultTimeout    = 20 * time.Second
	defaultMaxRetries = 2
	defaultRetryDelay = 2 * time.Second

	maxResponseBytes = 6 << 20
)

var errTransient = crerr.New("schedule backend transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	RateLimit      rate.Limit
	RateBurst      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the schedule backend: account endpoints, schedule reads,
// crawl triggers, and the Discord alert subscription surface. Credentials
// are explicit per call; there is no ambient session state.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	retryDelay     time.Duration
	limiter        *rate.Limiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxRetries,
		retryDelay:     retryDelay,
		limiter:        limiter,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// RemoteError is a non-2xx upstream response. The upstream body text is
// preferred as the user-facing message when present.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("upstream status=%d", e.Status)
	}
	return fmt.Sprintf("upstream status=%d: %s", e.Status, e.Body)
}

// Message is what a renderer should display.
func (e *RemoteError) Message(fallback string) string {
	if trimmed := strings.TrimSpace(e.Body); trimmed != "" {
		return trimmed
	}
	return fallback
}

// FetchSchedule lists matches, optionally restricted to [from, to] dates in
// YYYY-MM-DD form.
func (c *Client) FetchSchedule(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
	query := url.Values{}
	if strings.TrimSpace(from) != "" {
		query.Set("from", strings.TrimSpace(from))
	}
	if strings.TrimSpace(to) != "" {
		query.Set("to", strings.TrimSpace(to))
	}

	raw, err := c.getShared(ctx, "/api/schedules", query, sess)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	var out []match.Raw
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode schedule payload: %w", err)
	}
	return out, nil
}

// FetchTeamSchedule lists matches for one team code.
func (c *Client) FetchTeamSchedule(ctx context.Context, sess session.Session, team string) ([]match.Raw, error) {
	team = strings.TrimSpace(team)
	if team == "" {
		return nil, fmt.Errorf("%w: team is required", usecase.ErrInvalidInput)
	}

	raw, err := c.getShared(ctx, "/api/schedules/team/"+url.PathEscape(team), nil, sess)
	if err != nil {
		return nil, fmt.Errorf("fetch team schedule team=%s: %w", team, err)
	}

	var out []match.Raw
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode team schedule payload: %w", err)
	}
	return out, nil
}

// TriggerCrawl asks the backend to refresh its own store from the upstream
// source. The crawl is asynchronous: a 2xx here does not mean fresh rows are
// readable yet.
func (c *Client) TriggerCrawl(ctx context.Context, sess session.Session, startDate, endDate string) error {
	query := url.Values{}
	if strings.TrimSpace(startDate) != "" {
		query.Set("startDate", strings.TrimSpace(startDate))
	}
	if strings.TrimSpace(endDate) != "" {
		query.Set("endDate", strings.TrimSpace(endDate))
	}

	if _, err := c.do(ctx, http.MethodPost, "/api/schedules/crawl", query, sess, nil); err != nil {
		return fmt.Errorf("trigger crawl: %w", err)
	}
	return nil
}

// CheckReachable distinguishes "service down" from "no data" with a minimal
// unauthenticated read.
func (c *Client) CheckReachable(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodGet, "/api/users", nil, session.None(), nil); err != nil {
		return fmt.Errorf("reachability check: %w", err)
	}
	return nil
}

// getShared deduplicates concurrent identical GETs through single-flight.
// The key includes the credential so callers never share a response issued
// under someone else's session.
func (c *Client) getShared(ctx context.Context, path string, query url.Values, sess session.Session) ([]byte, error) {
	key := string(sess.Kind) + ":" + sess.LoginID + ":" + path
	if query != nil {
		key += "?" + query.Encode()
	}

	out, err, _ := c.flight.Do(key, func() (any, error) {
		return c.do(ctx, http.MethodGet, path, query, sess, nil)
	})
	if err != nil {
		return nil, err
	}
	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

// do performs one call with the bounded fixed-delay retry policy. Endpoints
// other than signup/login and the reachability probe require a credential;
// a missing one fails before any network cost.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, sess session.Session, body []byte) ([]byte, error) {
	authHeader, authRequired := "", requiresAuth(path)
	if authRequired {
		header, ok := sess.AuthorizationHeader()
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", usecase.ErrAuthRequired, method, path)
		}
		authHeader = header
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "schedule backend circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return nil, fmt.Errorf("%w: schedule backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if query != nil {
		if encoded := query.Encode(); encoded != "" {
			fullURL += "?" + encoded
		}
	}

	raw, err := c.executeRequest(ctx, method, fullURL, authHeader, body)
	if c.circuitEnabled {
		if err != nil && stderrors.Is(err, errTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL, authHeader string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		var reader io.Reader
		if len(body) > 0 {
			reader = strings.NewReader(string(body))
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json, text/plain")
		if len(body) > 0 {
			req.Header.Set("Content-Type", "application/json")
		}
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: %v", errTransient, &RemoteError{Status: resp.StatusCode, Body: abbreviateBody(raw)})
			default:
				return nil, &RemoteError{Status: resp.StatusCode, Body: abbreviateBody(raw)}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("schedule backend request failed")
	}
	c.logger.WarnContext(ctx, "schedule backend request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// requiresAuth: signup, login and the diagnostic user listing are the only
// open endpoints observed on this backend.
func requiresAuth(path string) bool {
	switch path {
	case "/api/users/signup", "/api/users/login", "/api/users":
		return false
	default:
		return true
	}
}

func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusGatewayTimeout,
		http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	const limit = 512
	value := strings.TrimSpace(string(raw))
	if len(value) > limit {
		return value[:limit] + "...(truncated)"
	}
	return value
}
