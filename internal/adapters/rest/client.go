// internal/adapters/rest/client.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/metrics"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

const maxBodySize = 5 << 20

var errServerStatus = errors.New("backend answered with a server error")

var (
	_ ports.IdentityPort = (*Client)(nil)
	_ ports.OrderPort    = (*Client)(nil)
	_ ports.CatalogPort  = (*Client)(nil)
	_ ports.AccountPort  = (*Client)(nil)
)

type Config struct {
	APIBase         string
	AuthBase        string
	Timeout         time.Duration
	RateLimit       float64
	RateBurst       int
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Client talks to the storefront backend. Identity calls go to AuthBase,
// everything else to APIBase.
type Client struct {
	apiBase  string
	authBase string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[*response]
	metrics  metrics.Recorder
	logger   *slog.Logger
	norm     *normalizer
}

func NewClient(cfg Config, httpClient *http.Client, rec metrics.Recorder, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	authBase := cfg.AuthBase
	if authBase == "" {
		authBase = cfg.APIBase
	}

	c := &Client{
		apiBase:  cfg.APIBase,
		authBase: authBase,
		http:     httpClient,
		limiter:  rate.NewLimiter(limit, burst),
		metrics:  rec,
		logger:   logger,
		norm:     newNormalizer(),
	}
	c.breaker = gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:    "storefront-backend",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			c.metrics.RecordBreakerState(name, to.String())
		},
	})
	return c
}

type request struct {
	endpoint string
	method   string
	url      string
	token    string
	body     any
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// send performs one round trip. Transport failures, an open breaker and
// a cancelled limiter wait come back wrapped in domain.ErrNetwork; any
// HTTP answer, including 5xx, comes back as a response.
func (c *Client) send(ctx context.Context, req request) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNetwork, req.endpoint, err)
	}

	var payload []byte
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", req.endpoint, err)
		}
		payload = data
	}

	requestID := uuid.NewString()
	start := time.Now()
	resp, err := c.breaker.Execute(func() (*response, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("X-Request-ID", requestID)
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		if req.token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+req.token)
		}

		httpResp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
		if err != nil {
			return nil, err
		}
		r := &response{status: httpResp.StatusCode, body: data}
		if r.status >= http.StatusInternalServerError {
			return r, errServerStatus
		}
		return r, nil
	})

	status := 0
	if resp != nil {
		status = resp.status
	}
	c.metrics.ObserveBackendCall(req.endpoint, status, time.Since(start))

	if err != nil && !(errors.Is(err, errServerStatus) && resp != nil) {
		c.logger.Warn("backend request failed",
			"endpoint", req.endpoint, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrNetwork, req.endpoint, err)
	}
	c.logger.Debug("backend request",
		"endpoint", req.endpoint, "request_id", requestID, "status", resp.status,
		"duration_ms", time.Since(start).Milliseconds())
	return resp, nil
}

// fetch sends req and requires a 2xx answer.
func (c *Client) fetch(ctx context.Context, req request) (*response, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, failure(req.endpoint, resp)
	}
	return resp, nil
}

// failure maps a non-2xx answer: 404 is domain.ErrNotFound, a body naming
// a message is a *domain.RejectionError, anything else is a network error.
func failure(endpoint string, resp *response) error {
	var env messageEnvelope
	if err := json.Unmarshal(resp.body, &env); err == nil {
		if msg := env.text(); msg != "" {
			if resp.status == http.StatusNotFound {
				return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
			}
			return &domain.RejectionError{Status: resp.status, Message: msg}
		}
	}
	if resp.status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, endpoint)
	}
	return fmt.Errorf("%w: %s returned status %d", domain.ErrNetwork, endpoint, resp.status)
}

func decode(endpoint string, resp *response, v any) error {
	if err := json.Unmarshal(resp.body, v); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", domain.ErrNetwork, endpoint, err)
	}
	return nil
}

// decodeList accepts a bare JSON array or an object wrapping it in "data".
func decodeList[T any](endpoint string, resp *response) ([]T, error) {
	trimmed := bytes.TrimSpace(resp.body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env struct {
			Data []T `json:"data"`
		}
		if err := decode(endpoint, resp, &env); err != nil {
			return nil, err
		}
		return env.Data, nil
	}
	var items []T
	if err := decode(endpoint, resp, &items); err != nil {
		return nil, err
	}
	return items, nil
}
