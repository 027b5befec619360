package fieldcatalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/gameswap/gameswap/internal/domain/field"
	"github.com/gameswap/gameswap/internal/platform/logging"
	"github.com/gameswap/gameswap/internal/platform/resilience"
	"github.com/gameswap/gameswap/internal/usecase"
)

// Client reads field inventory from the county facilities API. Leagues that
// do not manage their own fields table point the service here; the client
// satisfies field.Catalog.
const defaultTimeout = 15 * time.Second

var errCatalogTransient = crerr.New("field catalog transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
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
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) GetByRef(ctx context.Context, leagueID, ref string) (field.Field, bool, error) {
	leagueID = strings.TrimSpace(leagueID)
	ref = strings.TrimSpace(ref)
	if leagueID == "" || ref == "" {
		return field.Field{}, false, fmt.Errorf("league id and field ref are required")
	}

	path := fmt.Sprintf("/leagues/%s/fields/%s", url.PathEscape(leagueID), url.PathEscape(ref))
	var envelope fieldEnvelope
	found, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return field.Field{}, false, fmt.Errorf("fetch field league_id=%s ref=%s: %w", leagueID, ref, err)
	}
	if !found {
		return field.Field{}, false, nil
	}

	return envelope.Data.toDomain(leagueID), true, nil
}

func (c *Client) List(ctx context.Context, leagueID string) ([]field.Field, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("league id is required")
	}

	path := fmt.Sprintf("/leagues/%s/fields", url.PathEscape(leagueID))
	var envelope fieldListEnvelope
	found, err := c.doJSON(ctx, path, &envelope)
	if err != nil {
		return nil, fmt.Errorf("list fields league_id=%s: %w", leagueID, err)
	}
	if !found {
		return []field.Field{}, nil
	}

	out := make([]field.Field, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		out = append(out, item.toDomain(leagueID))
	}
	return out, nil
}

// doJSON reports found=false for a 404 so callers can keep the repository
// (value, ok, error) shape.
func (c *Client) doJSON(ctx context.Context, path string, target any) (bool, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "field catalog circuit breaker rejected request", "state", c.breaker.State())
			return false, fmt.Errorf("%w: field catalog is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errCatalogTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if crerr.Is(err, errNotFoundStatus) {
			return false, nil
		}
		if crerr.Is(err, errCatalogTransient) {
			return false, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return false, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("decode catalog payload: %w", err)
	}
	return true, nil
}

var errNotFoundStatus = crerr.New("field catalog resource not found")

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("X-Api-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errCatalogTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errCatalogTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, errNotFoundStatus
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: catalog status=%d", errCatalogTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("catalog status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("catalog request failed")
	}
	c.logger.WarnContext(ctx, "field catalog request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

type fieldEnvelope struct {
	Data fieldItem `json:"data"`
}

type fieldListEnvelope struct {
	Data []fieldItem `json:"data"`
}

type fieldItem struct {
	Ref    string `json:"ref"`
	Park   string `json:"park"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (m fieldItem) toDomain(leagueID string) field.Field {
	status := field.Status(strings.TrimSpace(m.Status))
	if status != field.StatusActive && status != field.StatusInactive {
		status = field.StatusInactive
	}
	return field.Field{
		LeagueID: leagueID,
		Ref:      strings.TrimSpace(m.Ref),
		Park:     strings.TrimSpace(m.Park),
		Name:     strings.TrimSpace(m.Name),
		Status:   status,
	}
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
