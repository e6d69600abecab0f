package apisports

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

	"diamond-insights.backend/internal/config"
	domainerrors "diamond-insights.backend/internal/domain/errors"
	"diamond-insights.backend/internal/infrastructure/metrics"
	"diamond-insights.backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	TeamsEndpoint = "/teams"
	// MLBLeagueID is the api-sports league id for Major League Baseball.
	MLBLeagueID = "1"

	RapidAPIKeyHeader  = "x-rapidapi-key"
	RapidAPIHostHeader = "x-rapidapi-host"

	DefaultTimeout = 10 * time.Second
	maxErrorBody   = 2048
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads team data from api-sports. It performs a single attempt per call.
type Client struct {
	baseURL string
	apiKey  string
	host    string
	season  string
	timeout time.Duration
	http    httpDoer
}

func NewClient(cfg config.APISportsConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: normalizeBaseURL(cfg.URL),
		apiKey:  cfg.Key,
		host:    cfg.Host,
		season:  cfg.Season,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchTeams returns the raw /teams payload for the MLB league. An empty season
// falls back to the configured one.
func (c *Client) FetchTeams(ctx context.Context, season string) (map[string]any, error) {
	if season == "" {
		season = c.season
	}
	params := url.Values{}
	params.Set("league", MLBLeagueID)
	params.Set("season", season)
	return c.get(ctx, TeamsEndpoint, params)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, c.fail(ctx, endpoint, domainerrors.NewExternalUnexpectedError(fmt.Errorf("failed to create request: %w", err)))
	}
	req.Header.Set(RapidAPIKeyHeader, c.apiKey)
	req.Header.Set(RapidAPIHostHeader, c.host)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordAPICall(endpoint, "error", time.Since(start))
		return nil, c.fail(ctx, endpoint, domainerrors.NewExternalRequestError(err))
	}
	defer resp.Body.Close()
	metrics.RecordAPICall(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, c.fail(ctx, endpoint, domainerrors.NewExternalStatusError(resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload map[string]any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, c.fail(ctx, endpoint, domainerrors.NewExternalRequestError(err))
		}
		return nil, c.fail(ctx, endpoint, domainerrors.NewExternalUnexpectedError(fmt.Errorf("failed to decode %s response: %w", endpoint, err)))
	}
	if payload == nil {
		return nil, c.fail(ctx, endpoint, domainerrors.NewExternalUnexpectedError(fmt.Errorf("empty %s response", endpoint)))
	}
	return payload, nil
}

func (c *Client) fail(ctx context.Context, endpoint string, err *domainerrors.ExternalAPIError) error {
	logger.Error(ctx, "api-sports request failed",
		zap.String("endpoint", endpoint),
		zap.String("kind", string(err.Kind)),
		zap.Int("upstream_status", err.StatusCode),
		zap.String("details", err.Details),
	)
	return err
}

func normalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
