package adsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adecos/ads-copilot/internal/config"
	"github.com/adecos/ads-copilot/internal/pkg/httpretry"
)

// HTTPService fetches performance data from the external reporting API.
// It mirrors the Postgres backend's aggregation semantics so strategies
// do not care which backend is configured.
type HTTPService struct {
	baseURL    string
	apiKey     string
	httpClient httpretry.HTTPDoer
	now        func() time.Time
}

// NewHTTPService creates a reporting API client with retry.
func NewHTTPService(cfg config.AdsDataConfig) *HTTPService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: timeout,
		}, 3),
		now: time.Now,
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (s *HTTPService) SetHTTPClient(client httpretry.HTTPDoer) {
	s.httpClient = client
}

// SetNowFunc overrides the clock used for time-range resolution.
func (s *HTTPService) SetNowFunc(now func() time.Time) { s.now = now }

func (s *HTTPService) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := s.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// QueryPerformance fetches pre-aggregated rows for the resolved range.
func (s *HTTPService) QueryPerformance(ctx context.Context, params PerformanceParams) (*PerformanceResult, error) {
	dr := ResolveTimeRange(params.TimeRange, s.now())

	q := url.Values{}
	q.Set("from", dr.Start)
	q.Set("to", dr.End)
	if params.GroupBy != "" {
		q.Set("group_by", params.GroupBy)
	}
	if params.Breakdown != "" {
		q.Set("breakdown", params.Breakdown)
	}
	if params.Program != "" {
		q.Set("program", params.Program)
	}
	if len(params.Keywords) > 0 {
		q.Set("keywords", strings.Join(params.Keywords, ","))
	}

	body, err := s.doRequest(ctx, "/v1/performance", q)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []PerformanceRow `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse performance response: %w", err)
	}

	return &PerformanceResult{
		Data:       payload.Data,
		Summary:    ComputeSummary(payload.Data),
		DateRange:  dr,
		TimeRange:  params.TimeRange,
		IsGranular: params.Breakdown != "",
	}, nil
}

// ListCampaigns fetches campaigns, filtered server-side.
func (s *HTTPService) ListCampaigns(ctx context.Context, params CampaignParams) ([]Campaign, error) {
	q := url.Values{}
	if params.Program != "" {
		q.Set("program", params.Program)
	}
	if params.Keyword != "" {
		q.Set("keyword", params.Keyword)
	}

	body, err := s.doRequest(ctx, "/v1/campaigns", q)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Campaigns []Campaign `json:"campaigns"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse campaigns response: %w", err)
	}
	return payload.Campaigns, nil
}

// ListAccounts fetches all ad accounts with activity counts.
func (s *HTTPService) ListAccounts(ctx context.Context) (*AccountList, error) {
	body, err := s.doRequest(ctx, "/v1/accounts", nil)
	if err != nil {
		return nil, err
	}

	var payload AccountList
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse accounts response: %w", err)
	}
	return &payload, nil
}
