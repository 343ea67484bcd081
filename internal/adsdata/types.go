// Package adsdata retrieves ads performance data for the conversational
// layer. Two backends implement the same Service interface: a Postgres
// reader over the application's stats tables and an HTTP client for the
// external reporting API.
package adsdata

import (
	"context"
	"strings"
)

// Service is the data access surface the response strategies depend on.
type Service interface {
	// QueryPerformance returns aggregated performance rows for a time
	// range, optionally broken down per account or per campaign.
	QueryPerformance(ctx context.Context, params PerformanceParams) (*PerformanceResult, error)
	// ListCampaigns returns campaigns, optionally filtered by a keyword
	// matched against the campaign name.
	ListCampaigns(ctx context.Context, params CampaignParams) ([]Campaign, error)
	// ListAccounts returns all ad accounts with activity counts.
	ListAccounts(ctx context.Context) (*AccountList, error)
}

// PerformanceParams selects the slice of performance data to aggregate.
type PerformanceParams struct {
	TimeRange string   // natural-language range, e.g. "last 30 days"
	GroupBy   string   // "day" (default), "week" or "month" time bucket
	Breakdown string   // "account", "campaign", or "" for a plain series
	Program   string   // optional affiliate program filter
	Keywords  []string // optional campaign-name keyword filters
}

// PerformanceRow is one aggregated data point. Entity is empty when the
// query has no breakdown.
type PerformanceRow struct {
	Date        string  `json:"date"`
	Entity      string  `json:"entity,omitempty"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
	Cost        float64 `json:"cost"`
	Revenue     float64 `json:"revenue"`
	Conversions int64   `json:"conversions"`
}

// Metric returns the named metric value for chart building. Derived
// metrics (cpc, roas, ctr) are computed per row; unknown keys fall back
// to cost.
func (r PerformanceRow) Metric(key string) float64 {
	switch strings.ToLower(key) {
	case "clicks", "click":
		return float64(r.Clicks)
	case "impressions", "impression":
		return float64(r.Impressions)
	case "revenue":
		return r.Revenue
	case "conversions", "conversion":
		return float64(r.Conversions)
	case "cpc":
		if r.Clicks == 0 {
			return 0
		}
		return r.Cost / float64(r.Clicks)
	case "roas":
		if r.Cost == 0 {
			return 0
		}
		return r.Revenue / r.Cost
	case "ctr":
		if r.Impressions == 0 {
			return 0
		}
		return float64(r.Clicks) / float64(r.Impressions) * 100
	default:
		return r.Cost
	}
}

// Summary holds totals and derived metrics over a result set.
type Summary struct {
	TotalClicks      int64   `json:"total_clicks"`
	TotalImpressions int64   `json:"total_impressions"`
	TotalCost        float64 `json:"total_cost"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalConversions int64   `json:"total_conversions"`
	CPC              float64 `json:"cpc"`
	ROAS             float64 `json:"roas"`
	CTR              float64 `json:"ctr"`
}

// DateRange is the resolved absolute range a query covered.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PerformanceResult is the full answer to a performance query.
type PerformanceResult struct {
	Data      []PerformanceRow `json:"data"`
	Summary   Summary          `json:"summary"`
	DateRange DateRange        `json:"date_range"`
	TimeRange string           `json:"time_range"`
	// IsGranular is true when rows carry a per-entity breakdown.
	IsGranular bool `json:"is_granular"`
}

// CampaignParams filters the campaign listing.
type CampaignParams struct {
	Program string
	Keyword string
}

// Campaign is one row of the campaign table response.
type Campaign struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	Clicks  int64   `json:"clicks"`
	Cost    float64 `json:"cost"`
	Revenue float64 `json:"revenue"`
}

// Account is one row of the account table response.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Status   string `json:"status"`
}

// AccountList carries the accounts plus the activity counts the
// conversational layer echoes back to the user.
type AccountList struct {
	Accounts       []Account `json:"accounts"`
	TotalAccounts  int       `json:"totalAccounts"`
	ActiveAccounts int       `json:"activeAccounts"`
}

// ComputeSummary totals the rows and derives CPC, ROAS and CTR.
// Derived metrics are zero when their denominator is zero.
func ComputeSummary(rows []PerformanceRow) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalClicks += r.Clicks
		s.TotalImpressions += r.Impressions
		s.TotalCost += r.Cost
		s.TotalRevenue += r.Revenue
		s.TotalConversions += r.Conversions
	}
	if s.TotalClicks > 0 {
		s.CPC = s.TotalCost / float64(s.TotalClicks)
	}
	if s.TotalCost > 0 {
		s.ROAS = s.TotalRevenue / s.TotalCost
	}
	if s.TotalImpressions > 0 {
		s.CTR = float64(s.TotalClicks) / float64(s.TotalImpressions) * 100
	}
	return s
}

// ComputeMetrics derives the named metrics over the rows. Unknown names
// are skipped.
func ComputeMetrics(rows []PerformanceRow, names []string) map[string]float64 {
	s := ComputeSummary(rows)
	metrics := make(map[string]float64, len(names))
	for _, name := range names {
		switch strings.ToLower(name) {
		case "cpc":
			metrics["cpc"] = s.CPC
		case "roas":
			metrics["roas"] = s.ROAS
		case "ctr":
			metrics["ctr"] = s.CTR
		case "cost":
			metrics["cost"] = s.TotalCost
		case "revenue":
			metrics["revenue"] = s.TotalRevenue
		case "clicks":
			metrics["clicks"] = float64(s.TotalClicks)
		}
	}
	return metrics
}
