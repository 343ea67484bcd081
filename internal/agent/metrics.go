package agent

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/adecos/ads-copilot/internal/adsdata"
	"github.com/adecos/ads-copilot/internal/prompts"
)

// metricsSuggestions are the fixed follow-ups attached to every metrics
// response.
var metricsSuggestions = []string{
	"So sánh với tháng trước",
	"Phân tích theo chiến dịch",
	"Chi tiết hơn về dữ liệu này",
}

// runMetrics answers data-analysis and comparison queries with a
// narrative plus a chart. Data and generation failures propagate to the
// HTTP layer.
func (c *Copilot) runMetrics(ctx context.Context, query string, e Entities) (Response, error) {
	timeRange := e.TimeRange
	if timeRange == "" {
		timeRange = c.cfg.DefaultTimeRange
	}
	groupBy := e.GroupBy
	if groupBy == "" {
		groupBy = "day"
	}

	params := adsdata.PerformanceParams{
		TimeRange: timeRange,
		GroupBy:   groupBy,
		Program:   e.Program,
		Keywords:  e.Keywords,
	}

	// A breakdown only becomes a multi-series chart when the query
	// itself asks for a time series; otherwise the aggregate view reads
	// better.
	queryLower := strings.ToLower(query)
	if (e.Breakdown == "account" || e.Breakdown == "campaign") &&
		containsAny(queryLower, c.cfg.TimeSeriesMarkers) {
		params.Breakdown = e.Breakdown
	}

	result, err := c.data.QueryPerformance(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("performance query failed: %w", err)
	}

	metrics := adsdata.ComputeMetrics(result.Data, []string{"cpc", "roas", "ctr"})

	narrative, err := c.generateNarrative(ctx, query, timeRange, result.Summary, metrics)
	if err != nil {
		return Response{}, err
	}

	var chart *Chart
	if result.IsGranular {
		chart = buildGranularChart(result, query, params.Breakdown, e.VisualType)
	} else {
		chart = buildAggregateChart(result, query, e.VisualType)
	}

	dateRange := result.DateRange
	return Response{
		Type: ResponseComposite,
		Composite: &Composite{
			Sections: []Section{
				{Type: "narrative", Content: narrative},
				{Type: "chart", Content: chart},
			},
			Summary: map[string]interface{}{"metrics": metrics},
		},
		Context: &ResponseContext{
			Filters: &FilterEcho{
				TimeRange: timeRange,
				DateRange: &dateRange,
				Program:   e.Program,
				Keywords:  e.Keywords,
			},
			FollowupSuggestions: metricsSuggestions,
		},
	}, nil
}

func (c *Copilot) generateNarrative(ctx context.Context, query, timeRange string, summary adsdata.Summary, metrics map[string]float64) (string, error) {
	prompt, err := c.prompts.Narrative(prompts.NarrativeData{
		Query:     query,
		TimeRange: timeRange,
		Clicks:    groupDigits(strconv.FormatInt(summary.TotalClicks, 10)),
		Cost:      formatWhole(summary.TotalCost),
		Revenue:   formatWhole(summary.TotalRevenue),
		CPC:       formatWhole(metrics["cpc"]),
		ROAS:      strconv.FormatFloat(metrics["roas"], 'f', 2, 64),
		CTR:       strconv.FormatFloat(metrics["ctr"], 'f', 2, 64),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render narrative prompt: %w", err)
	}

	narrative, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}
	return strings.TrimSpace(narrative), nil
}

// formatWhole renders a float rounded to whole units with digit
// grouping, the way summary money values are shown in chat.
func formatWhole(f float64) string {
	return groupDigits(strconv.FormatInt(int64(math.Round(f)), 10))
}

// groupDigits inserts comma separators into a decimal integer string.
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
