package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adecos/ads-copilot/internal/adsdata"
)

// chartPalette colors multi-series charts; entities cycle through it in
// lexicographic order.
var chartPalette = []string{
	"#3b82f6", "#ef4444", "#22c55e", "#f59e0b",
	"#8b5cf6", "#06b6d4", "#ec4899", "#6366f1",
}

// metricPrecedence picks the metric to plot in a granular chart by
// scanning the query text. First match wins; cost is the default.
var metricPrecedence = []struct {
	keywords []string
	metric   string
}{
	{[]string{"doanh thu", "revenue"}, "revenue"},
	{[]string{"click"}, "clicks"},
	{[]string{"cpc"}, "cpc"},
	{[]string{"roas"}, "roas"},
}

// chartRule maps a query keyword to a chart type and series for the
// non-granular path. Rules are evaluated in order; the first match sets
// the series, but every match may still adjust the chart type.
type chartRule struct {
	keyword   string
	chartType string
	forceType bool // applies even when the user asked for a specific type
	series    Series
}

var chartRules = []chartRule{
	{"cpc", "line", false, Series{DataKey: "cpc", Name: "CPC", Color: "#3b82f6"}},
	{"roas", "line", false, Series{DataKey: "roas", Name: "ROAS", Color: "#8b5cf6"}},
	{"ctr", "line", false, Series{DataKey: "ctr", Name: "CTR %", Color: "#06b6d4"}},
	{"click", "line", false, Series{DataKey: "clicks", Name: "Clicks", Color: "#3b82f6"}},
	{"impression", "area", false, Series{DataKey: "impressions", Name: "Impressions", Color: "#8b5cf6"}},
	{"conversions", "bar", true, Series{DataKey: "conversions", Name: "Chuyển đổi", Color: "#f59e0b"}},
}

// selectMetricKey resolves the metric a granular chart should plot.
func selectMetricKey(queryLower string) string {
	for _, p := range metricPrecedence {
		if containsAny(queryLower, p.keywords) {
			return p.metric
		}
	}
	return "cost"
}

// buildGranularChart pivots per-entity rows into one record per time
// bucket with one field per entity, colored from the cyclic palette.
func buildGranularChart(result *adsdata.PerformanceResult, query, breakdown, visualType string) *Chart {
	queryLower := strings.ToLower(query)
	metricKey := selectMetricKey(queryLower)

	pivoted := make(map[string]map[string]interface{})
	entitySet := make(map[string]bool)
	for _, row := range result.Data {
		rec, ok := pivoted[row.Date]
		if !ok {
			rec = map[string]interface{}{"date": row.Date}
			pivoted[row.Date] = rec
		}
		rec[row.Entity] = row.Metric(metricKey)
		entitySet[row.Entity] = true
	}

	data := make([]map[string]interface{}, 0, len(pivoted))
	for _, rec := range pivoted {
		data = append(data, rec)
	}
	sort.Slice(data, func(i, j int) bool {
		return data[i]["date"].(string) < data[j]["date"].(string)
	})

	names := make([]string, 0, len(entitySet))
	for name := range entitySet {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]Series, 0, len(names))
	for idx, name := range names {
		series = append(series, Series{
			DataKey: name,
			Name:    name,
			Color:   chartPalette[idx%len(chartPalette)],
		})
	}

	chartType := visualType
	if !isValidChartType(chartType) {
		chartType = "line"
	}

	return &Chart{
		ChartType: chartType,
		Title:     fmt.Sprintf("%s theo %s (%s)", strings.ToUpper(metricKey), breakdown, result.TimeRange),
		Data:      data,
		Config:    ChartConfig{XAxis: "date", Series: series},
	}
}

// buildAggregateChart renders the plain time series, choosing series and
// chart type from the keyword rule table. When no rule matches it falls
// back to a cost+revenue pair on an area chart.
func buildAggregateChart(result *adsdata.PerformanceResult, query, visualType string) *Chart {
	queryLower := strings.ToLower(query)

	chartType := visualType
	if !isValidChartType(chartType) {
		chartType = "area"
	}

	var series []Series
	for _, rule := range chartRules {
		if !strings.Contains(queryLower, rule.keyword) {
			continue
		}
		if rule.forceType || visualType == "" {
			chartType = rule.chartType
		}
		if len(series) == 0 {
			series = append(series, rule.series)
		}
	}

	if len(series) == 0 {
		series = []Series{
			{DataKey: "cost", Name: "Chi phí", Color: "#ef4444"},
			{DataKey: "revenue", Name: "Doanh thu", Color: "#22c55e"},
		}
		if visualType == "" {
			chartType = "area"
		}
	}

	data := make([]map[string]interface{}, 0, len(result.Data))
	for _, row := range result.Data {
		data = append(data, map[string]interface{}{
			"date":        row.Date,
			"clicks":      row.Clicks,
			"impressions": row.Impressions,
			"cost":        row.Cost,
			"revenue":     row.Revenue,
			"conversions": row.Conversions,
			"cpc":         row.Metric("cpc"),
			"roas":        row.Metric("roas"),
			"ctr":         row.Metric("ctr"),
		})
	}

	return &Chart{
		ChartType: chartType,
		Title:     "Hiệu suất quảng cáo",
		Data:      data,
		Config:    ChartConfig{XAxis: "date", Series: series},
	}
}

func isValidChartType(t string) bool {
	return t == "line" || t == "bar" || t == "area"
}
