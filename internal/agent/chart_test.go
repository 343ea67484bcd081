package agent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adecos/ads-copilot/internal/adsdata"
)

func granularResult(rows []adsdata.PerformanceRow) *adsdata.PerformanceResult {
	return &adsdata.PerformanceResult{
		Data:       rows,
		Summary:    adsdata.ComputeSummary(rows),
		TimeRange:  "last 30 days",
		IsGranular: true,
	}
}

func TestBuildGranularChart_Pivot(t *testing.T) {
	result := granularResult([]adsdata.PerformanceRow{
		{Date: "2024-01-01", Entity: "A", Cost: 10},
		{Date: "2024-01-01", Entity: "B", Cost: 20},
	})

	chart := buildGranularChart(result, "chi phí theo account theo ngày", "account", "")

	require.Len(t, chart.Data, 1)
	assert.Equal(t, "2024-01-01", chart.Data[0]["date"])
	assert.Equal(t, 10.0, chart.Data[0]["A"])
	assert.Equal(t, 20.0, chart.Data[0]["B"])
	assert.Equal(t, "line", chart.ChartType)
	assert.Equal(t, "COST theo account (last 30 days)", chart.Title)
}

func TestBuildGranularChart_SortedByDate(t *testing.T) {
	result := granularResult([]adsdata.PerformanceRow{
		{Date: "2024-01-03", Entity: "A", Cost: 3},
		{Date: "2024-01-01", Entity: "A", Cost: 1},
		{Date: "2024-01-02", Entity: "A", Cost: 2},
	})

	chart := buildGranularChart(result, "chi phí theo ngày", "account", "")

	require.Len(t, chart.Data, 3)
	assert.Equal(t, "2024-01-01", chart.Data[0]["date"])
	assert.Equal(t, "2024-01-02", chart.Data[1]["date"])
	assert.Equal(t, "2024-01-03", chart.Data[2]["date"])
}

func TestBuildGranularChart_PaletteCycles(t *testing.T) {
	var rows []adsdata.PerformanceRow
	for i := 0; i < 9; i++ {
		rows = append(rows, adsdata.PerformanceRow{
			Date:   "2024-01-01",
			Entity: fmt.Sprintf("entity-%d", i),
			Cost:   float64(i),
		})
	}

	chart := buildGranularChart(granularResult(rows), "chi phí theo ngày", "account", "")

	require.Len(t, chart.Config.Series, 9)
	assert.Equal(t, chartPalette[0], chart.Config.Series[0].Color)
	assert.Equal(t, chartPalette[0], chart.Config.Series[8].Color)
	assert.NotEqual(t, chart.Config.Series[0].Color, chart.Config.Series[1].Color)
}

func TestBuildGranularChart_MetricPrecedence(t *testing.T) {
	tests := []struct {
		query  string
		metric string
	}{
		{"doanh thu theo ngày", "revenue"},
		{"revenue và click theo ngày", "revenue"},
		{"click theo ngày", "clicks"},
		{"cpc theo ngày", "cpc"},
		{"roas theo ngày", "roas"},
		{"gì đó theo ngày", "cost"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.metric, selectMetricKey(tt.query))
		})
	}
}

func TestBuildGranularChart_ExplicitVisualTypeKept(t *testing.T) {
	result := granularResult([]adsdata.PerformanceRow{
		{Date: "2024-01-01", Entity: "A", Cost: 1},
	})

	chart := buildGranularChart(result, "chi phí theo ngày", "account", "bar")
	assert.Equal(t, "bar", chart.ChartType)
}

func TestBuildGranularChart_InvalidVisualTypeCoerced(t *testing.T) {
	result := granularResult([]adsdata.PerformanceRow{
		{Date: "2024-01-01", Entity: "A", Cost: 1},
	})

	chart := buildGranularChart(result, "chi phí theo ngày", "account", "pie")
	assert.Equal(t, "line", chart.ChartType)
}

func aggregateResult() *adsdata.PerformanceResult {
	rows := []adsdata.PerformanceRow{
		{Date: "2024-01-01", Clicks: 10, Impressions: 400, Cost: 25, Revenue: 90, Conversions: 1},
		{Date: "2024-01-02", Clicks: 20, Impressions: 600, Cost: 35, Revenue: 110, Conversions: 2},
	}
	return &adsdata.PerformanceResult{
		Data:      rows,
		Summary:   adsdata.ComputeSummary(rows),
		TimeRange: "last 30 days",
	}
}

func TestBuildAggregateChart_Rules(t *testing.T) {
	tests := []struct {
		query     string
		chartType string
		dataKey   string
	}{
		{"cpc của tôi", "line", "cpc"},
		{"roas thế nào", "line", "roas"},
		{"ctr tuần này", "line", "ctr"},
		{"clicks hôm nay", "line", "clicks"},
		{"impressions tháng này", "area", "impressions"},
		{"conversions tuần này", "bar", "conversions"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			chart := buildAggregateChart(aggregateResult(), tt.query, "")
			assert.Equal(t, tt.chartType, chart.ChartType)
			require.Len(t, chart.Config.Series, 1)
			assert.Equal(t, tt.dataKey, chart.Config.Series[0].DataKey)
		})
	}
}

func TestBuildAggregateChart_FallbackCostRevenue(t *testing.T) {
	chart := buildAggregateChart(aggregateResult(), "hiệu suất tổng quan", "")

	assert.Equal(t, "area", chart.ChartType)
	require.Len(t, chart.Config.Series, 2)
	assert.Equal(t, "cost", chart.Config.Series[0].DataKey)
	assert.Equal(t, "revenue", chart.Config.Series[1].DataKey)
}

func TestBuildAggregateChart_ConversionsForcesBar(t *testing.T) {
	chart := buildAggregateChart(aggregateResult(), "conversions tuần này", "line")
	assert.Equal(t, "bar", chart.ChartType)
}

func TestBuildAggregateChart_DataCarriesDerivedMetrics(t *testing.T) {
	chart := buildAggregateChart(aggregateResult(), "cpc", "")

	require.Len(t, chart.Data, 2)
	// Every series dataKey must exist in every record.
	for _, rec := range chart.Data {
		for _, s := range chart.Config.Series {
			assert.Contains(t, rec, s.DataKey)
		}
	}
	assert.InDelta(t, 2.5, chart.Data[0]["cpc"].(float64), 1e-9)
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits("0"))
	assert.Equal(t, "999", groupDigits("999"))
	assert.Equal(t, "1,000", groupDigits("1000"))
	assert.Equal(t, "12,450", groupDigits("12450"))
	assert.Equal(t, "1,234,567", groupDigits("1234567"))
	assert.Equal(t, "-5,000", groupDigits("-5000"))
}

func TestFormatWhole(t *testing.T) {
	assert.Equal(t, "5,000,000", formatWhole(5000000.4))
	assert.Equal(t, "402", formatWhole(401.7))
}
