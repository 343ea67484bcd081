package adsdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Saturday, 15 Nov 2025.
var testNow = time.Date(2025, 11, 15, 10, 30, 0, 0, time.UTC)

func TestResolveTimeRange(t *testing.T) {
	tests := []struct {
		expr  string
		start string
		end   string
	}{
		{"today", "2025-11-15", "2025-11-15"},
		{"hôm qua", "2025-11-14", "2025-11-14"},
		{"this week", "2025-11-10", "2025-11-15"},
		{"tuần trước", "2025-11-03", "2025-11-09"},
		{"this month", "2025-11-01", "2025-11-15"},
		{"last month", "2025-10-01", "2025-10-31"},
		{"last 7 days", "2025-11-09", "2025-11-15"},
		{"trong 30 ngày", "2025-10-17", "2025-11-15"},
		{"tháng 10", "2025-10-01", "2025-10-31"},
		{"November", "2025-11-01", "2025-11-15"},
		{"december", "2024-12-01", "2024-12-31"},
		{"", "2025-10-17", "2025-11-15"},
		{"gibberish", "2025-10-17", "2025-11-15"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			dr := ResolveTimeRange(tt.expr, testNow)
			assert.Equal(t, tt.start, dr.Start)
			assert.Equal(t, tt.end, dr.End)
		})
	}
}

func TestResolveTimeRange_CurrentMonthClampedToToday(t *testing.T) {
	dr := ResolveTimeRange("tháng 11", testNow)
	assert.Equal(t, "2025-11-01", dr.Start)
	assert.Equal(t, "2025-11-15", dr.End)
}
