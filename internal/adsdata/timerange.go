package adsdata

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var lastNDaysRe = regexp.MustCompile(`(?:last\s+|trong\s+)?(\d+)\s*(?:days?|ngày)`)
var monthRe = regexp.MustCompile(`(?:tháng|month)\s*(\d{1,2})`)

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ResolveTimeRange turns a natural-language range into absolute dates.
// Unrecognized input resolves to the last 30 days so a vague query still
// returns data instead of an error.
func ResolveTimeRange(expr string, now time.Time) DateRange {
	expr = strings.ToLower(strings.TrimSpace(expr))
	today := now.Truncate(24 * time.Hour)

	span := func(start, end time.Time) DateRange {
		return DateRange{Start: start.Format("2006-01-02"), End: end.Format("2006-01-02")}
	}

	switch expr {
	case "today", "hôm nay":
		return span(today, today)
	case "yesterday", "hôm qua":
		y := today.AddDate(0, 0, -1)
		return span(y, y)
	case "this week", "tuần này":
		return span(startOfWeek(today), today)
	case "last week", "tuần trước":
		end := startOfWeek(today).AddDate(0, 0, -1)
		return span(startOfWeek(end), end)
	case "this month", "tháng này":
		return span(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()), today)
	case "last month", "tháng trước":
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return span(first.AddDate(0, -1, 0), first.AddDate(0, 0, -1))
	}

	if m := lastNDaysRe.FindStringSubmatch(expr); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return span(today.AddDate(0, 0, -n+1), today)
		}
	}

	if m := monthRe.FindStringSubmatch(expr); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 12 {
			return monthSpan(time.Month(n), today)
		}
	}

	for name, month := range monthNames {
		if strings.Contains(expr, name) {
			return monthSpan(month, today)
		}
	}

	return span(today.AddDate(0, 0, -29), today)
}

// monthSpan resolves a bare month to the most recent occurrence of that
// month that has already started.
func monthSpan(month time.Month, today time.Time) DateRange {
	year := today.Year()
	if month > today.Month() {
		year--
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	last := first.AddDate(0, 1, -1)
	if last.After(today) {
		last = today
	}
	return DateRange{Start: first.Format("2006-01-02"), End: last.Format("2006-01-02")}
}

// startOfWeek returns the Monday of the week containing d.
func startOfWeek(d time.Time) time.Time {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return d.AddDate(0, 0, -offset)
}
