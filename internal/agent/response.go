package agent

import (
	"encoding/json"
	"fmt"

	"github.com/adecos/ads-copilot/internal/adsdata"
)

// ResponseType discriminates the four response shapes. Callers switch on
// it; Response marshals to the wire contract {type, content, context?}.
type ResponseType string

const (
	ResponseText      ResponseType = "text"
	ResponseTable     ResponseType = "table"
	ResponseChart     ResponseType = "chart"
	ResponseComposite ResponseType = "composite"
)

// Response is the tagged union produced by every strategy. Exactly one
// payload field matching Type is populated.
type Response struct {
	Type      ResponseType
	Text      string
	Table     []map[string]interface{}
	Chart     *Chart
	Composite *Composite
	Context   *ResponseContext
}

// Chart describes a renderable chart.
type Chart struct {
	ChartType string                   `json:"chartType"`
	Title     string                   `json:"title"`
	Data      []map[string]interface{} `json:"data"`
	Config    ChartConfig              `json:"config"`
}

// ChartConfig names the x-axis key and the plotted series.
type ChartConfig struct {
	XAxis  string   `json:"xAxis"`
	Series []Series `json:"series"`
}

// Series describes one plotted line/bar/area. DataKey must be present in
// every chart data record it is paired with.
type Series struct {
	DataKey string `json:"dataKey"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// Section is one ordered part of a composite response.
type Section struct {
	Type    string      `json:"type"` // "narrative", "chart" or "table"
	Content interface{} `json:"content"`
}

// Composite holds multiple ordered sections plus an optional summary.
type Composite struct {
	Sections []Section   `json:"sections"`
	Summary  interface{} `json:"summary,omitempty"`
}

// ResponseContext carries the filter echo and follow-up suggestions the
// frontend renders alongside a response.
type ResponseContext struct {
	Filters             *FilterEcho `json:"filters,omitempty"`
	Niche               string      `json:"niche,omitempty"`
	FollowupSuggestions []string    `json:"followupSuggestions,omitempty"`
}

// FilterEcho restates the filters a data query actually applied.
type FilterEcho struct {
	TimeRange string             `json:"timeRange"`
	DateRange *adsdata.DateRange `json:"dateRange,omitempty"`
	Program   string             `json:"program,omitempty"`
	Keywords  []string           `json:"keywords,omitempty"`
}

// TextResponse builds a plain text response.
func TextResponse(content string) Response {
	return Response{Type: ResponseText, Text: content}
}

// MarshalJSON flattens the union into {type, content, context?}.
func (r Response) MarshalJSON() ([]byte, error) {
	out := struct {
		Type    ResponseType     `json:"type"`
		Content interface{}      `json:"content"`
		Context *ResponseContext `json:"context,omitempty"`
	}{Type: r.Type, Context: r.Context}

	switch r.Type {
	case ResponseText:
		out.Content = r.Text
	case ResponseTable:
		out.Content = r.Table
	case ResponseChart:
		out.Content = r.Chart
	case ResponseComposite:
		out.Content = r.Composite
	default:
		return nil, fmt.Errorf("unknown response type %q", r.Type)
	}
	return json.Marshal(out)
}
