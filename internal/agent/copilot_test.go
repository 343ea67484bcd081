package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adecos/ads-copilot/internal/adsdata"
	"github.com/adecos/ads-copilot/internal/config"
	"github.com/adecos/ads-copilot/internal/prompts"
)

// scriptedGen routes generation calls to canned replies by recognizing
// which prompt template produced the request.
type scriptedGen struct {
	classify     string
	classifyErr  error
	narrative    string
	narrativeErr error
	explain      string
	explainErr   error
	research     string
	researchErr  error
}

func (g *scriptedGen) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "bộ phân loại intent"):
		return g.classify, g.classifyErr
	case strings.Contains(prompt, "chuyên gia phân tích quảng cáo"):
		return g.narrative, g.narrativeErr
	case strings.Contains(prompt, "Research Niche:"):
		return g.research, g.researchErr
	default:
		return g.explain, g.explainErr
	}
}

func (g *scriptedGen) GenerateStream(ctx context.Context, prompt string) (string, error) {
	return g.Generate(ctx, prompt)
}

type stubData struct {
	perf     *adsdata.PerformanceResult
	perfErr  error
	lastPerf adsdata.PerformanceParams

	campaigns []adsdata.Campaign
	campErr   error
	lastCamp  adsdata.CampaignParams

	accounts *adsdata.AccountList
	acctErr  error
}

func (s *stubData) QueryPerformance(_ context.Context, p adsdata.PerformanceParams) (*adsdata.PerformanceResult, error) {
	s.lastPerf = p
	return s.perf, s.perfErr
}

func (s *stubData) ListCampaigns(_ context.Context, p adsdata.CampaignParams) ([]adsdata.Campaign, error) {
	s.lastCamp = p
	return s.campaigns, s.campErr
}

func (s *stubData) ListAccounts(_ context.Context) (*adsdata.AccountList, error) {
	return s.accounts, s.acctErr
}

func testAgentConfig() config.AgentConfig {
	return config.AgentConfig{
		Language:            "vi",
		DefaultTimeRange:    "last 30 days",
		HistoryMessageLimit: 3,
		HistoryCharLimit:    100,
		ExplainTriggerWords: []string{"tại sao", "why", "giải thích", "explain"},
		TimeSeriesMarkers:   []string{"theo ngày", "theo tuần", "theo tháng", "over time", "biểu đồ"},
		CampaignWords:       []string{"campaign", "chiến dịch"},
		AccountWords:        []string{"account", "tài khoản"},
	}
}

func newTestCopilot(t *testing.T, gen *scriptedGen, data *stubData) *Copilot {
	t.Helper()
	renderer, err := prompts.New()
	require.NoError(t, err)
	return New(gen, data, renderer, testAgentConfig())
}

func samplePerformance() *adsdata.PerformanceResult {
	rows := []adsdata.PerformanceRow{
		{Date: "2025-11-14", Clicks: 100, Impressions: 4000, Cost: 250, Revenue: 900, Conversions: 8},
		{Date: "2025-11-15", Clicks: 150, Impressions: 6000, Cost: 350, Revenue: 1100, Conversions: 12},
	}
	return &adsdata.PerformanceResult{
		Data:      rows,
		Summary:   adsdata.ComputeSummary(rows),
		DateRange: adsdata.DateRange{Start: "2025-11-09", End: "2025-11-15"},
		TimeRange: "last 7 days",
	}
}

func TestRespond_NoUserMessage(t *testing.T) {
	copilot := newTestCopilot(t, &scriptedGen{}, &stubData{})

	resp, err := copilot.Respond(context.Background(), []Message{{Role: "assistant", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, ResponseText, resp.Type)
	assert.Equal(t, "Không tìm thấy tin nhắn từ người dùng.", resp.Text)
}

func TestRespond_MetricsComposite(t *testing.T) {
	gen := &scriptedGen{
		classify:  `{"intent": "data_analysis", "confidence": 0.9, "entities": {"time_range": "last 7 days"}}`,
		narrative: "Chi phí tuần này ổn định.",
	}
	data := &stubData{perf: samplePerformance()}
	copilot := newTestCopilot(t, gen, data)

	resp, err := copilot.Respond(context.Background(), []Message{{Role: "user", Content: "Chi phí tuần này"}})
	require.NoError(t, err)

	require.Equal(t, ResponseComposite, resp.Type)
	require.Len(t, resp.Composite.Sections, 2)
	assert.Equal(t, "narrative", resp.Composite.Sections[0].Type)
	assert.Equal(t, "Chi phí tuần này ổn định.", resp.Composite.Sections[0].Content)
	assert.Equal(t, "chart", resp.Composite.Sections[1].Type)

	chart := resp.Composite.Sections[1].Content.(*Chart)
	assert.Equal(t, "area", chart.ChartType)
	require.Len(t, chart.Config.Series, 2)
	assert.Equal(t, "cost", chart.Config.Series[0].DataKey)
	assert.Equal(t, "revenue", chart.Config.Series[1].DataKey)

	require.NotNil(t, resp.Context)
	assert.Equal(t, "last 7 days", resp.Context.Filters.TimeRange)
	assert.Len(t, resp.Context.FollowupSuggestions, 3)
	assert.Equal(t, "last 7 days", data.lastPerf.TimeRange)
}

func TestRespond_MetricsDataFailurePropagates(t *testing.T) {
	gen := &scriptedGen{classify: `{"intent": "data_analysis", "confidence": 0.9}`}
	data := &stubData{perfErr: assert.AnError}
	copilot := newTestCopilot(t, gen, data)

	_, err := copilot.Respond(context.Background(), []Message{{Role: "user", Content: "Chi phí"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "performance query failed")
}

func TestRespond_BreakdownNeedsTimeSeriesMarker(t *testing.T) {
	gen := &scriptedGen{
		classify:  `{"intent": "data_analysis", "confidence": 0.9, "entities": {"breakdown": "account"}}`,
		narrative: "ok",
	}
	data := &stubData{perf: samplePerformance()}
	copilot := newTestCopilot(t, gen, data)

	// No marker phrase: the breakdown hint is ignored.
	_, err := copilot.Respond(context.Background(), []Message{{Role: "user", Content: "Chi phí theo account"}})
	require.NoError(t, err)
	assert.Empty(t, data.lastPerf.Breakdown)

	// Marker phrase present: the breakdown is applied.
	data.perf.IsGranular = true
	data.perf.Data = []adsdata.PerformanceRow{
		{Date: "2025-11-15", Entity: "A", Cost: 10},
		{Date: "2025-11-15", Entity: "B", Cost: 20},
	}
	_, err = copilot.Respond(context.Background(), []Message{{Role: "user", Content: "Chi phí theo account theo ngày"}})
	require.NoError(t, err)
	assert.Equal(t, "account", data.lastPerf.Breakdown)
}

func TestRespond_TableCampaignsWithProgram(t *testing.T) {
	gen := &scriptedGen{
		classify: `{"intent": "data_query", "confidence": 0.9, "entities": {"program": "Shopee"}}`,
	}
	data := &stubData{campaigns: []adsdata.Campaign{
		{ID: "c1", Name: "Shopee 11.11", Status: "active"},
		{ID: "c2", Name: "Shopee Tết", Status: "paused"},
	}}
	copilot := newTestCopilot(t, gen, data)

	resp, err := copilot.Respond(context.Background(), []Message{
		{Role: "user", Content: "Liệt kê các chiến dịch cho Shopee"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Shopee", data.lastCamp.Program)
	require.Equal(t, ResponseComposite, resp.Type)
	narrative := resp.Composite.Sections[0].Content.(string)
	assert.Contains(t, narrative, "2 chiến dịch")
	assert.Contains(t, narrative, "Shopee")

	rows := resp.Composite.Sections[1].Content.([]map[string]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, "Shopee 11.11", rows[0]["name"])
}

func TestRespond_TableAccounts(t *testing.T) {
	gen := &scriptedGen{classify: `{"intent": "data_query", "confidence": 0.9}`}
	data := &stubData{accounts: &adsdata.AccountList{
		Accounts: []adsdata.Account{
			{ID: "a1", Name: "Main", Platform: "tiktok", Status: "active"},
			{ID: "a2", Name: "Backup", Platform: "facebook", Status: "paused"},
		},
		TotalAccounts:  2,
		ActiveAccounts: 1,
	}}
	copilot := newTestCopilot(t, gen, data)

	resp, err := copilot.Respond(context.Background(), []Message{
		{Role: "user", Content: "Danh sách tài khoản"},
	})
	require.NoError(t, err)

	narrative := resp.Composite.Sections[0].Content.(string)
	assert.Contains(t, narrative, "1 tài khoản đang hoạt động")
	assert.Contains(t, narrative, "2 tài khoản")
}

func TestRespond_Explanation(t *testing.T) {
	gen := &scriptedGen{
		classify: `{"intent": "explanation", "confidence": 0.95}`,
		explain:  "  CPC là chi phí trung bình cho mỗi click.  ",
	}
	copilot := newTestCopilot(t, gen, &stubData{})

	resp, err := copilot.Respond(context.Background(), []Message{{Role: "user", Content: "CPC là gì?"}})
	require.NoError(t, err)
	assert.Equal(t, ResponseText, resp.Type)
	assert.Equal(t, "CPC là chi phí trung bình cho mỗi click.", resp.Text)
}

func TestRespond_ExplanationGenerationFailureApologizes(t *testing.T) {
	gen := &scriptedGen{
		classify:   `{"intent": "explanation", "confidence": 0.95}`,
		explainErr: assert.AnError,
	}
	copilot := newTestCopilot(t, gen, &stubData{})

	resp, err := copilot.Respond(context.Background(), []Message{{Role: "user", Content: "CPC là gì?"}})
	require.NoError(t, err)
	assert.Equal(t, ResponseText, resp.Type)
	assert.Equal(t, explanationApology, resp.Text)
}

func TestRespond_ResearchEndToEnd(t *testing.T) {
	gen := &scriptedGen{
		classify: `{"intent": "research", "confidence": 0.9, "entities": {"niche": "Crypto"}}`,
		research: `[{"brand": "Binance", "program_url": "https://binance.com/aff", "commission_percent": 40, "commission_type": "percentage", "can_use_brand": false, "traffic_3m": "12M+", "legitimacy_score": 9}]`,
	}
	copilot := newTestCopilot(t, gen, &stubData{})

	resp, err := copilot.Respond(context.Background(), []Message{{Role: "user", Content: "Crypto"}})
	require.NoError(t, err)

	require.Equal(t, ResponseComposite, resp.Type)
	assert.Equal(t, "table", resp.Composite.Sections[1].Type)
	rows := resp.Composite.Sections[1].Content.([]map[string]interface{})
	require.Len(t, rows, 1)
	for _, field := range []string{"brand", "program_url", "commission_percent", "commission_type", "can_use_brand", "traffic_3m", "legitimacy_score"} {
		assert.Contains(t, rows[0], field)
	}
	assert.Equal(t, "Crypto", resp.Context.Niche)
	assert.Contains(t, resp.Context.FollowupSuggestions[0], "Crypto")
}

func TestRespond_ResearchNicheDefaultsToQuery(t *testing.T) {
	gen := &scriptedGen{
		classify: `{"intent": "research", "confidence": 0.9}`,
		research: `[]`,
	}
	copilot := newTestCopilot(t, gen, &stubData{})

	resp, err := copilot.Respond(context.Background(), []Message{{Role: "user", Content: "Forex"}})
	require.NoError(t, err)
	assert.Equal(t, "Forex", resp.Context.Niche)
}

func TestResearch_UnparseableYieldsErrorRecord(t *testing.T) {
	gen := &scriptedGen{research: "I could not find any programs, sorry."}
	copilot := newTestCopilot(t, gen, &stubData{})

	resp := copilot.Research(context.Background(), "Gaming")

	rows := resp.Composite.Sections[1].Content.([]map[string]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, researchParseError, rows[0]["error"])
}

func TestResearch_ContentWrapperUnwrapped(t *testing.T) {
	gen := &scriptedGen{research: `{"content": [{"brand": "Shopee"}]}`}
	copilot := newTestCopilot(t, gen, &stubData{})

	resp := copilot.Research(context.Background(), "Ecommerce")

	rows := resp.Composite.Sections[1].Content.([]map[string]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Shopee", rows[0]["brand"])
}

func TestRespond_FollowupRouting(t *testing.T) {
	gen := &scriptedGen{
		classify:  `{"intent": "followup", "confidence": 0.8}`,
		explain:   "Giá tăng do cạnh tranh đấu thầu.",
		narrative: "ok",
	}
	data := &stubData{perf: samplePerformance()}
	copilot := newTestCopilot(t, gen, data)

	// A "why" follow-up becomes an explanation.
	resp, err := copilot.Respond(context.Background(), []Message{{Role: "user", Content: "tại sao giá tăng"}})
	require.NoError(t, err)
	assert.Equal(t, ResponseText, resp.Type)

	// Any other follow-up re-runs the metrics path.
	resp, err = copilot.Respond(context.Background(), []Message{{Role: "user", Content: "cho tôi thêm chương trình"}})
	require.NoError(t, err)
	assert.Equal(t, ResponseComposite, resp.Type)
}
