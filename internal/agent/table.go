package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/adecos/ads-copilot/internal/adsdata"
)

// runTable answers list requests with a templated narrative plus a raw
// table. The query text picks between campaigns and accounts; campaigns
// is the default.
func (c *Copilot) runTable(ctx context.Context, query string, e Entities) (Response, error) {
	queryLower := strings.ToLower(query)

	if containsAny(queryLower, c.cfg.AccountWords) && !containsAny(queryLower, c.cfg.CampaignWords) {
		return c.accountTable(ctx)
	}

	narrativePrefix := "Dưới đây là danh sách %d chiến dịch%s:"
	if !containsAny(queryLower, c.cfg.CampaignWords) {
		narrativePrefix = "Đây là dữ liệu bạn yêu cầu (%d dòng%s):"
	}
	return c.campaignTable(ctx, e, narrativePrefix)
}

func (c *Copilot) campaignTable(ctx context.Context, e Entities, narrativeFormat string) (Response, error) {
	params := adsdata.CampaignParams{Program: e.Program}
	// Only the first keyword is honored.
	if len(e.Keywords) > 0 {
		params.Keyword = e.Keywords[0]
	}

	campaigns, err := c.data.ListCampaigns(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("campaign query failed: %w", err)
	}

	var filterDesc string
	if params.Program != "" {
		filterDesc += fmt.Sprintf(" cho %s", params.Program)
	}
	if params.Keyword != "" {
		filterDesc += fmt.Sprintf(" với từ khóa '%s'", params.Keyword)
	}

	rows := make([]map[string]interface{}, 0, len(campaigns))
	for _, cp := range campaigns {
		rows = append(rows, map[string]interface{}{
			"id":      cp.ID,
			"name":    cp.Name,
			"status":  cp.Status,
			"clicks":  cp.Clicks,
			"cost":    cp.Cost,
			"revenue": cp.Revenue,
		})
	}

	return Response{
		Type: ResponseComposite,
		Composite: &Composite{
			Sections: []Section{
				{Type: "narrative", Content: fmt.Sprintf(narrativeFormat, len(rows), filterDesc)},
				{Type: "table", Content: rows},
			},
		},
	}, nil
}

func (c *Copilot) accountTable(ctx context.Context) (Response, error) {
	list, err := c.data.ListAccounts(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("account query failed: %w", err)
	}

	rows := make([]map[string]interface{}, 0, len(list.Accounts))
	for _, a := range list.Accounts {
		rows = append(rows, map[string]interface{}{
			"id":       a.ID,
			"name":     a.Name,
			"platform": a.Platform,
			"status":   a.Status,
		})
	}

	narrative := fmt.Sprintf("Bạn đang có %d tài khoản đang hoạt động trong tổng số %d tài khoản:",
		list.ActiveAccounts, list.TotalAccounts)

	return Response{
		Type: ResponseComposite,
		Composite: &Composite{
			Sections: []Section{
				{Type: "narrative", Content: narrative},
				{Type: "table", Content: rows},
			},
		},
	}, nil
}
