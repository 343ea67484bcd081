package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adecos/ads-copilot/internal/pkg/logger"
)

const researchParseError = "Không thể parse kết quả từ AI"

// runResearch asks the generator for affiliate program recommendations
// and renders them as a table. It never fails the request: generation
// errors and unparseable output both collapse into a single
// error-marker record.
func (c *Copilot) runResearch(ctx context.Context, niche, history string) Response {
	records := c.researchRecords(ctx, niche, history)

	narrative := fmt.Sprintf("Đây là các chương trình affiliate trong lĩnh vực **%s** mà tôi tìm được cho bạn:", niche)

	return Response{
		Type: ResponseComposite,
		Composite: &Composite{
			Sections: []Section{
				{Type: "narrative", Content: narrative},
				{Type: "table", Content: records},
			},
		},
		Context: &ResponseContext{
			Niche: niche,
			FollowupSuggestions: []string{
				fmt.Sprintf("Thêm programs trong lĩnh vực %s", niche),
				"So sánh commission rates",
				"Ngách liên quan khác",
			},
		},
	}
}

func (c *Copilot) researchRecords(ctx context.Context, niche, history string) []map[string]interface{} {
	errorRecord := []map[string]interface{}{{"error": researchParseError}}

	prompt, err := c.prompts.Research(niche, history)
	if err != nil {
		logger.Error("research prompt render failed", "error", err)
		return errorRecord
	}

	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("research generation failed", "error", err)
		return errorRecord
	}

	// The model may return either a bare array or an object wrapping it
	// in a "content" field.
	cleaned := stripCodeFence(text)

	var wrapper struct {
		Content []map[string]interface{} `json:"content"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err == nil && wrapper.Content != nil {
		return wrapper.Content
	}

	var list []map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &list); err == nil {
		return list
	}

	logger.Warn("research output unparseable", "niche", niche)
	return errorRecord
}
