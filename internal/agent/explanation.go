package agent

import (
	"context"
	"strings"

	"github.com/adecos/ads-copilot/internal/pkg/logger"
)

const explanationApology = "Xin lỗi, tôi chưa thể trả lời câu hỏi này ngay bây giờ. Bạn thử lại sau nhé."

// runExplanation forwards the query to the generator with the expert
// persona prompt. Generation failures are converted locally into an
// apology so an explanation request never fails the HTTP request.
func (c *Copilot) runExplanation(ctx context.Context, query, history string) Response {
	prompt, err := c.prompts.Explanation(query, history)
	if err != nil {
		logger.Error("explanation prompt render failed", "error", err)
		return TextResponse(explanationApology)
	}

	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("explanation generation failed", "error", err)
		return TextResponse(explanationApology)
	}

	return TextResponse(strings.TrimSpace(text))
}
