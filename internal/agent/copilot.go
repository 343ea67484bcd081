package agent

import (
	"context"

	"github.com/adecos/ads-copilot/internal/adsdata"
	"github.com/adecos/ads-copilot/internal/config"
	"github.com/adecos/ads-copilot/internal/genai"
	"github.com/adecos/ads-copilot/internal/pkg/logger"
	"github.com/adecos/ads-copilot/internal/prompts"
)

// Copilot orchestrates one request cycle: classify the latest user
// message, route it to a strategy, and produce a Response. All state is
// request-scoped; a single Copilot serves concurrent requests.
type Copilot struct {
	classifier *Classifier
	gen        genai.Generator
	data       adsdata.Service
	prompts    *prompts.Renderer
	cfg        config.AgentConfig
}

// New wires a Copilot from its collaborators.
func New(gen genai.Generator, data adsdata.Service, renderer *prompts.Renderer, cfg config.AgentConfig) *Copilot {
	return &Copilot{
		classifier: NewClassifier(gen, renderer, cfg),
		gen:        gen,
		data:       data,
		prompts:    renderer,
		cfg:        cfg,
	}
}

// Respond handles one inbound conversation. A returned error means a
// data or generation dependency failed in a path that does not convert
// failures locally; the HTTP layer turns it into an apology text
// Response so the caller always receives a valid shape.
func (c *Copilot) Respond(ctx context.Context, messages []Message) (Response, error) {
	query, ok := lastUserQuery(messages)
	if !ok {
		return TextResponse("Không tìm thấy tin nhắn từ người dùng."), nil
	}

	history := buildHistory(messages)
	classification := c.classifier.Classify(ctx, query, messages)
	strategy := SelectStrategy(classification.Intent, query, c.cfg.ExplainTriggerWords)

	logger.Info("routing query",
		"intent", string(classification.Intent), "strategy", strategy.String())

	switch strategy {
	case StrategyMetrics:
		return c.runMetrics(ctx, query, classification.Entities)
	case StrategyTable:
		return c.runTable(ctx, query, classification.Entities)
	case StrategyResearch:
		niche := classification.Entities.Niche
		if niche == "" {
			niche = query
		}
		return c.runResearch(ctx, niche, history), nil
	default:
		return c.runExplanation(ctx, query, history), nil
	}
}

// Research answers a direct research request outside the chat flow.
func (c *Copilot) Research(ctx context.Context, niche string) Response {
	return c.runResearch(ctx, niche, "")
}
