package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adecos/ads-copilot/internal/config"
	"github.com/adecos/ads-copilot/internal/genai"
	"github.com/adecos/ads-copilot/internal/pkg/logger"
	"github.com/adecos/ads-copilot/internal/prompts"
)

// Intent is the classified purpose of a user query.
type Intent string

const (
	IntentDataAnalysis Intent = "data_analysis"
	IntentDataQuery    Intent = "data_query"
	IntentComparison   Intent = "comparison"
	IntentExplanation  Intent = "explanation"
	IntentFollowup     Intent = "followup"
	IntentResearch     Intent = "research"
)

var validIntents = map[Intent]bool{
	IntentDataAnalysis: true,
	IntentDataQuery:    true,
	IntentComparison:   true,
	IntentExplanation:  true,
	IntentFollowup:     true,
	IntentResearch:     true,
}

// Entities are the auxiliary attributes extracted alongside the intent.
// The model returns "none" for absent enum-valued fields; normalization
// maps those to empty strings.
type Entities struct {
	TimeRange  string   `json:"time_range"`
	Metrics    []string `json:"metrics"`
	Campaigns  []string `json:"campaigns"`
	Niche      string   `json:"niche"`
	Program    string   `json:"program"`
	Keywords   []string `json:"keywords"`
	GroupBy    string   `json:"group_by"`
	Breakdown  string   `json:"breakdown"`
	VisualType string   `json:"visual_type"`
}

func (e *Entities) normalize() {
	clear := func(s *string) {
		if *s == "none" {
			*s = ""
		}
	}
	clear(&e.TimeRange)
	clear(&e.Niche)
	clear(&e.Program)
	clear(&e.GroupBy)
	clear(&e.Breakdown)
	clear(&e.VisualType)
}

// Classification is the structured result of intent classification.
type Classification struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Entities   Entities `json:"entities"`
}

// defaultClassification is the fail-open result: when classification
// cannot be trusted the flow resumes as a data-analysis query instead of
// surfacing an error.
func defaultClassification(reason string) Classification {
	return Classification{
		Intent:     IntentDataAnalysis,
		Confidence: 0.5,
		Reasoning:  reason,
	}
}

// Classifier turns a query plus recent context into a Classification via
// one generation call.
type Classifier struct {
	gen     genai.Generator
	prompts *prompts.Renderer
	cfg     config.AgentConfig
}

// NewClassifier creates a classifier backed by the given generator.
func NewClassifier(gen genai.Generator, renderer *prompts.Renderer, cfg config.AgentConfig) *Classifier {
	return &Classifier{gen: gen, prompts: renderer, cfg: cfg}
}

// Classify never returns an error: any call or parse failure resolves to
// the default classification so the request keeps flowing.
func (c *Classifier) Classify(ctx context.Context, query string, history []Message) Classification {
	recent := classifierContext(history, c.cfg.HistoryMessageLimit, c.cfg.HistoryCharLimit)

	prompt, err := c.prompts.Classifier(query, recent)
	if err != nil {
		logger.Warn("classifier prompt render failed", "error", err)
		return defaultClassification(fmt.Sprintf("Classification failed: %v, defaulting to data_analysis", err))
	}

	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("classification call failed", "error", err)
		return defaultClassification(fmt.Sprintf("Classification failed: %v, defaulting to data_analysis", err))
	}

	var result Classification
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &result); err != nil {
		logger.Warn("classification output unparseable", "error", err)
		return defaultClassification(fmt.Sprintf("Classification failed: %v, defaulting to data_analysis", err))
	}

	if result.Intent == "" {
		return defaultClassification("Missing 'intent' in response, defaulting to data_analysis")
	}
	if !validIntents[result.Intent] {
		result.Reasoning = fmt.Sprintf("Invalid intent %q returned, defaulting to data_analysis", result.Intent)
		result.Intent = IntentDataAnalysis
		result.Confidence = 0.5
	}
	result.Entities.normalize()

	logger.Info("intent classified", "intent", string(result.Intent), "confidence", result.Confidence)
	return result
}
