// Package prompts renders the instructional prompts sent to the generation
// backend. Templates are Liquid, parsed once at startup; all user-facing
// instructions target Vietnamese, matching the product's conversational
// language.
package prompts

import (
	"fmt"

	"github.com/osteele/liquid"
)

// Renderer holds the parsed prompt templates.
type Renderer struct {
	classifier  *liquid.Template
	narrative   *liquid.Template
	explanation *liquid.Template
	research    *liquid.Template
}

// New parses all prompt templates. Fails fast on malformed templates so a
// bad template can never reach request handling.
func New() (*Renderer, error) {
	engine := liquid.NewEngine()

	parse := func(name, src string) (*liquid.Template, error) {
		tpl, err := engine.ParseString(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		return tpl, nil
	}

	var r Renderer
	var err error
	if r.classifier, err = parse("classifier", classifierTemplate); err != nil {
		return nil, err
	}
	if r.narrative, err = parse("narrative", narrativeTemplate); err != nil {
		return nil, err
	}
	if r.explanation, err = parse("explanation", explanationTemplate); err != nil {
		return nil, err
	}
	if r.research, err = parse("research", researchTemplate); err != nil {
		return nil, err
	}
	return &r, nil
}

// Classifier renders the intent-classification prompt.
func (r *Renderer) Classifier(query, context string) (string, error) {
	return r.render(r.classifier, liquid.Bindings{
		"query":   query,
		"context": context,
	})
}

// NarrativeData carries the pre-formatted summary numbers embedded into the
// narrative prompt. Values are strings because formatting (grouping, decimal
// places) is decided by the strategy, not the template.
type NarrativeData struct {
	Query     string
	TimeRange string
	Clicks    string
	Cost      string
	Revenue   string
	CPC       string
	ROAS      string
	CTR       string
}

// Narrative renders the chart-accompanying narrative prompt.
func (r *Renderer) Narrative(d NarrativeData) (string, error) {
	return r.render(r.narrative, liquid.Bindings{
		"query":      d.Query,
		"time_range": d.TimeRange,
		"clicks":     d.Clicks,
		"cost":       d.Cost,
		"revenue":    d.Revenue,
		"cpc":        d.CPC,
		"roas":       d.ROAS,
		"ctr":        d.CTR,
	})
}

// Explanation renders the free-text explanation prompt.
func (r *Renderer) Explanation(query, history string) (string, error) {
	return r.render(r.explanation, liquid.Bindings{
		"query":   query,
		"history": history,
	})
}

// Research renders the affiliate-program research prompt.
func (r *Renderer) Research(niche, history string) (string, error) {
	return r.render(r.research, liquid.Bindings{
		"niche":   niche,
		"history": history,
	})
}

func (r *Renderer) render(tpl *liquid.Template, bindings liquid.Bindings) (string, error) {
	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return out, nil
}
