package agent

import "strings"

// Strategy identifies one of the four response-construction paths.
type Strategy int

const (
	StrategyMetrics Strategy = iota
	StrategyTable
	StrategyExplanation
	StrategyResearch
)

// String implements fmt.Stringer for log output.
func (s Strategy) String() string {
	switch s {
	case StrategyMetrics:
		return "metrics"
	case StrategyTable:
		return "table"
	case StrategyExplanation:
		return "explanation"
	case StrategyResearch:
		return "research"
	}
	return "unknown"
}

// SelectStrategy is the pure dispatch table from intent to strategy.
// Follow-up intent splits on explain trigger words: a "why/explain"
// follow-up reads as a request for prose, anything else re-runs the
// metrics path with the newly extracted entities.
func SelectStrategy(intent Intent, query string, explainTriggerWords []string) Strategy {
	switch intent {
	case IntentDataAnalysis, IntentComparison:
		return StrategyMetrics
	case IntentDataQuery:
		return StrategyTable
	case IntentExplanation:
		return StrategyExplanation
	case IntentResearch:
		return StrategyResearch
	case IntentFollowup:
		if containsAny(strings.ToLower(query), explainTriggerWords) {
			return StrategyExplanation
		}
		return StrategyMetrics
	}
	return StrategyExplanation
}
