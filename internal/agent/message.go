// Package agent implements the conversational core: an LLM-backed intent
// classifier, a deterministic response router, and the four response
// strategies (metrics analysis, data tables, explanations, affiliate
// program research).
package agent

import (
	"encoding/json"
	"strings"
)

// structuredContentPlaceholder stands in for assistant turns whose
// content the frontend echoed back as a structured payload (a prior
// chart or table response) rather than text.
const structuredContentPlaceholder = "[Previous data/chart response]"

// Message is one turn of the conversation. The caller supplies the full
// history on every request; nothing is persisted server-side.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// UnmarshalJSON accepts content as either a string or a structured
// payload. Structured payloads collapse to a fixed placeholder; only
// their presence matters for prompt context.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Role = raw.Role
	if len(raw.Content) == 0 {
		m.Content = ""
		return nil
	}
	var text string
	if err := json.Unmarshal(raw.Content, &text); err == nil {
		m.Content = text
		return nil
	}
	m.Content = structuredContentPlaceholder
	return nil
}

// lastUserQuery returns the content of the most recent user message.
func lastUserQuery(messages []Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content, true
		}
	}
	return "", false
}

// buildHistory renders every message before the last one as "role: content"
// lines for inclusion in generation prompts.
func buildHistory(messages []Message) string {
	if len(messages) <= 1 {
		return ""
	}
	var b strings.Builder
	for _, m := range messages[:len(messages)-1] {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// classifierContext condenses recent history for the classifier prompt:
// the last maxMessages turns, each truncated to maxChars characters,
// joined with " | ".
func classifierContext(messages []Message, maxMessages, maxChars int) string {
	if len(messages) <= 1 {
		return "None (first message)"
	}
	history := messages[:len(messages)-1]
	if len(history) > maxMessages {
		history = history[len(history)-maxMessages:]
	}
	parts := make([]string, 0, len(history))
	for _, m := range history {
		content := m.Content
		if r := []rune(content); len(r) > maxChars {
			content = string(r[:maxChars]) + "..."
		}
		parts = append(parts, m.Role+": "+content)
	}
	return strings.Join(parts, " | ")
}

// containsAny reports whether the lower-cased text contains any of the
// given words.
func containsAny(textLower string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(textLower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// stripCodeFence removes a surrounding markdown code fence, which models
// frequently wrap JSON output in despite instructions not to.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
