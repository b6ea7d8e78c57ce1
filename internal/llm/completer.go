// Package llm abstracts the chat-completion providers. The contract with every
// provider is the same: send a system prompt plus the user text, get back
// either prose or a JSON object embedded in prose.
package llm

import (
	"context"
	"strings"
)

// Completer is a single-round-trip chat completion.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CleanJSONObject strips Markdown fences and surrounding prose from a model
// reply, keeping the first '{' through the last '}'. Models are told to return
// raw JSON but routinely ignore that.
func CleanJSONObject(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
