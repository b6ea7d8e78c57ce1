package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCompleter talks to the Gemini API. Credentials come from the
// environment (GEMINI_API_KEY or application default credentials).
type GeminiCompleter struct {
	model string
}

// NewGeminiCompleter creates a completer for the given model name.
func NewGeminiCompleter(model string) *GeminiCompleter {
	return &GeminiCompleter{model: model}
}

// Complete sends one prompt pair and returns the raw text reply.
func (g *GeminiCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: systemPrompt + "\n\n" + userPrompt},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response from model")
	}
	return text, nil
}

var _ Completer = (*GeminiCompleter)(nil)
