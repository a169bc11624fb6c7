// Package reply turns a scammer's message into the agent's next line.
//
// The generator prefers a Gemini completion shaped by the persona
// profile and the conversation so far, falls back to the persona's
// canned phrase pools when the model is unavailable, then pushes every
// candidate through the self-corrector and consistency check before a
// humanizer roughs up the final text.
package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for persona completions.
const DefaultModel = "gemini-2.0-flash"

// completion sampling knobs. High temperature keeps the victim
// improvisational; the token cap keeps replies SMS-sized.
const (
	completionTemperature     = 0.9
	completionMaxOutputTokens = 100
)

// TextCapability produces one in-character line for an assembled
// prompt. Implementations must be safe for concurrent use.
type TextCapability interface {
	GenerateLine(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// GeminiCapability is the production TextCapability backed by the
// google.golang.org/genai SDK.
type GeminiCapability struct {
	client *genai.Client
	model  string
}

// NewGeminiCapability builds a Gemini-backed capability. model may be
// empty to use DefaultModel.
func NewGeminiCapability(ctx context.Context, apiKey, model string) (*GeminiCapability, error) {
	if apiKey == "" {
		return nil, errors.New("reply: gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("reply: create genai client: %w", err)
	}
	return &GeminiCapability{client: client, model: model}, nil
}

func (g *GeminiCapability) GenerateLine(ctx context.Context, systemInstruction, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(completionTemperature)),
		MaxOutputTokens: completionMaxOutputTokens,
	}
	if systemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("reply: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("reply: empty completion")
	}
	return stripWrappingQuotes(text), nil
}

// stripWrappingQuotes removes one layer of quotes the model sometimes
// wraps around the line.
func stripWrappingQuotes(text string) string {
	for _, quote := range []string{`"`, `'`} {
		if len(text) >= 2 && strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) {
			text = text[1 : len(text)-1]
		}
	}
	return strings.TrimSpace(text)
}
