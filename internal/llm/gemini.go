package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// Gemini calls the Gemini API, rotating through the supplied API keys when
// one is rate limited. Safe for use from concurrent handlers.
type Gemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini creates a Gemini client over the supplied keys.
func NewGemini(apiKeys []string, model string, log logger.Logger) *Gemini {
	return &Gemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

// Transform sends the prompt pair to Gemini. Keys rotate on 429 / quota
// errors; other errors fail immediately.
func (g *Gemini) Transform(ctx context.Context, systemPrompt, content string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("gemini: no API keys configured")
	}
	prompt := systemPrompt + "\n\n" + content

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		g.mu.Lock()
		keyIndex := g.currentKey
		key := g.apiKeys[keyIndex]
		g.mu.Unlock()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *Gemini) rotateKey() {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	g.mu.Unlock()
}
