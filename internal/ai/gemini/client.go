package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/resume-extractor/internal/ai"
	"google.golang.org/genai"
)

const (
	provider     = "gemini"
	defaultModel = "gemini-2.5-flash"
)

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models    contentModels
	modelName string
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{models: client.Models, modelName: model}, nil
}

// Generate sends the prompt to Gemini and returns the textual response.
func (g *Generator) Generate(ctx context.Context, prompt string, params ai.Params) (string, error) {
	if g == nil || g.models == nil {
		return "", &ai.BackendError{Provider: provider, Err: errors.New("gemini generator is not initialized")}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ai.BackendError{Provider: provider, Err: errors.New("prompt must not be empty")}
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), generationConfig(params))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &ai.BackendError{Provider: provider, Err: fmt.Errorf("generate content: %w", err)}
	}

	output := responseText(resp)
	if output == "" {
		return "", &ai.BackendError{Provider: provider, Err: errors.New("gemini api returned empty response")}
	}

	return output, nil
}

func generationConfig(params ai.Params) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:    genai.Ptr(float32(params.Temperature)),
		CandidateCount: 1,
	}
	if params.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(params.MaxTokens)
	}
	if !params.Sample {
		// top-k of one is greedy decoding
		cfg.TopK = genai.Ptr(float32(1))
	}
	return cfg
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func (g *Generator) Provider() string { return provider }

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
