package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// geminiBackend calls the Gemini API through the genai SDK.
type geminiBackend struct {
	client *genai.Client
}

// NewGeminiClient creates an LLMClient backed by Google's Gemini API.
// cfg.Endpoint, when it is not the Ollama default, overrides the API base URL.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	defaults := DefaultConfig()
	if cfg.Model == "" || cfg.Model == defaults.Model {
		cfg.Model = "gemini-2.0-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{},
	}
	if cfg.Endpoint != "" && cfg.Endpoint != defaults.Endpoint {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimSuffix(cfg.Endpoint, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return newProviderClient(cfg, &geminiBackend{client: client}, observer), nil
}

func (b *geminiBackend) provider() Provider { return ProviderGemini }

func (b *geminiBackend) complete(ctx context.Context, model string, req GenerateRequest, temperature float64, maxTokens int) (string, string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(maxTokens),
	}
	if req.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := b.client.Models.GenerateContent(ctx, model, genai.Text(req.UserPrompt), genCfg)
	if err != nil {
		return "", "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", "", fmt.Errorf("%w: empty response", ErrInvalidOutput)
	}
	return text, resp.ModelVersion, nil
}

func (b *geminiBackend) ping(ctx context.Context, model string) error {
	_, err := b.client.Models.Get(ctx, model, nil)
	return err
}
