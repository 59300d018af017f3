package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// GenerateRequest is one text-generation call made on behalf of an advisor.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse carries the raw model text. Advisors extract JSON from it.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient is the text-generation collaborator used by advisors.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider. A disabled config yields a
// client whose every call fails with ErrDisabled, which advisors turn into
// fallback results.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if !cfg.Enabled {
		return DisabledClient{}, nil
	}
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// DisabledClient is used when text generation is switched off.
type DisabledClient struct{}

func (DisabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, ErrDisabled
}

func (DisabledClient) Available(context.Context) bool { return false }

// backend is a single provider's transport. It makes exactly one attempt.
type backend interface {
	provider() Provider
	complete(ctx context.Context, model string, req GenerateRequest, temperature float64, maxTokens int) (text, servedBy string, err error)
	ping(ctx context.Context, model string) error
}

// providerClient wraps a backend with per-task timeouts, retries, error
// classification and call observation.
type providerClient struct {
	cfg      LLMConfig
	backend  backend
	observer Observer
}

func newProviderClient(cfg LLMConfig, b backend, observer Observer) *providerClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &providerClient{cfg: cfg, backend: b, observer: observer}
}

func (c *providerClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.sampling(req)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	var (
		text, servedBy string
		lastErr        error
	)
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		text, servedBy, lastErr = c.backend.complete(ctx, c.cfg.Model, req, temp, maxTok)
		if lastErr == nil || ctx.Err() != nil || errors.Is(lastErr, ErrInvalidOutput) {
			break
		}
	}

	err := classify(ctx, lastErr)
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Provider:  c.backend.provider(),
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return nil, err
	}

	if servedBy == "" {
		servedBy = c.cfg.Model
	}
	return &GenerateResponse{Text: text, Model: servedBy, LatencyMs: latency}, nil
}

func (c *providerClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.backend.ping(ctx, c.cfg.Model) == nil
}

// classify maps the last attempt's error onto the package sentinels.
func classify(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidOutput):
		return err
	case ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

// sampling resolves temperature and token limits for a request.
func (c LLMConfig) sampling(req GenerateRequest) (float64, int) {
	taskCfg := c.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return err != nil && errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
