// Package intelligence turns domain records into advisory results. Every
// analysis builds a prompt, asks the text-generation client, extracts a JSON
// value from the reply and falls back to a fixed default on any failure.
// Callers always receive a structurally complete value.
package intelligence

import (
	"context"
	"time"

	"github.com/alexanderramin/compass/internal/llm"
	"go.uber.org/zap"
)

// Result is the outcome of one advisory call. Degraded is true when Value is
// the fallback default rather than a parsed model response.
type Result[T any] struct {
	Value    T    `json:"value"`
	Degraded bool `json:"degraded"`
}

// advisory describes a single prompt -> extract -> fallback round.
type advisory[T any] struct {
	task     llm.TaskType
	system   string
	prompt   string
	shape    llm.Shape
	validate llm.SchemaValidator[T]
	fallback func() T
	// finalize attaches identifying fields and recomputes derived values.
	// It runs on parsed and fallback values alike and must be idempotent.
	finalize func(*T)
}

// engine holds what every advisor needs to run an advisory round.
type engine struct {
	client   llm.LLMClient
	observer llm.Observer
	log      *zap.Logger
	now      func() time.Time
}

func newEngine(client llm.LLMClient, observer llm.Observer, log *zap.Logger) engine {
	if client == nil {
		client = llm.DisabledClient{}
	}
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return engine{client: client, observer: observer, log: log.Named("advisor"), now: time.Now}
}

// run executes one advisory round. It never fails: any generation or
// extraction error yields the fallback with Degraded set.
func run[T any](ctx context.Context, e engine, a advisory[T]) Result[T] {
	value, reason := generate(ctx, e, a)
	degraded := reason != ""
	if degraded {
		value = a.fallback()
		e.log.Warn("advisory degraded to fallback",
			zap.String("task", string(a.task)),
			zap.String("reason", reason),
		)
	} else {
		e.log.Debug("advisory generated", zap.String("task", string(a.task)))
	}

	if a.finalize != nil {
		a.finalize(&value)
	}

	e.observer.OnAdvisoryComplete(llm.AdvisoryEvent{
		Task:     a.task,
		Degraded: degraded,
		Reason:   reason,
	})
	return Result[T]{Value: value, Degraded: degraded}
}

func generate[T any](ctx context.Context, e engine, a advisory[T]) (T, string) {
	var zero T

	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		Task:         a.task,
		SystemPrompt: a.system,
		UserPrompt:   a.prompt,
	})
	if err != nil {
		return zero, err.Error()
	}

	value, err := llm.ExtractJSON[T](resp.Text, a.shape, a.validate)
	if err != nil {
		return zero, err.Error()
	}
	return value, ""
}

// emptyIfNil keeps list fields present as [] in JSON output.
func emptyIfNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}
