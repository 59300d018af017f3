package llm

import "go.uber.org/zap"

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// AdvisoryEvent records how an advisory request resolved.
type AdvisoryEvent struct {
	Task     TaskType
	Degraded bool
	Reason   string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
	OnAdvisoryComplete(event AdvisoryEvent)
}

// ZapObserver writes LLM call events to a zap logger.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver creates an Observer that logs events to log.
func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log.Named("llm")}
}

func (o *ZapObserver) OnCallComplete(event LLMCallEvent) {
	fields := []zap.Field{
		zap.String("task", string(event.Task)),
		zap.String("provider", string(event.Provider)),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if !event.Success {
		o.log.Warn("llm_call", append(fields, zap.String("status", "err:"+event.ErrorCode))...)
		return
	}
	o.log.Info("llm_call", append(fields, zap.String("status", "ok"))...)
}

func (o *ZapObserver) OnAdvisoryComplete(event AdvisoryEvent) {
	o.log.Debug("advisory",
		zap.String("task", string(event.Task)),
		zap.Bool("degraded", event.Degraded),
		zap.String("reason", event.Reason),
	)
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		o.OnCallComplete(event)
	}
}

func (m MultiObserver) OnAdvisoryComplete(event AdvisoryEvent) {
	for _, o := range m {
		o.OnAdvisoryComplete(event)
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
func (NoopObserver) OnAdvisoryComplete(AdvisoryEvent) {}
