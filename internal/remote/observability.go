package remote

import (
	"log/slog"
)

// CallEvent records metadata about a single engine call.
type CallEvent struct {
	Op        string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
	FellBack  bool
}

// Observer receives events about remote calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
	OnBreakerStateChange(from, to string)
}

// LogObserver writes call events to a logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"op", event.Op,
		"latency_ms", event.LatencyMs,
		"attempts", event.Attempts,
		"fell_back", event.FellBack,
	}
	if !event.Success {
		o.logger.Warn("remote_engine_call", append(attrs, "status", "err:"+event.ErrorCode)...)
		return
	}
	o.logger.Debug("remote_engine_call", append(attrs, "status", "ok")...)
}

func (o *LogObserver) OnBreakerStateChange(from, to string) {
	o.logger.Warn("remote_engine_breaker", "from", from, "to", to)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent)            {}
func (NoopObserver) OnBreakerStateChange(string, string) {}
