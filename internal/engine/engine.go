package engine

import "log/slog"

// Engine runs the two normalization pipelines. It holds no state across
// invocations beyond its logger; a single Engine can serve concurrent
// batches.
type Engine struct {
	log *slog.Logger
}

// New creates an engine. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{log: logger}
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
