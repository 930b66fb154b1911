// Package diag defines the sink non-fatal plan diagnostics are reported to.
// Recoverable problems (an unexpected binary-path shape, a failed
// package-config lookup) warn and let the computation continue; everything
// fatal travels as an ordinary error instead.
package diag

import (
	"context"
	"sync"

	"github.com/vk/buildplan/internal/ctxlog"
)

// Sink receives non-fatal diagnostics. Implementations must be safe for
// concurrent use: independent products may be computed in parallel against
// one sink.
type Sink interface {
	// Warn reports a diagnostic. args are alternating key/value pairs in the
	// slog convention.
	Warn(ctx context.Context, msg string, args ...any)
}

// LogSink forwards diagnostics to the context's logger.
type LogSink struct{}

// Warn implements Sink.
func (LogSink) Warn(ctx context.Context, msg string, args ...any) {
	ctxlog.FromContext(ctx).Warn(msg, args...)
}

// Collector records diagnostics for inspection, primarily in tests.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

// Warn implements Sink.
func (c *Collector) Warn(_ context.Context, msg string, _ ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of everything recorded so far.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}
