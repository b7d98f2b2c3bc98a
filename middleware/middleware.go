// Package middleware provides the standard Middleware implementations and
// the zerolog adapter.  The canonical registration order is Metrics, Timing,
// Logging: before-hooks fire outermost first, after-hooks in reverse, so
// Timing brackets the event tighter than Metrics and Logging observes the
// result first.
package middleware

import (
	"context"
	"time"

	"github.com/Skryldev/image-upscaler/core"
)

// ── Timing ────────────────────────────────────────────────────────────────────

// Timing stamps each attempt, computes its wall-clock duration and emits a
// "<event> took <duration>" debug line.  It is the only middleware that
// writes Start and Duration; everything outside it in the stack sees the
// measured value, everything inside does not.
type Timing struct {
	logger core.Logger
}

func NewTiming(l core.Logger) *Timing {
	if l == nil {
		l = core.NopLogger{}
	}
	return &Timing{logger: l}
}

func (t *Timing) Before(_ context.Context, inv *core.Invocation, _ *core.EventContext) {
	inv.Start = time.Now()
}

func (t *Timing) After(_ context.Context, inv *core.Invocation, _ *core.EventContext) {
	inv.Duration = time.Since(inv.Start)
	t.logger.Debug(inv.Event + " took " + inv.Duration.String())
}

// ── Metrics ───────────────────────────────────────────────────────────────────

// Metrics records every attempt, retries included, into the run's registry.
// Register it first so its after-hook runs last and sees Timing's duration.
type Metrics struct {
	registry *core.MetricsRegistry
}

func NewMetrics(reg *core.MetricsRegistry) *Metrics { return &Metrics{registry: reg} }

func (m *Metrics) Before(context.Context, *core.Invocation, *core.EventContext) {}

func (m *Metrics) After(_ context.Context, inv *core.Invocation, _ *core.EventContext) {
	m.registry.Record(inv.Event, inv.Duration, inv.Err != nil)
}

// ── Logging ───────────────────────────────────────────────────────────────────

// Logging announces each attempt.  As the innermost middleware its
// after-hook runs before Timing's, so it deliberately reports no duration;
// the duration line belongs to Timing.
type Logging struct {
	logger core.Logger
}

func NewLogging(l core.Logger) *Logging {
	if l == nil {
		l = core.NopLogger{}
	}
	return &Logging{logger: l}
}

func (h *Logging) Before(_ context.Context, inv *core.Invocation, _ *core.EventContext) {
	if inv.Attempt > 0 {
		h.logger.Debug("Retrying event: "+inv.Event, "attempt", inv.Attempt)
		return
	}
	h.logger.Debug("Starting event: " + inv.Event)
}

func (h *Logging) After(_ context.Context, inv *core.Invocation, _ *core.EventContext) {
	if inv.Err == nil {
		h.logger.Info("Completed event: " + inv.Event)
		return
	}
	if inv.Criticality == core.Critical {
		h.logger.Error("Event failed: "+inv.Event, "error", inv.Err.Error())
		return
	}
	h.logger.Warn("Event failed: "+inv.Event, "error", inv.Err.Error())
}

var _ core.Middleware = (*Timing)(nil)
var _ core.Middleware = (*Metrics)(nil)
var _ core.Middleware = (*Logging)(nil)
