// Package pipeline is the event-chain engine: phases of events executed
// strictly in order, each attempt wrapped by the middleware stack, with
// failures resolved by a FaultPolicy.
package pipeline

import (
	"context"
	"time"

	"github.com/Skryldev/image-upscaler/core"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// Phase is a named, ordered group of events.  Phases exist for reporting
// and construction; execution flattens them into one strict sequence.
type Phase struct {
	Name   string
	Events []core.Event
}

// NewPhase creates a phase over the given events.
func NewPhase(name string, events ...core.Event) Phase {
	return Phase{Name: name, Events: events}
}

// Pipeline executes its phases exactly once.  Build one per run; a consumed
// pipeline refuses to run again so stale contexts can never leak between
// runs.
type Pipeline struct {
	phases      []Phase
	middlewares []core.Middleware
	policy      FaultPolicy
	metrics     *core.MetricsRegistry
	consumed    bool
}

// New returns an empty Pipeline with a FailFast policy.
func New() *Pipeline { return &Pipeline{} }

// AddPhase appends a phase.  Returns the same Pipeline for chaining.
func (p *Pipeline) AddPhase(ph Phase) *Pipeline {
	p.phases = append(p.phases, ph)
	return p
}

// Use registers middleware.  Before-hooks run in registration order,
// after-hooks in reverse.
func (p *Pipeline) Use(m ...core.Middleware) *Pipeline {
	p.middlewares = append(p.middlewares, m...)
	return p
}

// WithPolicy sets the fault-tolerance policy.
func (p *Pipeline) WithPolicy(policy FaultPolicy) *Pipeline {
	p.policy = policy
	return p
}

// WithMetrics attaches the registry whose snapshot ends up in the result.
func (p *Pipeline) WithMetrics(reg *core.MetricsRegistry) *Pipeline {
	p.metrics = reg
	return p
}

// Phases returns the registered phases, for reporting.
func (p *Pipeline) Phases() []Phase { return p.phases }

// Run executes every event in phase order against ec.  The returned result
// is never nil when err is nil.  A second Run on the same Pipeline fails
// with ErrPipelineConsumed.
func (p *Pipeline) Run(ctx context.Context, ec *core.EventContext) (*core.PipelineResult, error) {
	if p.consumed {
		return nil, apperrors.New(apperrors.CategoryEvent, "pipeline.run", apperrors.ErrPipelineConsumed)
	}
	p.consumed = true

	res := &core.PipelineResult{Success: true}
	start := time.Now()

run:
	for _, phase := range p.phases {
		for _, ev := range phase.Events {
			if err := ctx.Err(); err != nil {
				res.Success = false
				res.Failure = apperrors.Wrap(apperrors.CategoryEvent, ev.Name(), err)
				break run
			}
			if !p.runEvent(ctx, ev, ec, res) {
				break run
			}
		}
	}

	res.Duration = time.Since(start)
	if p.metrics != nil {
		res.Metrics = p.metrics.Snapshot()
	}
	return res, nil
}

// runEvent drives one event through attempts until the policy settles it.
// Returns false when the run must abort.
func (p *Pipeline) runEvent(ctx context.Context, ev core.Event, ec *core.EventContext, res *core.PipelineResult) bool {
	for attempt := 0; ; attempt++ {
		inv := &core.Invocation{
			Event:       ev.Name(),
			Criticality: ev.Criticality(),
			Attempt:     attempt,
		}
		err := p.attempt(ctx, ev, inv, ec)

		outcome := core.EventOutcome{
			Event:    ev.Name(),
			Attempt:  attempt,
			Success:  err == nil,
			Err:      err,
			Duration: inv.Duration,
		}
		if err != nil {
			outcome.Message = err.Error()
		}
		res.Outcomes = append(res.Outcomes, outcome)

		if err == nil {
			return true
		}

		switch p.policy.Decide(ev.Criticality(), attempt) {
		case Retry:
			continue
		case Continue:
			ec.RecordError(err)
			return true
		default:
			res.Success = false
			res.Failure = err
			return false
		}
	}
}

// attempt wraps one event execution in the middleware stack.  After-hooks
// always run, in reverse registration order, with inv.Err already set.
func (p *Pipeline) attempt(ctx context.Context, ev core.Event, inv *core.Invocation, ec *core.EventContext) error {
	for _, m := range p.middlewares {
		m.Before(ctx, inv, ec)
	}
	inv.Err = ev.Execute(ctx, ec)
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		p.middlewares[i].After(ctx, inv, ec)
	}
	return inv.Err
}
