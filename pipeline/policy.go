package pipeline

import (
	"fmt"

	"github.com/Skryldev/image-upscaler/core"
)

// Decision is the engine's move after a failed attempt.
type Decision int

const (
	// Abort stops the run; remaining events never execute.
	Abort Decision = iota
	// Continue records the failure and moves to the next event.
	Continue
	// Retry re-executes the same event through the full middleware stack.
	Retry
)

func (d Decision) String() string {
	switch d {
	case Abort:
		return "abort"
	case Continue:
		return "continue"
	case Retry:
		return "retry"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// PolicyMode selects the failure-handling behaviour for a run.
type PolicyMode int

const (
	// FailFast aborts on any failure regardless of criticality.
	FailFast PolicyMode = iota
	// BestEffort aborts on critical failures and continues past
	// non-critical ones.
	BestEffort
	// RetryN retries each failing event up to N extra attempts, then
	// falls back to BestEffort handling.
	RetryN
)

func (m PolicyMode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case BestEffort:
		return "best-effort"
	case RetryN:
		return "retry"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParsePolicyMode maps a CLI/config name to a PolicyMode.
func ParsePolicyMode(name string) (PolicyMode, error) {
	switch name {
	case "fail-fast", "failfast":
		return FailFast, nil
	case "best-effort", "besteffort":
		return BestEffort, nil
	case "retry":
		return RetryN, nil
	default:
		return FailFast, fmt.Errorf("unknown fault-tolerance mode %q", name)
	}
}

// FaultPolicy decides what the engine does when an event attempt fails.
// Decide is a pure function of criticality and attempt number; it never
// inspects the error itself.
type FaultPolicy struct {
	Mode    PolicyMode
	Retries int // extra attempts under RetryN
}

// Decide returns the engine's move for a failed attempt.  attempt is
// zero-based: 0 is the first execution.
func (p FaultPolicy) Decide(c core.Criticality, attempt int) Decision {
	switch p.Mode {
	case FailFast:
		return Abort
	case BestEffort:
		if c == core.Critical {
			return Abort
		}
		return Continue
	case RetryN:
		if attempt < p.Retries {
			return Retry
		}
		if c == core.Critical {
			return Abort
		}
		return Continue
	default:
		return Abort
	}
}
