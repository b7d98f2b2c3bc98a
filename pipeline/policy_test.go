package pipeline

import (
	"testing"

	"github.com/Skryldev/image-upscaler/core"
)

func TestFaultPolicy_Decide(t *testing.T) {
	tests := []struct {
		name        string
		policy      FaultPolicy
		criticality core.Criticality
		attempt     int
		want        Decision
	}{
		{"fail-fast critical", FaultPolicy{Mode: FailFast}, core.Critical, 0, Abort},
		{"fail-fast non-critical", FaultPolicy{Mode: FailFast}, core.NonCritical, 0, Abort},
		{"best-effort critical", FaultPolicy{Mode: BestEffort}, core.Critical, 0, Abort},
		{"best-effort non-critical", FaultPolicy{Mode: BestEffort}, core.NonCritical, 0, Continue},
		{"retry first attempt", FaultPolicy{Mode: RetryN, Retries: 2}, core.Critical, 0, Retry},
		{"retry second attempt", FaultPolicy{Mode: RetryN, Retries: 2}, core.Critical, 1, Retry},
		{"retry exhausted critical", FaultPolicy{Mode: RetryN, Retries: 2}, core.Critical, 2, Abort},
		{"retry exhausted non-critical", FaultPolicy{Mode: RetryN, Retries: 2}, core.NonCritical, 2, Continue},
		{"retry zero budget critical", FaultPolicy{Mode: RetryN, Retries: 0}, core.Critical, 0, Abort},
		{"retry zero budget non-critical", FaultPolicy{Mode: RetryN, Retries: 0}, core.NonCritical, 0, Continue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Decide(tt.criticality, tt.attempt); got != tt.want {
				t.Errorf("Decide(%v, %d) = %v, want %v", tt.criticality, tt.attempt, got, tt.want)
			}
		})
	}
}

func TestParsePolicyMode(t *testing.T) {
	for name, want := range map[string]PolicyMode{
		"fail-fast":   FailFast,
		"failfast":    FailFast,
		"best-effort": BestEffort,
		"besteffort":  BestEffort,
		"retry":       RetryN,
	} {
		got, err := ParsePolicyMode(name)
		if err != nil || got != want {
			t.Errorf("ParsePolicyMode(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParsePolicyMode("yolo"); err == nil {
		t.Error("unknown mode must error")
	}
}
