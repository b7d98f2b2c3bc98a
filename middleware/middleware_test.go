package middleware

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Skryldev/image-upscaler/core"
)

// memLogger captures log lines for assertions.
type memLogger struct {
	lines []string
}

func (m *memLogger) record(level, msg string) {
	m.lines = append(m.lines, level+": "+msg)
}

func (m *memLogger) Debug(msg string, _ ...interface{}) { m.record("debug", msg) }
func (m *memLogger) Info(msg string, _ ...interface{})  { m.record("info", msg) }
func (m *memLogger) Warn(msg string, _ ...interface{})  { m.record("warn", msg) }
func (m *memLogger) Error(msg string, _ ...interface{}) { m.record("error", msg) }

func (m *memLogger) contains(s string) bool {
	for _, l := range m.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

func TestTiming_MeasuresDuration(t *testing.T) {
	log := &memLogger{}
	tm := NewTiming(log)
	inv := &core.Invocation{Event: "LoadImage"}

	tm.Before(context.Background(), inv, nil)
	time.Sleep(2 * time.Millisecond)
	tm.After(context.Background(), inv, nil)

	if inv.Duration < 2*time.Millisecond {
		t.Errorf("duration: got %v", inv.Duration)
	}
	if !log.contains("LoadImage took") {
		t.Errorf("missing timing line: %v", log.lines)
	}
}

func TestMetrics_RecordsEveryAttempt(t *testing.T) {
	reg := core.NewMetricsRegistry()
	m := NewMetrics(reg)

	m.After(context.Background(), &core.Invocation{Event: "Flaky", Attempt: 0, Duration: time.Millisecond, Err: errors.New("x")}, nil)
	m.After(context.Background(), &core.Invocation{Event: "Flaky", Attempt: 1, Duration: time.Millisecond}, nil)

	st := reg.Snapshot().Stats["Flaky"]
	if st.Count != 2 || st.Success != 1 || st.Failure != 1 {
		t.Errorf("stats: %+v", st)
	}
}

func TestLogging_Severities(t *testing.T) {
	log := &memLogger{}
	h := NewLogging(log)

	h.After(context.Background(), &core.Invocation{Event: "LoadImage"}, nil)
	if !log.contains("info: Completed event: LoadImage") {
		t.Errorf("success log: %v", log.lines)
	}

	h.After(context.Background(), &core.Invocation{
		Event: "AnalyzeContent", Criticality: core.NonCritical, Err: errors.New("boom"),
	}, nil)
	if !log.contains("warn: Event failed: AnalyzeContent") {
		t.Errorf("non-critical failure log: %v", log.lines)
	}

	h.After(context.Background(), &core.Invocation{
		Event: "SaveImage", Criticality: core.Critical, Err: errors.New("boom"),
	}, nil)
	if !log.contains("error: Event failed: SaveImage") {
		t.Errorf("critical failure log: %v", log.lines)
	}
}

func TestLogging_RetryAnnouncement(t *testing.T) {
	log := &memLogger{}
	h := NewLogging(log)
	h.Before(context.Background(), &core.Invocation{Event: "Flaky", Attempt: 1}, nil)
	if !log.contains("Retrying event: Flaky") {
		t.Errorf("retry log: %v", log.lines)
	}
}

func TestNewLogger_LevelFallback(t *testing.T) {
	l := NewLogger("nonsense", false)
	if l.GetLevel().String() != "info" {
		t.Errorf("level: got %v, want info", l.GetLevel())
	}
	l = NewLogger("debug", false)
	if l.GetLevel().String() != "debug" {
		t.Errorf("level: got %v, want debug", l.GetLevel())
	}
}
