package core

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// EventStats aggregates all attempts recorded for one event name.
type EventStats struct {
	Count   int64
	Success int64
	Failure int64
	Total   time.Duration
	Min     time.Duration
	Max     time.Duration
}

// Avg returns the mean duration, zero when nothing was recorded.
func (s EventStats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// SuccessRate returns successes as a percentage of all attempts.
func (s EventStats) SuccessRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Count) * 100
}

// MetricsRegistry accumulates per-event statistics for one pipeline run.
// It is exclusively owned by that run: execution is sequential, so a single
// writer mutates it and reads only happen after the run ends.  No locking by
// design; cross-run sharing is not supported.
type MetricsRegistry struct {
	stats map[string]*EventStats
	order []string // first-seen order, for stable reports
}

// NewMetricsRegistry returns an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{stats: make(map[string]*EventStats)}
}

// Record registers one completed attempt (success, failure, or an individual
// retry) for the named event.
func (m *MetricsRegistry) Record(event string, d time.Duration, failed bool) {
	s, ok := m.stats[event]
	if !ok {
		s = &EventStats{Min: d, Max: d}
		m.stats[event] = s
		m.order = append(m.order, event)
	}
	s.Count++
	if failed {
		s.Failure++
	} else {
		s.Success++
	}
	s.Total += d
	if d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
}

// Snapshot returns an immutable point-in-time copy.
func (m *MetricsRegistry) Snapshot() *MetricsSnapshot {
	snap := &MetricsSnapshot{
		Stats: make(map[string]EventStats, len(m.stats)),
		Order: append([]string(nil), m.order...),
	}
	for name, s := range m.stats {
		snap.Stats[name] = *s
	}
	return snap
}

// MetricsSnapshot is a read-only copy of a MetricsRegistry.
type MetricsSnapshot struct {
	Stats map[string]EventStats
	Order []string
}

// Events returns event names in first-execution order; names missing from
// Order (snapshots built by hand in tests) are appended sorted.
func (s *MetricsSnapshot) Events() []string {
	seen := make(map[string]bool, len(s.Order))
	out := make([]string, 0, len(s.Stats))
	for _, name := range s.Order {
		if _, ok := s.Stats[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range s.Stats {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// WriteReport renders the metrics table:
//
//	Event                 Total  Success  Failed    Avg(µs)    Min(µs)    Max(µs)  Success%
func (s *MetricsSnapshot) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-22s %6s %8s %7s %10s %10s %10s %9s\n",
		"Event", "Total", "Success", "Failed", "Avg(µs)", "Min(µs)", "Max(µs)", "Success%"); err != nil {
		return err
	}
	for _, name := range s.Events() {
		st := s.Stats[name]
		if _, err := fmt.Fprintf(w, "%-22s %6d %8d %7d %10d %10d %10d %8.1f%%\n",
			name, st.Count, st.Success, st.Failure,
			st.Avg().Microseconds(), st.Min.Microseconds(), st.Max.Microseconds(),
			st.SuccessRate()); err != nil {
			return err
		}
	}
	return nil
}
