// Package profiler times the phases of a classification run
package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Profiler records the duration of named phases. Phases may be recorded
// more than once and from several goroutines.
type Profiler struct {
	mu     sync.RWMutex
	phases map[string][]time.Duration
	order  []string
	now    func() time.Time
}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{
		phases: make(map[string][]time.Duration),
		now:    time.Now,
	}
}

// Timer measures one execution of a phase
type Timer struct {
	profiler *Profiler
	phase    string
	start    time.Time
}

// Start begins timing a phase
func (p *Profiler) Start(phase string) *Timer {
	return &Timer{profiler: p, phase: phase, start: p.now()}
}

// Stop records the elapsed time and returns it
func (t *Timer) Stop() time.Duration {
	d := t.profiler.now().Sub(t.start)
	t.profiler.Record(t.phase, d)
	return d
}

// Record manually records a duration for a phase
func (p *Profiler) Record(phase string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.phases[phase]; !ok {
		p.order = append(p.order, phase)
	}
	p.phases[phase] = append(p.phases[phase], d)
}

// Time runs fn as a phase and returns its error
func (p *Profiler) Time(phase string, fn func() error) error {
	timer := p.Start(phase)
	defer timer.Stop()
	return fn()
}

// Stats contains timing statistics for a phase
type Stats struct {
	Phase   string
	Count   int
	Total   time.Duration
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
	Median  time.Duration
}

// GetStats returns the statistics for a phase
func (p *Profiler) GetStats(phase string) *Stats {
	p.mu.RLock()
	times := append([]time.Duration(nil), p.phases[phase]...)
	p.mu.RUnlock()

	if len(times) == 0 {
		return &Stats{Phase: phase}
	}

	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	var total time.Duration
	for _, d := range times {
		total += d
	}

	return &Stats{
		Phase:   phase,
		Count:   len(times),
		Total:   total,
		Average: total / time.Duration(len(times)),
		Min:     times[0],
		Max:     times[len(times)-1],
		Median:  times[len(times)/2],
	}
}

// GetAllStats returns statistics for every phase in first-recorded order
func (p *Profiler) GetAllStats() []*Stats {
	p.mu.RLock()
	phases := append([]string(nil), p.order...)
	p.mu.RUnlock()

	stats := make([]*Stats, 0, len(phases))
	for _, phase := range phases {
		stats = append(stats, p.GetStats(phase))
	}
	return stats
}

// PrintReport writes a timing table
func (p *Profiler) PrintReport(w io.Writer) {
	stats := p.GetAllStats()
	if len(stats) == 0 {
		fmt.Fprintln(w, "No timing data available")
		return
	}

	fmt.Fprintf(w, "⏱️  Phase Timings\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "%-16s %6s %10s %10s %10s\n", "Phase", "Count", "Total", "Avg", "Max")
	fmt.Fprintf(w, "───────────────────────────────────────────────────────\n")
	for _, s := range stats {
		fmt.Fprintf(w, "%-16s %6d %10s %10s %10s\n",
			truncate(s.Phase, 16), s.Count, formatDuration(s.Total), formatDuration(s.Average), formatDuration(s.Max))
	}
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════\n")
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
