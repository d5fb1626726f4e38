package profiling

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Stopper is an interface for stopping a timed span.
type Stopper interface {
	Stop()
}

// Span is one finished timing.
type Span struct {
	Name     string
	Start    time.Time
	Duration time.Duration
}

// span is a running timing.
type span struct {
	name     string
	start    time.Time
	profiler *Profiler
	once     sync.Once
}

// Stop completes the timing for this span. Calling it twice records once.
func (s *span) Stop() {
	s.once.Do(func() {
		s.profiler.record(Span{Name: s.name, Start: s.start, Duration: time.Since(s.start)})
	})
}

// Profiler collects spans. Modules are timed from several goroutines at once,
// so spans form a flat list rather than a call tree.
type Profiler struct {
	mu      sync.Mutex
	enabled bool
	started time.Time
	spans   []Span
}

var defaultProfiler = &Profiler{}

// New returns an enabled profiler.
func New() *Profiler {
	return &Profiler{enabled: true, started: time.Now()}
}

// Enable turns on the global profiler.
func Enable() {
	defaultProfiler.mu.Lock()
	defer defaultProfiler.mu.Unlock()

	if defaultProfiler.enabled {
		return
	}
	defaultProfiler.enabled = true
	defaultProfiler.started = time.Now()
	defaultProfiler.spans = nil
}

// Disable turns off the global profiler and drops what it collected.
func Disable() {
	defaultProfiler.mu.Lock()
	defer defaultProfiler.mu.Unlock()
	defaultProfiler.enabled = false
	defaultProfiler.spans = nil
}

// Start begins a new timed span on the global profiler.
// It returns a Stopper which must be used to end the span, typically via defer.
func Start(name string) Stopper {
	return defaultProfiler.Start(name)
}

// Spans returns the spans of the global profiler.
func Spans() []Span {
	return defaultProfiler.Spans()
}

// Summarize prints the global profiler's spans to w.
func Summarize(w io.Writer) {
	defaultProfiler.Summarize(w)
}

// Start begins a new timed span.
func (p *Profiler) Start(name string) Stopper {
	p.mu.Lock()
	enabled := p.enabled
	p.mu.Unlock()

	if !enabled {
		return noopStopper{}
	}
	return &span{name: name, start: time.Now(), profiler: p}
}

func (p *Profiler) record(s Span) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		p.spans = append(p.spans, s)
	}
}

// Spans returns finished spans ordered by start time.
func (p *Profiler) Spans() []Span {
	p.mu.Lock()
	out := make([]Span, len(p.spans))
	copy(out, p.spans)
	p.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// Summarize prints every span with its share of the wall time since the
// profiler was enabled.
func (p *Profiler) Summarize(w io.Writer) {
	p.mu.Lock()
	enabled, started := p.enabled, p.started
	p.mu.Unlock()

	if !enabled {
		return
	}

	total := time.Since(started)
	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, s := range p.Spans() {
		percentage := 0.0
		if total > 0 {
			percentage = (float64(s.Duration) / float64(total)) * 100
		}
		fmt.Fprintf(w, "- %s (%v, %.1f%%)\n", s.Name, s.Duration.Round(time.Microsecond*100), percentage)
	}
	fmt.Fprintln(w, "--------------------")
}

// noopStopper is used when the profiler is disabled.
type noopStopper struct{}

func (s noopStopper) Stop() {}
