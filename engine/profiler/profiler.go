// Package profiler times named scopes across frames and samples process
// counters for the debug overlay.
package profiler

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// ScopeStats aggregates every run of one scope since the last Report.
type ScopeStats struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
}

func (s ScopeStats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Memory is a snapshot of runtime counters.
type Memory struct {
	HeapAlloc  uint64 // bytes
	Mallocs    uint64
	Goroutines int
	CPUs       int
}

// Report is what Profiler.Report hands out, scopes sorted by total time.
type Report struct {
	Window time.Duration
	Scopes []ScopeStats
	Memory Memory
}

// Profiler is safe for concurrent use.
type Profiler struct {
	mu     sync.Mutex
	scopes map[string]*ScopeStats
	since  time.Time
	now    func() time.Time
}

func New() *Profiler {
	p := &Profiler{scopes: map[string]*ScopeStats{}, now: time.Now}
	p.since = p.now()
	return p
}

// Start begins a scope and returns the func that ends it.
//
//	defer p.Start("World.Update")()
func (p *Profiler) Start(name string) func() {
	begin := p.now()
	return func() {
		d := p.now().Sub(begin)
		if d < 0 {
			d = 0
		}
		p.mu.Lock()
		s := p.scopes[name]
		if s == nil {
			s = &ScopeStats{Name: name}
			p.scopes[name] = s
		}
		s.Count++
		s.Total += d
		if d > s.Max {
			s.Max = d
		}
		p.mu.Unlock()
	}
}

// Report returns the scopes gathered since the previous Report and resets them.
func (p *Profiler) Report() Report {
	p.mu.Lock()
	now := p.now()
	r := Report{Window: now.Sub(p.since), Scopes: make([]ScopeStats, 0, len(p.scopes))}
	for _, s := range p.scopes {
		r.Scopes = append(r.Scopes, *s)
	}
	clear(p.scopes)
	p.since = now
	p.mu.Unlock()

	sort.Slice(r.Scopes, func(i, j int) bool {
		if r.Scopes[i].Total != r.Scopes[j].Total {
			return r.Scopes[i].Total > r.Scopes[j].Total
		}
		return r.Scopes[i].Name < r.Scopes[j].Name
	})
	r.Memory = ReadMemory()
	return r
}

func ReadMemory() Memory {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Memory{
		HeapAlloc:  m.HeapAlloc,
		Mallocs:    m.Mallocs,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       runtime.NumCPU(),
	}
}
