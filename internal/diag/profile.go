package diag

import (
	"os"
	"sync"
	"time"

	"github.com/google/pprof/profile"

	"github.com/archipelago-host/archi/internal/hsp"
)

// ProfileWriter accumulates wall-clock samples under caller-chosen labels
// and exports them as a pprof profile.Profile (spec §B.3), one
// pseudo-function per distinct label. cmd/archi records one sample per
// replayed blob, labelled by the blob's path; WrapState records one per
// invocation of a wrapped state function. State Metadata is not consulted.
type ProfileWriter struct {
	mu      sync.Mutex
	byLabel map[string]*accum
	order   []string
}

type accum struct {
	samples int64
	nanos   int64
}

// NewProfileWriter returns an empty ProfileWriter.
func NewProfileWriter() *ProfileWriter {
	return &ProfileWriter{byLabel: make(map[string]*accum)}
}

// WrapState wraps an hsp.StateFunc so each invocation is timed and
// recorded under label. It is available to hand-written states that want
// profiling for free; cmd/archi does not wrap states.
func (p *ProfileWriter) WrapState(label string, fn hsp.StateFunc) hsp.StateFunc {
	return func(ec *hsp.ExecutionContext) hsp.Outcome {
		start := time.Now()
		outcome := fn(ec)
		p.Sample(label, time.Since(start))
		return outcome
	}
}

// record attributes elapsed time to label.
func (p *ProfileWriter) record(label string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.byLabel[label]
	if !ok {
		a = &accum{}
		p.byLabel[label] = a
		p.order = append(p.order, label)
	}
	a.samples++
	a.nanos += elapsed.Nanoseconds()
}

// Sample records one observed (label, elapsed) pair. Called by WrapState
// around each wrapped state invocation, and by cmd/archi once per
// replayed blob.
func (p *ProfileWriter) Sample(label string, elapsed time.Duration) {
	if label == "" {
		label = "?"
	}
	p.record(label, elapsed)
}

// WriteTo assembles the accumulated samples into a pprof profile and
// writes it to path.
func (p *ProfileWriter) WriteTo(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	prof := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "samples", Unit: "count"},
			{Type: "cpu", Unit: "nanoseconds"},
		},
		PeriodType: &profile.ValueType{Type: "cpu", Unit: "nanoseconds"},
		Period:     1,
	}

	funcs := make(map[string]*profile.Function, len(p.order))
	locs := make(map[string]*profile.Location, len(p.order))
	var nextID uint64 = 1
	for _, label := range p.order {
		fn := &profile.Function{ID: nextID, Name: label}
		nextID++
		loc := &profile.Location{ID: nextID, Line: []profile.Line{{Function: fn}}}
		nextID++
		funcs[label] = fn
		locs[label] = loc
		prof.Function = append(prof.Function, fn)
		prof.Location = append(prof.Location, loc)
	}
	for _, label := range p.order {
		a := p.byLabel[label]
		prof.Sample = append(prof.Sample, &profile.Sample{
			Location: []*profile.Location{locs[label]},
			Value:    []int64{a.samples, a.nanos},
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return prof.Write(f)
}
