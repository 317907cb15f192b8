package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-tick CPU timing. Instrument with defer profiling.Track("pkg.Op")()
// and call ResetFrame at the start of every tick.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCounts = make(map[string]int)
)

// Track returns a stop function that records the elapsed time under name.
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCounts[name]++
		mu.Unlock()
	}
}

// ResetFrame clears the current totals.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCounts)
	mu.Unlock()
}

// Sample is the accumulated time and call count of one tracked name.
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

// Snapshot returns the current totals, slowest first.
func Snapshot() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(frameTotals))
	for k, v := range frameTotals {
		out = append(out, Sample{Name: k, Total: v, Calls: frameCounts[k]})
	}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Calls returns how often name was tracked since the last reset.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return frameCounts[name]
}

// TopN formats the n slowest entries, e.g.
// "render.Update:4.2ms, render.VisibilityPass:2.1ms(x9)".
func TopN(n int) string {
	ss := Snapshot()
	n = min(n, len(ss))
	parts := make([]string, 0, n)
	for _, s := range ss[:n] {
		part := s.Name + ":" + strconv.FormatFloat(float64(s.Total.Microseconds())/1000.0, 'f', 1, 64) + "ms"
		if s.Calls > 1 {
			part += "(x" + strconv.Itoa(s.Calls) + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
