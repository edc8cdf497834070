package profiling

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Per-frame CPU timing buckets for the render loop.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("frame.draw")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		Add(name, time.Since(start))
	}
}

// Add records d under name for the current frame
func Add(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix totals every bucket whose name starts with prefix
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

type bucket struct {
	name string
	dur  time.Duration
}

func sorted() []bucket {
	ss := Snapshot()
	list := make([]bucket, 0, len(ss))
	for k, v := range ss {
		list = append(list, bucket{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	return list
}

// Fields returns the N slowest buckets as log fields
func Fields(n int) []zap.Field {
	list := sorted()
	if n > len(list) {
		n = len(list)
	}
	fields := make([]zap.Field, 0, n)
	for _, b := range list[:n] {
		fields = append(fields, zap.Duration(b.name, b.dur))
	}
	return fields
}
