// Package metrics samples Go runtime memory statistics around an
// evaluation, for the --details report.
package metrics

import (
	"fmt"
	"runtime"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by live heap objects
	TotalAlloc  uint64 // cumulative bytes allocated
	Sys         uint64 // total bytes obtained from the OS
	NumGC       uint32 // completed GC cycles
	HeapObjects uint64 // live heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		TotalAlloc:  m.TotalAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

// MemoryUsage is the difference between two snapshots.
type MemoryUsage struct {
	Allocated uint64 // bytes allocated between the snapshots
	GCCycles  uint32
	HeapAfter uint64
}

// Usage returns what happened between before and after.
func Usage(before, after MemorySnapshot) MemoryUsage {
	u := MemoryUsage{
		GCCycles:  after.NumGC - before.NumGC,
		HeapAfter: after.HeapAlloc,
	}
	if after.TotalAlloc > before.TotalAlloc {
		u.Allocated = after.TotalAlloc - before.TotalAlloc
	}
	return u
}

func (u MemoryUsage) String() string {
	return fmt.Sprintf("%s allocated, %d GC cycle(s), heap %s",
		FormatBytes(u.Allocated), u.GCCycles, FormatBytes(u.HeapAfter))
}

// FormatBytes renders n with a binary unit (B, KiB, MiB, ...).
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
