// Package counter provides CPU cycle and retired instruction counting over
// arbitrary code regions. The real backend uses the Linux perf_event facility;
// platforms without it refuse to open rather than report fabricated zeros.
package counter

import "errors"

// ErrUnavailable indicates the hardware counting facility could not be opened:
// missing permission, unsupported platform, or counter exhaustion. Measurement
// without counters is never silently degraded, so callers treat this as fatal.
var ErrUnavailable = errors.New("hardware performance counters unavailable")

// Counts holds the counter deltas observed over one sampled region.
type Counts struct {
	Cycles       uint64
	Instructions uint64
}

// Sampler measures cycle and instruction counts over a region of code.
// At most one region may be open at a time; Begin while a region is open is
// an error, which keeps overlapping measurements structurally impossible.
type Sampler interface {
	// Begin opens a sampling region.
	Begin() error
	// End closes the region opened by Begin and returns the counter deltas
	// for it, with the sampler's own fixed begin/end overhead subtracted.
	End() (Counts, error)
	// Close releases the sampler's resources. The sampler is unusable after.
	Close() error
}
