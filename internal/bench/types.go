// Package bench contains the measurement harness: the frame driver that runs
// a workload for a fixed number of iterations, the in-memory sample store for
// the current run, and the persisted baseline of the previous run.
package bench

import "time"

// Sample is one iteration's measurement. Immutable once recorded.
type Sample struct {
	FrameTime    time.Duration `json:"frame_time_ns"`
	Cycles       uint64        `json:"cpu_cycles"`
	Instructions uint64        `json:"cpu_instructions"`
}

// Run is an ordered sequence of Samples plus metadata for one workload
// execution. A Run is only ever materialized complete: the driver discards
// partial runs instead of finalizing them.
type Run struct {
	Workload   string    `json:"workload"`
	Iterations int       `json:"iterations"`
	Headless   bool      `json:"headless"`
	// Comparable marks runs whose statistics may be compared across
	// invocations and promoted to baseline. Headful validation runs are
	// tagged non-comparable: their iteration budget is too small and
	// presentation cost pollutes the frames around each measurement.
	Comparable bool      `json:"comparable"`
	StartedAt  time.Time `json:"started_at"`
	Samples    []Sample  `json:"samples"`
}
