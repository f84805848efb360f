//go:build !linux

package counter

import "fmt"

// PerfSampler is only backed by perf_event on Linux.
type PerfSampler struct{}

// Open always fails off Linux. The harness refuses to run rather than emit
// fabricated counts; tests can use a SimSampler explicitly.
func Open() (*PerfSampler, error) {
	return nil, fmt.Errorf("%w on this platform", ErrUnavailable)
}

func (s *PerfSampler) Begin() error         { return ErrUnavailable }
func (s *PerfSampler) End() (Counts, error) { return Counts{}, ErrUnavailable }
func (s *PerfSampler) Close() error         { return nil }
