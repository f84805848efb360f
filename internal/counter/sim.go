package counter

import "fmt"

// SimSampler produces deterministic synthetic counts. It exists so the driver
// and orchestrator can be tested on machines without perf access; real runs
// never fall back to it implicitly.
type SimSampler struct {
	// BaseCycles and BaseInstructions are returned for the first region.
	BaseCycles       uint64
	BaseInstructions uint64
	// Wobble adds a small deterministic per-region variation so derived
	// distributions have non-zero spread.
	Wobble uint64

	// BeginErr, when set, is returned from every Begin call.
	BeginErr error

	region int
	open   bool
	closed bool
}

// NewSim returns a SimSampler with counts in a plausible range for a
// simulation frame.
func NewSim() *SimSampler {
	return &SimSampler{
		BaseCycles:       2_000_000,
		BaseInstructions: 5_000_000,
		Wobble:           1_000,
	}
}

func (s *SimSampler) Begin() error {
	if s.closed {
		return fmt.Errorf("sampler is closed")
	}
	if s.BeginErr != nil {
		return s.BeginErr
	}
	if s.open {
		return fmt.Errorf("sampling region already open")
	}
	s.open = true
	return nil
}

func (s *SimSampler) End() (Counts, error) {
	if !s.open {
		return Counts{}, fmt.Errorf("no open sampling region")
	}
	s.open = false
	wobble := uint64(s.region%97) * s.Wobble
	s.region++
	return Counts{
		Cycles:       s.BaseCycles + wobble,
		Instructions: s.BaseInstructions + wobble,
	}, nil
}

func (s *SimSampler) Close() error {
	s.closed = true
	return nil
}
