//go:build linux

package counter

import (
	"encoding/binary"
	"fmt"
	"sort"
	"unsafe"

	"golang.org/x/sys/unix"
)

// calibrationRounds is the number of empty regions sampled at Open to measure
// the fixed cost of the begin/end pair itself.
const calibrationRounds = 32

// PerfSampler counts reference CPU cycles and retired instructions for the
// calling process using a perf_event counter group. The cycle counter leads
// the group so both counters are scheduled, enabled, and read atomically.
type PerfSampler struct {
	leader   int // REF_CPU_CYCLES, group leader
	follower int // INSTRUCTIONS
	open     bool
	closed   bool

	// Fixed overhead of an empty begin/end pair, subtracted from every
	// reading. Calibrated once at Open; see calibrate.
	overhead Counts
}

// Open creates the counter group for the current process on any CPU. Failure
// wraps ErrUnavailable: there is no fallback, a run without real counters
// would produce misleading zero-filled data.
func Open() (*PerfSampler, error) {
	leaderAttr := unix.PerfEventAttr{
		Type:        unix.PERF_TYPE_HARDWARE,
		Size:        uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config:      unix.PERF_COUNT_HW_REF_CPU_CYCLES,
		Read_format: unix.PERF_FORMAT_GROUP,
		Bits:        unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	leader, err := unix.PerfEventOpen(&leaderAttr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return nil, openError("cycle counter", err)
	}

	followerAttr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config: unix.PERF_COUNT_HW_INSTRUCTIONS,
		Bits:   unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	follower, err := unix.PerfEventOpen(&followerAttr, 0, -1, leader, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		unix.Close(leader)
		return nil, openError("instruction counter", err)
	}

	s := &PerfSampler{leader: leader, follower: follower}
	if err := s.calibrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("calibrating counters: %w", err)
	}
	return s, nil
}

func openError(what string, err error) error {
	if err == unix.EACCES || err == unix.EPERM {
		return fmt.Errorf("opening %s: %w: %v (check /proc/sys/kernel/perf_event_paranoid)", what, ErrUnavailable, err)
	}
	return fmt.Errorf("opening %s: %w: %v", what, ErrUnavailable, err)
}

// Begin resets and enables the counter group.
func (s *PerfSampler) Begin() error {
	if s.closed {
		return fmt.Errorf("sampler is closed")
	}
	if s.open {
		return fmt.Errorf("sampling region already open")
	}
	if err := unix.IoctlSetInt(s.leader, unix.PERF_EVENT_IOC_RESET, int(unix.PERF_IOC_FLAG_GROUP)); err != nil {
		return fmt.Errorf("resetting counter group: %w", err)
	}
	if err := unix.IoctlSetInt(s.leader, unix.PERF_EVENT_IOC_ENABLE, int(unix.PERF_IOC_FLAG_GROUP)); err != nil {
		return fmt.Errorf("enabling counter group: %w", err)
	}
	s.open = true
	return nil
}

// End disables the group and returns the region's deltas, with the calibrated
// begin/end overhead subtracted (clamped at zero).
func (s *PerfSampler) End() (Counts, error) {
	raw, err := s.endRaw()
	if err != nil {
		return Counts{}, err
	}
	return Counts{
		Cycles:       subtractClamped(raw.Cycles, s.overhead.Cycles),
		Instructions: subtractClamped(raw.Instructions, s.overhead.Instructions),
	}, nil
}

func (s *PerfSampler) endRaw() (Counts, error) {
	if !s.open {
		return Counts{}, fmt.Errorf("no open sampling region")
	}
	s.open = false
	if err := unix.IoctlSetInt(s.leader, unix.PERF_EVENT_IOC_DISABLE, int(unix.PERF_IOC_FLAG_GROUP)); err != nil {
		return Counts{}, fmt.Errorf("disabling counter group: %w", err)
	}

	// PERF_FORMAT_GROUP layout: u64 nr, then one u64 value per counter in
	// creation order (leader first).
	var buf [3 * 8]byte
	n, err := unix.Read(s.leader, buf[:])
	if err != nil {
		return Counts{}, fmt.Errorf("reading counter group: %w", err)
	}
	if n != len(buf) {
		return Counts{}, fmt.Errorf("short counter read: %d bytes", n)
	}
	if nr := binary.NativeEndian.Uint64(buf[0:8]); nr != 2 {
		return Counts{}, fmt.Errorf("unexpected counter group size: %d", nr)
	}
	return Counts{
		Cycles:       binary.NativeEndian.Uint64(buf[8:16]),
		Instructions: binary.NativeEndian.Uint64(buf[16:24]),
	}, nil
}

// calibrate samples empty regions and records the median raw reading as the
// fixed begin/end overhead. The median rather than the minimum so that one
// quiescent outlier does not understate the subtraction; noise observations
// show this overhead matters for cycles and time but barely for instructions.
func (s *PerfSampler) calibrate() error {
	cycles := make([]uint64, 0, calibrationRounds)
	instructions := make([]uint64, 0, calibrationRounds)

	for i := 0; i < calibrationRounds; i++ {
		if err := s.Begin(); err != nil {
			return err
		}
		raw, err := s.endRaw()
		if err != nil {
			return err
		}
		cycles = append(cycles, raw.Cycles)
		instructions = append(instructions, raw.Instructions)
	}

	s.overhead = Counts{
		Cycles:       medianUint64(cycles),
		Instructions: medianUint64(instructions),
	}
	return nil
}

// Close releases the counter file descriptors.
func (s *PerfSampler) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err1 := unix.Close(s.follower)
	err2 := unix.Close(s.leader)
	if err1 != nil {
		return err1
	}
	return err2
}

func subtractClamped(v, overhead uint64) uint64 {
	if v < overhead {
		return 0
	}
	return v - overhead
}

func medianUint64(vs []uint64) uint64 {
	sorted := make([]uint64, len(vs))
	copy(sorted, vs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}
