package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// baselineVersion guards the persisted format. A mismatch degrades to
// "no baseline" instead of misinterpreting old data.
const baselineVersion = 1

// ErrNoBaseline reports that no usable previous run exists for a workload.
// This is recoverable: first-run bootstrapping and corrupt files both degrade
// to a current-only report.
var ErrNoBaseline = errors.New("no usable baseline")

// SampleStore accumulates the current run's samples in iteration order and
// produces the immutable Run once the iteration budget is exhausted.
type SampleStore struct {
	run       Run
	finalized bool
}

func NewSampleStore(workload string, iterations int, headless bool) *SampleStore {
	return &SampleStore{
		run: Run{
			Workload:   workload,
			Iterations: iterations,
			Headless:   headless,
			Comparable: headless,
			StartedAt:  time.Now(),
			Samples:    make([]Sample, 0, iterations),
		},
	}
}

// Append records one completed iteration.
func (s *SampleStore) Append(sample Sample) error {
	if s.finalized {
		return fmt.Errorf("sample store for %s already finalized", s.run.Workload)
	}
	s.run.Samples = append(s.run.Samples, sample)
	return nil
}

// Finalize seals the store and returns the completed Run.
func (s *SampleStore) Finalize() Run {
	s.finalized = true
	return s.run
}

type baselineFile struct {
	Version int `json:"version"`
	Run     Run `json:"run"`
}

// BaselineStore persists one previous Run per workload under a directory.
// The previous run is read once at start and replaced once at the end of a
// successful invocation; there is no history beyond that.
type BaselineStore struct {
	dir string
}

func NewBaselineStore(dir string) (*BaselineStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create baseline directory %s: %w", dir, err)
	}
	return &BaselineStore{dir: dir}, nil
}

func (s *BaselineStore) path(workload string) string {
	return filepath.Join(s.dir, workload+".json")
}

// Load returns the previous Run for a workload. Missing, corrupt,
// version-mismatched, or iteration-mismatched files all wrap ErrNoBaseline so
// callers can degrade uniformly.
func (s *BaselineStore) Load(workload string, iterations int) (Run, error) {
	data, err := os.ReadFile(s.path(workload))
	if err != nil {
		if os.IsNotExist(err) {
			return Run{}, fmt.Errorf("%w for %s", ErrNoBaseline, workload)
		}
		return Run{}, fmt.Errorf("%w for %s: %v", ErrNoBaseline, workload, err)
	}

	var file baselineFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Run{}, fmt.Errorf("%w for %s: corrupt file: %v", ErrNoBaseline, workload, err)
	}
	if file.Version != baselineVersion {
		return Run{}, fmt.Errorf("%w for %s: version %d, want %d", ErrNoBaseline, workload, file.Version, baselineVersion)
	}
	if file.Run.Iterations != iterations {
		return Run{}, fmt.Errorf("%w for %s: recorded with %d iterations, current run uses %d",
			ErrNoBaseline, workload, file.Run.Iterations, iterations)
	}
	if !file.Run.Comparable || len(file.Run.Samples) != file.Run.Iterations {
		return Run{}, fmt.Errorf("%w for %s: stored run is not comparable", ErrNoBaseline, workload)
	}
	return file.Run, nil
}

// Replace atomically promotes a Run to be the workload's baseline: the file
// is written to a temp location in the same directory and renamed into place,
// so a crash mid-persist never corrupts the existing baseline.
func (s *BaselineStore) Replace(run Run) error {
	if !run.Comparable {
		return fmt.Errorf("refusing to persist non-comparable run of %s as baseline", run.Workload)
	}
	if len(run.Samples) != run.Iterations {
		return fmt.Errorf("refusing to persist partial run of %s (%d of %d samples)",
			run.Workload, len(run.Samples), run.Iterations)
	}

	data, err := json.MarshalIndent(baselineFile{Version: baselineVersion, Run: run}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline for %s: %w", run.Workload, err)
	}

	tmp, err := os.CreateTemp(s.dir, run.Workload+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create baseline temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close baseline temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(run.Workload)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move baseline into place: %w", err)
	}

	slog.Debug("Promoted run to baseline", "workload", run.Workload, "samples", len(run.Samples))
	return nil
}
