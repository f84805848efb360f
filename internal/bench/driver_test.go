package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katharostech/benchmark-games/internal/counter"
)

// fakeWorkload counts steps and can be told to fail partway through a run.
type fakeWorkload struct {
	name   string
	steps  int
	failAt int // fail on this step number, 0 means never
}

func (f *fakeWorkload) Name() string { return f.name }

func (f *fakeWorkload) Step() error {
	f.steps++
	if f.failAt > 0 && f.steps >= f.failAt {
		return fmt.Errorf("simulation blew up at step %d", f.steps)
	}
	return nil
}

type presentingWorkload struct {
	fakeWorkload
	presents int
}

func (p *presentingWorkload) Present(w io.Writer) error {
	p.presents++
	_, err := fmt.Fprintf(w, "frame %d\n", p.presents)
	return err
}

func TestDriverCollectsOneSamplePerIteration(t *testing.T) {
	d := &Driver{Sampler: counter.NewSim()}
	w := &fakeWorkload{name: "fixed"}

	run, err := d.Run(context.Background(), w, 1000, true)
	require.NoError(t, err)

	assert.Equal(t, 1000, w.steps)
	assert.Len(t, run.Samples, 1000)
	assert.Equal(t, "fixed", run.Workload)
	assert.Equal(t, 1000, run.Iterations)
	assert.True(t, run.Headless)
	assert.True(t, run.Comparable)
	assert.False(t, run.StartedAt.IsZero())

	for i, s := range run.Samples {
		assert.NotZero(t, s.Cycles, "sample %d", i)
		assert.NotZero(t, s.Instructions, "sample %d", i)
		assert.GreaterOrEqual(t, s.FrameTime.Nanoseconds(), int64(0))
	}
}

func TestDriverHeadfulRunIsNonComparable(t *testing.T) {
	var shown bytes.Buffer
	d := &Driver{Sampler: counter.NewSim(), PresentTo: &shown}
	w := &presentingWorkload{fakeWorkload: fakeWorkload{name: "vis"}}

	run, err := d.Run(context.Background(), w, 10, false)
	require.NoError(t, err)

	assert.False(t, run.Comparable)
	assert.False(t, run.Headless)
	assert.Equal(t, 10, w.presents, "every frame presents in headful mode")
	assert.Contains(t, shown.String(), "frame 10")
}

func TestDriverDiscardsPartialRunOnFailure(t *testing.T) {
	sampler := counter.NewSim()
	d := &Driver{Sampler: sampler}
	w := &fakeWorkload{name: "doomed", failAt: 5}

	run, err := d.Run(context.Background(), w, 100, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed at iteration")
	assert.Empty(t, run.Samples, "partial samples are discarded")

	// The sampler's region was closed on the way out, so the same sampler
	// can drive the next workload.
	healthy, err := d.Run(context.Background(), &fakeWorkload{name: "ok"}, 10, true)
	require.NoError(t, err)
	assert.Len(t, healthy.Samples, 10)
}

func TestDriverSamplerFailureAborts(t *testing.T) {
	sampler := counter.NewSim()
	sampler.BeginErr = counter.ErrUnavailable
	d := &Driver{Sampler: sampler}
	w := &fakeWorkload{name: "never"}

	_, err := d.Run(context.Background(), w, 100, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, counter.ErrUnavailable)
	assert.Equal(t, 0, w.steps, "no iteration executes without counters")
}

func TestDriverHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &Driver{Sampler: counter.NewSim()}
	w := &fakeWorkload{name: "canceled"}

	_, err := d.Run(ctx, w, 100, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, w.steps)
}

func TestDriverRejectsZeroIterations(t *testing.T) {
	d := &Driver{Sampler: counter.NewSim()}

	_, err := d.Run(context.Background(), &fakeWorkload{name: "none"}, 0, true)
	assert.Error(t, err)
}

func TestDriverHeadfulWithoutPresenter(t *testing.T) {
	d := &Driver{Sampler: counter.NewSim(), PresentTo: &bytes.Buffer{}}
	w := &fakeWorkload{name: "blind"}

	run, err := d.Run(context.Background(), w, 5, false)
	require.NoError(t, err)
	assert.Len(t, run.Samples, 5)
	assert.False(t, run.Comparable)
}

func TestDriverErrorIsNotRetried(t *testing.T) {
	d := &Driver{Sampler: counter.NewSim()}
	w := &fakeWorkload{name: "once", failAt: 1}

	_, err := d.Run(context.Background(), w, 100, true)
	require.Error(t, err)
	assert.Equal(t, 1, w.steps)
	assert.False(t, errors.Is(err, context.Canceled))
}
