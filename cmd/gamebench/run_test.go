package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katharostech/benchmark-games/internal/counter"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunCmd(t *testing.T) {
	defer func() {
		runOpenSampler = func() (counter.Sampler, error) { return counter.Open() }
	}()
	runOpenSampler = func() (counter.Sampler, error) { return counter.NewSim(), nil }

	dir := t.TempDir()
	out, err := execute(t, "run", "breakout", "--iterations", "20", "--out", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "breakout")
	assert.Contains(t, out, "NEW", "first run has no baseline to compare against")

	_, statErr := os.Stat(filepath.Join(dir, "report.svg"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "baseline", "breakout.json"))
	assert.NoError(t, statErr)
}

func TestRunCmdCounterUnavailable(t *testing.T) {
	defer func() {
		runOpenSampler = func() (counter.Sampler, error) { return counter.Open() }
	}()
	runOpenSampler = func() (counter.Sampler, error) { return nil, counter.ErrUnavailable }

	dir := t.TempDir()
	_, err := execute(t, "run", "breakout", "--iterations", "20", "--out", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, counter.ErrUnavailable)

	// Nothing ran, nothing was written.
	_, statErr := os.Stat(filepath.Join(dir, "report.svg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCmdUnknownWorkload(t *testing.T) {
	defer func() {
		runOpenSampler = func() (counter.Sampler, error) { return counter.Open() }
	}()
	opened := false
	runOpenSampler = func() (counter.Sampler, error) {
		opened = true
		return counter.NewSim(), nil
	}

	_, err := execute(t, "run", "pong", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available:")
	assert.False(t, opened, "workload names are validated before counters open")
}

func TestRunCmdHeadful(t *testing.T) {
	defer func() {
		runOpenSampler = func() (counter.Sampler, error) { return counter.Open() }
		runHeadful = false
	}()
	runOpenSampler = func() (counter.Sampler, error) { return counter.NewSim(), nil }

	dir := t.TempDir()
	out, err := execute(t, "run", "breakout", "--headful", "--iterations", "10", "--out", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "breakout")
	_, statErr := os.Stat(filepath.Join(dir, "baseline", "breakout.json"))
	assert.True(t, os.IsNotExist(statErr), "headful runs are never promoted to baselines")
}
