package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"asteroids", "breakout"}, Names())

	for _, name := range Names() {
		w, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, w.Name())

		_, presents := w.(Presenter)
		assert.True(t, presents, "bundled workloads support headful validation")
	}
}

func TestNewUnknownWorkload(t *testing.T) {
	_, err := New("pong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown workload")
}
