package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkloadsCmd(t *testing.T) {
	out, err := execute(t, "workloads")
	require.NoError(t, err)

	assert.Contains(t, out, "asteroids")
	assert.Contains(t, out, "breakout")
}
