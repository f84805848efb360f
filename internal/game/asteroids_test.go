package game

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsteroidsDeterministic(t *testing.T) {
	a := NewAsteroids()
	b := NewAsteroids()

	for i := 0; i < 500; i++ {
		require.NoError(t, a.Step())
		require.NoError(t, b.Step())
	}

	var outA, outB bytes.Buffer
	require.NoError(t, a.Present(&outA))
	require.NoError(t, b.Present(&outB))
	assert.Equal(t, outA.String(), outB.String())
}

func TestAsteroidsStartingField(t *testing.T) {
	a := NewAsteroids()

	assert.Len(t, a.asteroids, asteroidCount)
	assert.Empty(t, a.bullets)
	for _, ast := range a.asteroids {
		assert.GreaterOrEqual(t, ast.size, 10.0)
		assert.Less(t, ast.size, 50.0)
	}
}

func TestAsteroidsConservation(t *testing.T) {
	a := NewAsteroids()

	for i := 0; i < 1000; i++ {
		require.NoError(t, a.Step())
		assert.Equal(t, asteroidCount, len(a.asteroids)+a.destroyed,
			"asteroids are only removed by being destroyed")
	}
}

func TestAsteroidsShipFires(t *testing.T) {
	a := NewAsteroids()

	fired := false
	for i := 0; i < 200 && !fired; i++ {
		require.NoError(t, a.Step())
		fired = len(a.bullets) > 0 || a.destroyed > 0
	}
	assert.True(t, fired, "ship should fire within 200 ticks")
}

func TestAsteroidsBulletsExpire(t *testing.T) {
	a := NewAsteroids()

	for i := 0; i < 1000; i++ {
		require.NoError(t, a.Step())
		for _, b := range a.bullets {
			assert.LessOrEqual(t, b.aliveTicks, bulletLifetime)
		}
	}
}

func TestAsteroidsWraparound(t *testing.T) {
	a := NewAsteroids()

	for i := 0; i < 2000; i++ {
		require.NoError(t, a.Step())
		for _, ast := range a.asteroids {
			assert.LessOrEqual(t, ast.pos.X, worldBound+0.01)
			assert.GreaterOrEqual(t, ast.pos.X, -worldBound-0.01)
			assert.LessOrEqual(t, ast.pos.Y, worldBound+0.01)
			assert.GreaterOrEqual(t, ast.pos.Y, -worldBound-0.01)
		}
	}
}
