package game

import (
	"fmt"
	"io"
	"math"
)

const (
	asteroidCount  = 100
	bulletLifetime = 100
	worldBound     = 400.0
)

type asteroid struct {
	pos  vec2
	vel  vec2
	size float64
}

type bullet struct {
	pos        vec2
	vel        vec2
	aliveTicks int
}

// Asteroids simulates a ship wandering a field of drifting asteroids, firing
// bullets that destroy them. Asteroids wrap at the +-400 world boundary; the
// ship respawns at the origin when an asteroid reaches it. Churn in the
// entity collections is the point: this workload stresses spawn/despawn far
// more than breakout does.
type Asteroids struct {
	rng *FakeRand

	shipPos vec2
	shipRot float64

	asteroids []asteroid
	bullets   []bullet

	frame      int
	destroyed  int
	shipDeaths int
}

// NewAsteroids builds the starting field from the deterministic source.
func NewAsteroids() *Asteroids {
	a := &Asteroids{rng: NewFakeRand(), shipRot: math.Pi}

	for i := 0; i < asteroidCount; i++ {
		a.asteroids = append(a.asteroids, asteroid{
			pos:  vec2{a.rng.Float(-worldBound, worldBound), a.rng.Float(-worldBound, worldBound)},
			size: a.rng.Float(10, 50),
			vel:  vec2{a.rng.Float(-2, 2), a.rng.Float(-2, 2)},
		})
		// The reference field also rolls a size for the unused axis;
		// consume it to keep the rng stream aligned.
		a.rng.Float(10, 50)
	}

	return a
}

func (a *Asteroids) Name() string { return "asteroids" }

// Step advances movement, the ship, bullets, and collisions by one tick.
func (a *Asteroids) Step() error {
	a.frame++

	for i := range a.asteroids {
		a.asteroids[i].pos = a.asteroids[i].pos.add(a.asteroids[i].vel)
	}
	for i := range a.bullets {
		a.bullets[i].pos = a.bullets[i].pos.add(a.bullets[i].vel)
	}

	a.wrapAsteroids()
	a.moveShip()
	a.ageBullets()
	a.destroyAsteroids()
	a.collideShip()
	return nil
}

func (a *Asteroids) wrapAsteroids() {
	for i := range a.asteroids {
		p := &a.asteroids[i].pos
		if p.X < -worldBound {
			p.X = worldBound
		} else if p.X > worldBound {
			p.X = -worldBound
		}
		if p.Y < -worldBound {
			p.Y = worldBound
		} else if p.Y > worldBound {
			p.Y = -worldBound
		}
	}
}

func (a *Asteroids) moveShip() {
	// rotate a random amount
	a.shipRot += a.rng.Float(-math.Pi/60, math.Pi/60)
	// move a random amount
	a.shipPos = a.shipPos.add(vec2{a.rng.Float(-3, 3), a.rng.Float(-3, 3)})

	if a.frame%a.rng.Intn(1, 50) == 0 {
		a.bullets = append(a.bullets, bullet{
			pos: a.shipPos,
			vel: vec2{a.rng.Float(-2, 2), a.rng.Float(-2, 2)},
		})
	}
}

func (a *Asteroids) ageBullets() {
	alive := a.bullets[:0]
	for _, b := range a.bullets {
		b.aliveTicks++
		if b.aliveTicks <= bulletLifetime {
			alive = append(alive, b)
		}
	}
	a.bullets = alive
}

func (a *Asteroids) destroyAsteroids() {
	const bulletSize = 5.0

	remaining := a.asteroids[:0]
	for _, ast := range a.asteroids {
		hit := false
		for _, b := range a.bullets {
			// Treat both as circles with radius equal to width.
			radius := (ast.size + bulletSize) / 2
			if radius > b.pos.add(ast.pos.scale(-1)).length() {
				hit = true
				break
			}
		}
		if hit {
			a.destroyed++
			continue
		}
		remaining = append(remaining, ast)
	}
	a.asteroids = remaining
}

func (a *Asteroids) collideShip() {
	const shipSize = 40.0

	for _, ast := range a.asteroids {
		radius := (ast.size + shipSize) / 2
		if radius > ast.pos.add(a.shipPos.scale(-1)).length() {
			a.shipDeaths++
			a.shipPos = vec2{}
			a.shipRot = math.Pi
			return
		}
	}
}

// Present writes a one-line frame summary for headful validation runs.
func (a *Asteroids) Present(w io.Writer) error {
	_, err := fmt.Fprintf(w, "asteroids frame=%d asteroids=%d bullets=%d destroyed=%d deaths=%d ship=(%.0f,%.0f)\n",
		a.frame, len(a.asteroids), len(a.bullets), a.destroyed, a.shipDeaths, a.shipPos.X, a.shipPos.Y)
	return err
}
