package game

import (
	"fmt"
	"io"
	"math"
)

// Fixed logical tick. The simulation advances 1/60s per Step regardless of
// wall-clock time, so frame cost is the only variable being measured.
const breakoutTick = 1.0 / 60.0

type vec2 struct {
	X, Y float64
}

func (v vec2) add(o vec2) vec2     { return vec2{v.X + o.X, v.Y + o.Y} }
func (v vec2) scale(s float64) vec2 { return vec2{v.X * s, v.Y * s} }

func (v vec2) length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v vec2) normalize() vec2 {
	l := v.length()
	if l == 0 {
		return v
	}
	return vec2{v.X / l, v.Y / l}
}

// collision sides, from the moving object's point of view.
type collisionSide int

const (
	collideLeft collisionSide = iota
	collideRight
	collideTop
	collideBottom
)

// collideAABB reports whether two centered boxes overlap and, if so, which
// side of b was hit, picked by smallest penetration depth.
func collideAABB(aPos, aSize, bPos, bSize vec2) (collisionSide, bool) {
	dx := aPos.X - bPos.X
	px := (aSize.X+bSize.X)/2 - math.Abs(dx)
	if px <= 0 {
		return 0, false
	}
	dy := aPos.Y - bPos.Y
	py := (aSize.Y+bSize.Y)/2 - math.Abs(dy)
	if py <= 0 {
		return 0, false
	}

	if px < py {
		if dx > 0 {
			return collideRight, true
		}
		return collideLeft, true
	}
	if dy > 0 {
		return collideTop, true
	}
	return collideBottom, true
}

type brick struct {
	pos  vec2
	size vec2
}

// Breakout is the classic paddle-and-bricks game driven by a deterministic
// random paddle. Geometry and speeds follow the reference simulation: 900x600
// bounds, 120x30 paddle at y=-215 moving 500 units/s, a 30x30 ball at 400
// units/s, and a 4x5 grid of 150x30 bricks.
type Breakout struct {
	rng *FakeRand

	paddleX float64
	ballPos vec2
	ballVel vec2
	walls   []brick
	bricks  []brick
	score   int
	frame   int
}

// NewBreakout builds the starting state. Two instances always simulate
// identical games.
func NewBreakout() *Breakout {
	b := &Breakout{
		rng:     NewFakeRand(),
		paddleX: 0,
		ballPos: vec2{0, -50},
		ballVel: vec2{0.5, -0.5}.normalize().scale(400.0),
	}

	const wallThickness = 10.0
	bounds := vec2{900, 600}
	b.walls = []brick{
		{pos: vec2{-bounds.X / 2, 0}, size: vec2{wallThickness, bounds.Y + wallThickness}},
		{pos: vec2{bounds.X / 2, 0}, size: vec2{wallThickness, bounds.Y + wallThickness}},
		{pos: vec2{0, -bounds.Y / 2}, size: vec2{bounds.X + wallThickness, wallThickness}},
		{pos: vec2{0, bounds.Y / 2}, size: vec2{bounds.X + wallThickness, wallThickness}},
	}

	const (
		brickRows    = 4
		brickColumns = 5
		brickSpacing = 20.0
	)
	brickSize := vec2{150, 30}
	bricksWidth := brickColumns*(brickSize.X+brickSpacing) - brickSpacing
	// center the bricks and move them up a bit
	offset := vec2{-(bricksWidth - brickSize.X) / 2, 100}

	for row := 0; row < brickRows; row++ {
		y := float64(row) * (brickSize.Y + brickSpacing)
		for column := 0; column < brickColumns; column++ {
			b.bricks = append(b.bricks, brick{
				pos:  vec2{float64(column) * (brickSize.X + brickSpacing), y}.add(offset),
				size: brickSize,
			})
		}
	}

	return b
}

func (b *Breakout) Name() string { return "breakout" }

// Step advances paddle, ball, and collisions by one tick.
func (b *Breakout) Step() error {
	b.frame++

	// Paddle drifts one direction per frame, chosen by the fake rng.
	direction := 1.0
	if b.rng.Bool() {
		direction = -1.0
	}
	b.paddleX += breakoutTick * direction * 500.0
	b.paddleX = math.Min(380.0, math.Max(-380.0, b.paddleX))

	b.ballPos = b.ballPos.add(b.ballVel.scale(breakoutTick))

	b.collideBall()
	return nil
}

func (b *Breakout) collideBall() {
	ballSize := vec2{30, 30}
	paddle := brick{pos: vec2{b.paddleX, -215}, size: vec2{120, 30}}

	solids := make([]brick, 0, len(b.walls)+1)
	solids = append(solids, b.walls...)
	solids = append(solids, paddle)

	for _, s := range solids {
		if side, ok := collideAABB(b.ballPos, ballSize, s.pos, s.size); ok {
			b.reflect(side)
			return
		}
	}

	for i, br := range b.bricks {
		if side, ok := collideAABB(b.ballPos, ballSize, br.pos, br.size); ok {
			b.score++
			b.bricks = append(b.bricks[:i], b.bricks[i+1:]...)
			b.reflect(side)
			return
		}
	}
}

// reflect flips velocity only when it points into the collided surface, so a
// ball leaving a surface is not bounced back onto it.
func (b *Breakout) reflect(side collisionSide) {
	switch side {
	case collideLeft:
		if b.ballVel.X > 0 {
			b.ballVel.X = -b.ballVel.X
		}
	case collideRight:
		if b.ballVel.X < 0 {
			b.ballVel.X = -b.ballVel.X
		}
	case collideTop:
		if b.ballVel.Y < 0 {
			b.ballVel.Y = -b.ballVel.Y
		}
	case collideBottom:
		if b.ballVel.Y > 0 {
			b.ballVel.Y = -b.ballVel.Y
		}
	}
}

// Score reports bricks destroyed so far.
func (b *Breakout) Score() int { return b.score }

// BricksRemaining reports how many bricks are still alive.
func (b *Breakout) BricksRemaining() int { return len(b.bricks) }

// Present writes a one-line frame summary for headful validation runs.
func (b *Breakout) Present(w io.Writer) error {
	_, err := fmt.Fprintf(w, "breakout frame=%d score=%d bricks=%d ball=(%.0f,%.0f) paddle=%.0f\n",
		b.frame, b.score, len(b.bricks), b.ballPos.X, b.ballPos.Y, b.paddleX)
	return err
}
