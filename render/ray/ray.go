// Package ray implements the Amanatides-Woo 3-D DDA traversal used by the
// block passes that need to walk more than one block (Opaque, Blend, Cave).
package ray

import "math"

// Vec3 is an integer block-space position or direction vector.
type Vec3 struct {
	X, Y, Z int
}

// Tracer walks a ray through the block grid one cell at a time, starting at
// Start and advancing by Dir (each component -1, 0, or 1) on every call to
// Next. When axes tie, z is stepped before y and y before x.
type Tracer struct {
	pos  Vec3
	dir  Vec3
	step Vec3

	tMax, tDelta [3]float64
}

// New returns a Tracer starting at start and advancing along dir, whose
// components must each be -1, 0, or 1.
func New(start Vec3, dir Vec3) *Tracer {
	t := &Tracer{pos: start, dir: dir}
	t.step = Vec3{X: sign(dir.X), Y: sign(dir.Y), Z: sign(dir.Z)}
	t.tMax[0] = intbound(float64(start.X), float64(dir.X))
	t.tMax[1] = intbound(float64(start.Y), float64(dir.Y))
	t.tMax[2] = intbound(float64(start.Z), float64(dir.Z))
	t.tDelta[0] = tDelta(dir.X)
	t.tDelta[1] = tDelta(dir.Y)
	t.tDelta[2] = tDelta(dir.Z)
	return t
}

// Pos returns the cell the tracer currently occupies.
func (t *Tracer) Pos() Vec3 { return t.pos }

// Next advances the tracer by one cell along whichever axis has the
// smallest accumulated tMax (on a tie, z before y before x), and returns the new
// position.
func (t *Tracer) Next() Vec3 {
	switch {
	case t.tMax[0] < t.tMax[1] && t.tMax[0] < t.tMax[2]:
		t.pos.X += t.step.X
		t.tMax[0] += t.tDelta[0]
	case t.tMax[1] < t.tMax[2]:
		t.pos.Y += t.step.Y
		t.tMax[1] += t.tDelta[1]
	default:
		t.pos.Z += t.step.Z
		t.tMax[2] += t.tDelta[2]
	}
	return t.pos
}

func sign(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

// intbound returns the distance along the ray, starting at s and moving by
// ds per unit step, to the next integer boundary.
func intbound(s, ds float64) float64 {
	if ds == 0 {
		return math.Inf(1)
	}
	if ds < 0 {
		return intbound(-s, -ds)
	}
	s = mod1(s)
	return (1 - s) / ds
}

func mod1(s float64) float64 {
	m := math.Mod(s, 1)
	if m < 0 {
		m++
	}
	return m
}

func tDelta(d int) float64 {
	if d == 0 {
		return math.Inf(1)
	}
	return 1 / math.Abs(float64(d))
}

// Proj linearly maps v from [inLo,inHi] to [outLo,outHi], clamped to the
// output range, as used by the Heightmap/Gray/Color passes to rescale a
// world-space Y into a 0-255 channel value.
func Proj(v, inLo, inHi, outLo, outHi int) int {
	if inHi == inLo {
		return outLo
	}
	t := float64(v-inLo) / float64(inHi-inLo)
	r := outLo + int(t*float64(outHi-outLo))
	if r < outLo {
		return outLo
	}
	if r > outHi {
		return outHi
	}
	return r
}
