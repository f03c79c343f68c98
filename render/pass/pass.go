// Package pass implements a composable block-pass pipeline: a chain of
// Pass values, each mutating a column's traversal position and
// accumulated color.
package pass

import (
	"image/color"

	"github.com/df-mc/pixelmap/render/ray"
)

// Sampler is the read-only view into decoded chunk data a Pass needs. It is
// implemented outside this package (engine/worker adapts one decoded chunk
// to it), to keep this package free of any world/chunk dependency beyond
// coordinates.
type Sampler interface {
	// ColorAt returns the composited color of the block at pos and whether
	// any block is loaded there at all (false past the world's vertical
	// bounds or in an unloaded chunk).
	ColorAt(pos ray.Vec3) (color.RGBA, bool)
	// BlockLightAt returns the 0-15 block-light level at pos.
	BlockLightAt(pos ray.Vec3) byte
	// Height returns the heightmap value for column (x,z): one above the
	// topmost non-empty Y, or chunk.HeightmapUnknown if not known.
	Height(x, z int) int32
	// Bounds returns the world's inclusive vertical range.
	Bounds() (minY, maxY int)
}

// Data is the mutable per-column state a Pass reads and updates.
type Data struct {
	Pos   ray.Vec3
	Dir   ray.Vec3
	Color color.RGBA
}

// Pass mutates d in place given read-only access to s.
type Pass interface {
	Build(s Sampler, d *Data)
}

// Chain runs every pass in order over a fresh Data seeded at (x, minY, z)
// with a straight-down direction (Default then moves Y to the column's
// surface), returning the final color.
type Chain []Pass

// Run starts a column at (x, z) and applies every pass in the chain in
// order (callers are expected to have put Default first).
func (c Chain) Run(s Sampler, x, z int) color.RGBA {
	minY, _ := s.Bounds()
	d := &Data{Pos: ray.Vec3{X: x, Y: minY, Z: z}, Dir: ray.Vec3{X: 0, Y: -1, Z: 0}}
	for _, p := range c {
		p.Build(s, d)
	}
	return d.Color
}
