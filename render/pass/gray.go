package pass

import (
	"image/color"

	"github.com/df-mc/pixelmap/render/ray"
)

// Gray discards the block's color entirely, replacing it with a neutral
// grey derived from its world-space Y, per blockpass.cpp's Gray::build.
type Gray struct{}

func (Gray) Build(s Sampler, d *Data) {
	minY, maxY := s.Bounds()
	y := byte(ray.Proj(d.Pos.Y, minY, maxY, 0, 255))
	d.Color = color.RGBA{R: y, G: y, B: y, A: 255}
}
