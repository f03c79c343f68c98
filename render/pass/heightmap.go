package pass

import (
	"image/color"

	"github.com/df-mc/pixelmap/render/blend"
	"github.com/df-mc/pixelmap/render/ray"
)

// Heightmap darkens or lightens the current color by a shade of black
// proportional to the block's world-space Y, per blockpass.cpp's
// Heightmap::build.
type Heightmap struct{}

func (Heightmap) Build(s Sampler, d *Data) {
	minY, maxY := s.Bounds()
	y := ray.Proj(d.Pos.Y, minY, maxY, 0, 255)
	d.Color = blend.Tint(color.RGBA{A: 127}, d.Color, byte(y))
}
