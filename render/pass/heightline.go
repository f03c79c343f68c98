package pass

import (
	"image/color"

	"github.com/df-mc/pixelmap/render/blend"
)

// Heightline darkens every block whose world-space Y is a multiple of
// Frequency, drawing contour lines across the map, per blockpass.cpp's
// Heightline::build.
type Heightline struct {
	Frequency int
}

func (h Heightline) Build(s Sampler, d *Data) {
	if h.Frequency <= 0 || d.Pos.Y%h.Frequency != 0 {
		return
	}
	d.Color = blend.Tint(color.RGBA{A: 128}, d.Color, 160)
}
