package pass

import (
	"image/color"

	"github.com/df-mc/pixelmap/render/blend"
	"github.com/df-mc/pixelmap/render/ray"
)

// gradient is the five-segment elevation gradient blockpass.cpp's
// Color::build interpolates across, from lowest to highest: violet,
// blue, cyan, green, yellow, red.
var gradient = [6]color.RGBA{
	{R: 0x7F, G: 0x00, B: 0xFF, A: 255},
	{R: 0x00, G: 0x00, B: 0xFF, A: 255},
	{R: 0x00, G: 0xFF, B: 0xFF, A: 255},
	{R: 0x00, G: 0xFF, B: 0x00, A: 255},
	{R: 0xFF, G: 0xFF, B: 0x00, A: 255},
	{R: 0xFF, G: 0x00, B: 0x00, A: 255},
}

// Color replaces the block's color with a position along a fixed elevation
// gradient, per blockpass.cpp's Color::build.
type Color struct{}

func (Color) Build(s Sampler, d *Data) {
	minY, maxY := s.Bounds()
	t := ray.Proj(d.Pos.Y, minY, maxY, 0, 256)
	if t >= 256 {
		t = 255
	}
	const step = 256 / 5
	bin := t / step
	if bin >= 5 {
		bin = 4
	}
	norm := float64(t-bin*step) / float64(step)
	d.Color = blend.Interpolate(gradient[bin], gradient[bin+1], norm)
}
