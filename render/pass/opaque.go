package pass

import (
	"image/color"

	"github.com/df-mc/pixelmap/render/ray"
)

// Opaque walks the column downward from the current position until it
// finds a block that is visually non-transparent — any channel nonzero or
// alpha fully opaque — and forces that block's alpha to 255, per
// blockpass.cpp's Opaque::build.
type Opaque struct{}

func (Opaque) Build(s Sampler, d *Data) {
	minY, _ := s.Bounds()
	tr := ray.New(d.Pos, d.Dir)
	pos := d.Pos
	for {
		if c, ok := s.ColorAt(pos); ok && isOpaqueEnough(c) {
			c.A = 255
			d.Pos, d.Color = pos, c
			return
		}
		if pos.Y <= minY {
			return
		}
		pos = tr.Next()
	}
}

func isOpaqueEnough(c color.RGBA) bool {
	return c.R > 0 || c.G > 0 || c.B > 0 || c.A == 255
}
