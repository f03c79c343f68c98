package pass

import (
	"github.com/df-mc/pixelmap/render/blend"
	"github.com/df-mc/pixelmap/render/ray"
)

// Blend walks the column downward, compositing every block it passes
// through under Mode until the accumulated alpha reaches 255 or the world's
// lower bound is hit, per blockpass.cpp's Blend::build.
type Blend struct {
	Mode blend.Mode
}

func (b Blend) Build(s Sampler, d *Data) {
	minY, _ := s.Bounds()
	tr := ray.New(d.Pos, d.Dir)
	pos := d.Pos
	for d.Color.A < 255 && pos.Y > minY {
		pos = tr.Next()
		if c, ok := s.ColorAt(pos); ok {
			// c lies farther from the viewer than the accumulated color, so
			// it is the backdrop the accumulated color composites over.
			d.Color = b.Mode(c, d.Color)
		}
		d.Pos = pos
	}
}
