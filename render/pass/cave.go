package pass

import (
	"image/color"

	"github.com/df-mc/pixelmap/render/ray"
)

// Cave walks past the first contiguous run of opaque blocks (the surface
// and whatever solid terrain sits directly below it), through the gap of
// non-opaque blocks beneath it, and renders the next opaque block it finds
// below that gap — the floor of the cave — per blockpass.cpp's
// Cave::build.
type Cave struct{}

func (Cave) Build(s Sampler, d *Data) {
	minY, _ := s.Bounds()
	tr := ray.New(d.Pos, d.Dir)
	pos := d.Pos
	force := true
	var c color.RGBA
	var prev byte
	for (c.A < 255 || force) && pos.Y >= minY {
		if c.A > prev {
			prev = c.A
		}
		pos = tr.Next()
		var ok bool
		c, ok = s.ColorAt(pos)
		if !ok {
			c = color.RGBA{}
		}
		if prev == 255 && c.A < 255 {
			force = false
		}
	}
	if pos.Y < minY {
		c = color.RGBA{}
	}
	d.Pos, d.Color = pos, c
}
