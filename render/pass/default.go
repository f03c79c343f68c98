package pass

// Default seeds a column at its heightmap surface and looks up that block's
// color. It is always the first pass in a chain.
type Default struct{}

func (Default) Build(s Sampler, d *Data) {
	minY, _ := s.Bounds()
	h := s.Height(d.Pos.X, d.Pos.Z)
	y := int(h) - 1
	if y < minY {
		y = minY
	}
	d.Pos.Y = y
	if c, ok := s.ColorAt(d.Pos); ok {
		d.Color = c
	}
}
