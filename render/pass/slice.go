package pass

// Slice clamps the column's starting Y down to Y if it would otherwise
// start higher, restricting rendering to a horizontal cross-section, per
// blockpass.cpp's Slice::build. It performs no ray walk and no lookup of its
// own: it runs after Default and only moves the position the following
// Opaque, Blend or Cave pass starts from; the color Default sampled is kept.
type Slice struct {
	Y int
}

func (s Slice) Build(_ Sampler, d *Data) {
	if d.Pos.Y > s.Y {
		d.Pos.Y = s.Y
	}
}
