package pass

import (
	"image/color"
	"math"

	"github.com/df-mc/pixelmap/render/blend"
	"github.com/df-mc/pixelmap/render/ray"
)

// Night darkens the block toward black according to the block-light level
// of the cell one step back along the traversal direction — typically the
// air cell immediately above the surface a ray stopped on — per
// blockpass.cpp's Night::build.
type Night struct{}

func (Night) Build(s Sampler, d *Data) {
	above := ray.Vec3{X: d.Pos.X - d.Dir.X, Y: d.Pos.Y - d.Dir.Y, Z: d.Pos.Z - d.Dir.Z}
	light := s.BlockLightAt(above)
	factor := math.Pow(0.9, float64(15-light))
	d.Color = blend.Interpolate(d.Color, color.RGBA{A: 255}, 1-factor)
}
