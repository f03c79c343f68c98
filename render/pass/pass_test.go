package pass

import (
	"image/color"
	"testing"

	"github.com/df-mc/pixelmap/render/ray"
	"github.com/stretchr/testify/assert"
)

type fakeSampler struct {
	minY, maxY int
	blocks     map[ray.Vec3]color.RGBA
	heights    map[[2]int]int32
	light      map[ray.Vec3]byte
}

func (f *fakeSampler) ColorAt(pos ray.Vec3) (color.RGBA, bool) {
	c, ok := f.blocks[pos]
	return c, ok
}

func (f *fakeSampler) BlockLightAt(pos ray.Vec3) byte { return f.light[pos] }

func (f *fakeSampler) Height(x, z int) int32 { return f.heights[[2]int{x, z}] }

func (f *fakeSampler) Bounds() (int, int) { return f.minY, f.maxY }

func TestDefaultPassSamplesHeightmap(t *testing.T) {
	s := &fakeSampler{
		minY: 0, maxY: 255,
		heights: map[[2]int]int32{{0, 0}: 65},
		blocks:  map[ray.Vec3]color.RGBA{{X: 0, Y: 64, Z: 0}: {R: 1, G: 2, B: 3, A: 255}},
	}
	chain := Chain{Default{}}

	got := chain.Run(s, 0, 0)

	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, got)
}

func TestOpaquePassWalksThroughAir(t *testing.T) {
	s := &fakeSampler{
		minY: 0, maxY: 255,
		heights: map[[2]int]int32{{0, 0}: 68},
		blocks: map[ray.Vec3]color.RGBA{
			{X: 0, Y: 67, Z: 0}: {},
			{X: 0, Y: 66, Z: 0}: {},
			{X: 0, Y: 65, Z: 0}: {R: 10, G: 20, B: 30, A: 128},
		},
	}
	chain := Chain{Default{}, Opaque{}}

	got := chain.Run(s, 0, 0)

	assert.Equal(t, byte(255), got.A)
	assert.Equal(t, byte(10), got.R)
}

func TestSlicePassClampsStartingHeight(t *testing.T) {
	s := &fakeSampler{
		minY: 0, maxY: 255,
		heights: map[[2]int]int32{{0, 0}: 100},
		blocks: map[ray.Vec3]color.RGBA{
			{X: 0, Y: 50, Z: 0}: {R: 9, G: 9, B: 9, A: 255},
		},
	}
	chain := Chain{Default{}, Slice{Y: 50}, Opaque{}}

	got := chain.Run(s, 0, 0)

	assert.Equal(t, byte(9), got.R)
}
