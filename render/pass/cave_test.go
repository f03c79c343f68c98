package pass

import (
	"image/color"
	"testing"

	"github.com/df-mc/pixelmap/render/ray"
	"github.com/stretchr/testify/assert"
)

func TestCavePassWalksThroughGapToNextFloor(t *testing.T) {
	opaque := color.RGBA{R: 1, G: 1, B: 1, A: 255}
	floor := color.RGBA{R: 9, G: 9, B: 9, A: 255}
	s := &fakeSampler{
		minY: 0, maxY: 255,
		heights: map[[2]int]int32{{0, 0}: 11},
		blocks: map[ray.Vec3]color.RGBA{
			{X: 0, Y: 10, Z: 0}: opaque,
			{X: 0, Y: 9, Z: 0}:  opaque,
			{X: 0, Y: 8, Z: 0}:  opaque,
			{X: 0, Y: 7, Z: 0}:  {},
			{X: 0, Y: 6, Z: 0}:  floor,
		},
	}
	chain := Chain{Default{}, Cave{}}

	got := chain.Run(s, 0, 0)

	assert.Equal(t, floor, got)
}

func TestCavePassRendersTransparentWhenGapReachesBottom(t *testing.T) {
	opaque := color.RGBA{R: 1, G: 1, B: 1, A: 255}
	s := &fakeSampler{
		minY: 6, maxY: 255,
		heights: map[[2]int]int32{{0, 0}: 11},
		blocks: map[ray.Vec3]color.RGBA{
			{X: 0, Y: 10, Z: 0}: opaque,
			{X: 0, Y: 9, Z: 0}:  opaque,
			{X: 0, Y: 8, Z: 0}:  opaque,
			{X: 0, Y: 7, Z: 0}:  {},
			{X: 0, Y: 6, Z: 0}:  {},
		},
	}
	chain := Chain{Default{}, Cave{}}

	got := chain.Run(s, 0, 0)

	assert.Equal(t, color.RGBA{}, got)
}
