package pass

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleChunkRegionHasTransparentRemainder(t *testing.T) {
	cs := &ChunkScratch{X: 0, Z: 0}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			cs.Pixels[x][z] = color.RGBA{R: 128, G: 64, B: 32, A: 255}
		}
	}
	r := NewRegionScratch(0, 0)
	r.Place(cs)

	assert.Equal(t, color.RGBA{R: 128, G: 64, B: 32, A: 255}, r.Pixels[0][0])
	assert.Equal(t, color.RGBA{R: 128, G: 64, B: 32, A: 255}, r.Pixels[15][15])
	assert.Equal(t, color.RGBA{}, r.Pixels[16][0])
	assert.Equal(t, color.RGBA{}, r.Pixels[511][511])
}

func TestBoundsSingleRegion(t *testing.T) {
	regions := map[[2]int]*RegionScratch{{3, -2}: NewRegionScratch(3, -2)}

	b := Bounds(regions)

	assert.Equal(t, BBox{MinX: 3, MinZ: -2, MaxX: 3, MaxZ: -2}, b)
	assert.Equal(t, 512, b.Width())
	assert.Equal(t, 512, b.Height())
}
