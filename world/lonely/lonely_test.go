package lonely

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullyPopulateRegion(d *Detector, rx, rz int) {
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			d.Observe(rx*32+x, rz*32+z)
		}
	}
}

func TestTwoFullRegionsNeitherLonelyChunkFlood(t *testing.T) {
	d := New(ChunkFlood)
	fullyPopulateRegion(d, 0, 0)
	fullyPopulateRegion(d, 10, 10)
	d.Process()

	assert.False(t, d.IsLonelyChunk(0, 0))
	assert.False(t, d.IsLonelyChunk(10*32, 10*32))
	assert.False(t, d.IsLonelyRegion(0, 0))
	assert.False(t, d.IsLonelyRegion(10, 10))
}

func TestTwoFullRegionsNeitherLonelyRegionCluster(t *testing.T) {
	d := New(RegionCluster)
	fullyPopulateRegion(d, 0, 0)
	fullyPopulateRegion(d, 10, 10)
	d.Process()

	assert.False(t, d.IsLonelyRegion(0, 0))
	assert.False(t, d.IsLonelyRegion(10, 10))
}

func TestIsolatedChunkIsLonelyInChunkFlood(t *testing.T) {
	d := New(ChunkFlood)
	fullyPopulateRegion(d, 0, 0)
	d.Observe(100, 100) // far isolated chunk, own region
	d.Process()

	assert.True(t, d.IsLonelyChunk(100, 100))
	assert.False(t, d.IsLonelyChunk(0, 0))
}

func TestIsolatedChunkRegionIsLonelyInRegionCluster(t *testing.T) {
	d := New(RegionCluster)
	fullyPopulateRegion(d, 0, 0)
	d.Observe(100, 100)
	d.Process()

	assert.True(t, d.IsLonelyRegion(regionOf(Pos{100, 100}).X, regionOf(Pos{100, 100}).Z))
	assert.False(t, d.IsLonelyRegion(0, 0))
}
