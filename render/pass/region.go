package pass

import "image/color"

// ChunkScratch is the 16x16 pixel buffer one chunk-task produces.
type ChunkScratch struct {
	X, Z   int
	Pixels [16][16]color.RGBA
}

// RenderChunk runs chain once per column of chunk (cx, cz), in world-block
// coordinates cx*16..cx*16+15 / cz*16..cz*16+15.
func RenderChunk(chain Chain, s Sampler, cx, cz int) *ChunkScratch {
	cs := &ChunkScratch{X: cx, Z: cz}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			cs.Pixels[x][z] = chain.Run(s, cx*16+x, cz*16+z)
		}
	}
	return cs
}

// average returns the unweighted mean of a chunk's 256 pixels, used by the
// tiny region variants that render one pixel per chunk or per region.
func (cs *ChunkScratch) average() color.RGBA {
	var r, g, b, a, n uint64
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			p := cs.Pixels[x][z]
			r += uint64(p.R)
			g += uint64(p.G)
			b += uint64(p.B)
			a += uint64(p.A)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{}
	}
	return color.RGBA{R: byte(r / n), G: byte(g / n), B: byte(b / n), A: byte(a / n)}
}

// RegionScratch is the 512x512 pixel buffer a region-task's continuation
// assembles from its 1024 chunk scratches. Pixels for chunks that were
// never populated are left fully transparent.
type RegionScratch struct {
	X, Z   int
	Pixels [512][512]color.RGBA
}

// NewRegionScratch returns an empty (fully transparent) region scratch for
// region coordinate (rx, rz).
func NewRegionScratch(rx, rz int) *RegionScratch {
	return &RegionScratch{X: rx, Z: rz}
}

// Place copies cs into its 16x16 slot within r, keyed by the chunk's
// position modulo 32 within the region.
func (r *RegionScratch) Place(cs *ChunkScratch) {
	lx := mod32(cs.X)
	lz := mod32(cs.Z)
	ox, oz := lx*16, lz*16
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			r.Pixels[ox+x][oz+z] = cs.Pixels[x][z]
		}
	}
}

func mod32(v int) int {
	m := v % 32
	if m < 0 {
		m += 32
	}
	return m
}

// RegionTiny32 is the 32x32, one-pixel-per-chunk region variant.
type RegionTiny32 struct {
	X, Z   int
	Pixels [32][32]color.RGBA
}

// NewRegionTiny32 returns an empty tiny-32 scratch for region (rx, rz).
func NewRegionTiny32(rx, rz int) *RegionTiny32 { return &RegionTiny32{X: rx, Z: rz} }

// Place sets cs's averaged pixel into its chunk slot within t.
func (t *RegionTiny32) Place(cs *ChunkScratch) {
	t.Pixels[mod32(cs.X)][mod32(cs.Z)] = cs.average()
}

// RegionTiny1 is the 1x1, one-pixel-per-region variant.
type RegionTiny1 struct {
	X, Z  int
	Pixel color.RGBA
}

// FromTiny32 averages a tiny-32 scratch's 1024 pixels down to one.
func FromTiny32(t *RegionTiny32) *RegionTiny1 {
	var r, g, b, a, n uint64
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			p := t.Pixels[x][z]
			r += uint64(p.R)
			g += uint64(p.G)
			b += uint64(p.B)
			a += uint64(p.A)
			n++
		}
	}
	return &RegionTiny1{X: t.X, Z: t.Z, Pixel: color.RGBA{R: byte(r / n), G: byte(g / n), B: byte(b / n), A: byte(a / n)}}
}
