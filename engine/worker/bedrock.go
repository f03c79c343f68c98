package worker

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/df-mc/pixelmap/render/pass"
	"github.com/df-mc/pixelmap/world/chunk"
	"github.com/df-mc/pixelmap/world/chunk/visitor"
	"github.com/df-mc/pixelmap/world/container"
	"github.com/df-mc/pixelmap/world/lonely"
)

// BedrockOptions extends Options with the Bedrock world's db/ directory.
type BedrockOptions struct {
	Options
	DBDir      string
	Dimension  int32
	LightSrc   chunk.LightSources
	NightLight bool
}

// RenderBedrock discovers every chunk in opts.DBDir's LevelDB store and
// renders it, fanning the per-chunk decode+render work out over a bounded
// errgroup rather than engine/pool, since a LevelDB key scan is I/O bound
// and has no natural region/chunk priority structure to exploit.
func RenderBedrock(opts BedrockOptions) (map[[2]int]*pass.RegionScratch, error) {
	db, err := container.OpenLevelDB(opts.DBDir)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	type chunkKey struct{ x, z int32 }
	var keys []chunkKey
	if err := db.WalkChunks(func(x, z, dim int32) error {
		if dim == opts.Dimension {
			keys = append(keys, chunkKey{x, z})
		}
		return nil
	}); err != nil {
		return nil, err
	}

	det := lonely.New(lonely.ChunkFlood)
	if !opts.Settings.NoLonely {
		for _, k := range keys {
			det.Observe(int(k.x), int(k.z))
		}
		det.Process()
	}

	scratches := make(map[[2]int]*pass.RegionScratch)
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(maxInt(1, opts.Settings.Threads))
	yMin, yMax := opts.Range.Min()>>4, opts.Range.Max()>>4

	for _, k := range keys {
		k := k
		if det != nil && det.IsLonelyChunk(int(k.x), int(k.z)) {
			continue
		}
		g.Go(func() error {
			if opts.aborted() {
				return nil
			}
			data, err := db.LoadChunk(k.x, k.z, opts.Dimension, yMin, yMax)
			if err != nil {
				return nil
			}
			c := chunk.New(int(k.x), int(k.z), opts.Range)
			for sy, raw := range data.SubChunks {
				sec, pal, err := visitor.DecodeBedrockSubChunk(raw, sy<<4)
				if err != nil || sec == nil {
					continue
				}
				if c.Palette == nil {
					c.Palette = pal
				} else {
					rewritten := make([]uint16, len(sec.Blocks))
					copy(rewritten, sec.Blocks)
					c.Palette.Translate(pal, rewritten)
					sec.Blocks = rewritten
				}
				c.Sections[sy] = sec
			}
			if opts.NightLight {
				c.RegenerateBlockLight(opts.LightSrc, func(id uint16) bool { return id == 0 })
			}
			computeHeightmap(c)

			s := newSampler(c, opts.BlockColor)
			cs := pass.RenderChunk(opts.Chain, s, int(k.x), int(k.z))

			rx, rz := floorDiv32(int(k.x)), floorDiv32(int(k.z))
			mu.Lock()
			scratch, ok := scratches[[2]int{rx, rz}]
			if !ok {
				scratch = pass.NewRegionScratch(rx, rz)
				scratches[[2]int{rx, rz}] = scratch
			}
			mu.Unlock()
			scratch.Place(cs)

			if opts.Progress != nil {
				opts.Progress.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if det != nil {
		for k := range scratches {
			if det.IsLonelyRegion(k[0], k[1]) {
				delete(scratches, k)
			}
		}
	}
	return scratches, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// computeHeightmap fills c.Heightmap from its loaded sections, since
// Bedrock sub-chunk records carry no separate heightmap the way Anvil
// chunks do.
func computeHeightmap(c *chunk.Chunk) {
	minY, maxY := c.YRange.Min(), c.YRange.Max()
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			h := int32(minY)
			for y := maxY; y >= minY; y-- {
				if idx, ok := c.At(x, y, z); ok && idx != 0 {
					h = int32(y + 1)
					break
				}
			}
			c.Heightmap[x+z*16] = h
		}
	}
}
