package worker

import (
	"sync"

	"github.com/df-mc/pixelmap/engine/pool"
	"github.com/df-mc/pixelmap/render/pass"
	"github.com/df-mc/pixelmap/world/chunk/visitor"
	"github.com/df-mc/pixelmap/world/container"
	"github.com/df-mc/pixelmap/world/lonely"
)

// RenderAlpha renders every loose chunk file under opts.AlphaDir into the
// same 512x512-per-region scratch granularity Anvil worlds use, bucketing
// chunks into their containing 32x32 region the way Alpha's on-disk layout
// implies one even without region files.
func RenderAlpha(p *pool.Pool, opts AnvilOptions) (map[[2]int]*pass.RegionScratch, error) {
	var files []container.AlphaChunkFile
	if err := container.WalkAlpha(opts.AlphaDir, func(f container.AlphaChunkFile) error {
		files = append(files, f)
		return nil
	}); err != nil {
		return nil, err
	}

	det := lonely.New(lonely.ChunkFlood)
	if !opts.Settings.NoLonely {
		for _, f := range files {
			det.Observe(f.X, f.Z)
		}
		det.Process()
	}

	scratches := make(map[[2]int]*pass.RegionScratch)
	var mu sync.Mutex

	for _, f := range files {
		f := f
		if det != nil && det.IsLonelyChunk(f.X, f.Z) {
			continue
		}
		rx, rz := floorDiv32(f.X), floorDiv32(f.Z)
		p.Submit(0, func() {
			if opts.aborted() {
				return
			}
			raw, err := container.ReadAlphaChunk(f.Path)
			if err != nil {
				return
			}
			c, err := visitor.DecodeAlpha(raw, opts.Range)
			if err != nil {
				return
			}
			s := newSampler(c, opts.BlockColor)
			cs := pass.RenderChunk(opts.Chain, s, f.X, f.Z)

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
		})
	}

	p.Wait()

	if det != nil {
		for k := range scratches {
			if det.IsLonelyRegion(k[0], k[1]) {
				delete(scratches, k)
			}
		}
	}
	return scratches, nil
}

func floorDiv32(v int) int {
	if v >= 0 {
		return v / 32
	}
	return -((-v + 31) / 32)
}
