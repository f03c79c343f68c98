package worker

import (
	"sync"

	"github.com/df-mc/pixelmap/engine/pool"
	"github.com/df-mc/pixelmap/render/pass"
	"github.com/df-mc/pixelmap/world/chunk/visitor"
	"github.com/df-mc/pixelmap/world/container"
	"github.com/df-mc/pixelmap/world/lonely"
)

// AnvilOptions extends Options with the input world directory (the folder
// holding region/*.mca and, for Alpha worlds, the base-36 chunk tree).
type AnvilOptions struct {
	Options
	RegionDir string
	AlphaDir  string
}

// regionPriorityStep spaces consecutive regions' priority bases far enough
// apart that a region's own continuation (base-1) always outranks the next
// region's chunk tasks (base-2), so the pool finishes one region's chunks
// before starting the next region's.
const regionPriorityStep = 2

// RenderAnvil renders every region under opts.RegionDir into a set of
// RegionScratch buffers, returning them keyed by region coordinate.
//
// A region's continuation is only run once every one of its chunk tasks has
// completed, tracked with a sync.WaitGroup alongside the priority scheme —
// the WaitGroup is what actually prevents the data race priority alone
// cannot, since a free worker could otherwise dequeue the continuation the
// instant the last same-priority chunk task is popped, before that task
// finishes running.
func RenderAnvil(p *pool.Pool, opts AnvilOptions) (map[[2]int]*pass.RegionScratch, error) {
	type regionFile struct {
		x, z int
		path string
	}
	var regions []regionFile
	if opts.RegionDir != "" {
		if err := container.WalkRegions(opts.RegionDir, func(x, z int, path string) error {
			regions = append(regions, regionFile{x, z, path})
			return nil
		}); err != nil {
			return nil, err
		}
	}

	det := lonely.New(lonely.ChunkFlood)
	if !opts.Settings.NoLonely {
		for _, rf := range regions {
			r, err := container.OpenRegion(rf.path, rf.x, rf.z)
			if err != nil {
				continue
			}
			for _, lc := range r.Chunks() {
				det.Observe(rf.x*32+lc[0], rf.z*32+lc[1])
			}
			r.Close()
		}
		det.Process()
	}

	results := make(map[[2]int]*pass.RegionScratch, len(regions))
	var mu sync.Mutex

	base := len(regions) * regionPriorityStep
	for i, rf := range regions {
		i, rf := i, rf
		prio := base - i*regionPriorityStep
		p.Submit(prio, func() {
			if opts.aborted() {
				return
			}
			scratch := pass.NewRegionScratch(rf.x, rf.z)
			r, err := container.OpenRegion(rf.path, rf.x, rf.z)
			if err != nil {
				return
			}
			chunks := r.Chunks()

			var wg sync.WaitGroup
			for _, lc := range chunks {
				lc := lc
				cx, cz := rf.x*32+lc[0], rf.z*32+lc[1]
				if det != nil && det.IsLonelyChunk(cx, cz) {
					continue
				}
				wg.Add(1)
				p.Submit(prio, func() {
					defer wg.Done()
					if opts.aborted() {
						return
					}
					cs := renderOneChunk(r, lc[0], lc[1], cx, cz, opts.Options)
					if cs == nil {
						return
					}
					scratch.Place(cs)
					if opts.Progress != nil {
						opts.Progress.Add(1)
					}
				})
			}

			p.Submit(prio-1, func() {
				wg.Wait()
				r.Close()
				if det == nil || !det.IsLonelyRegion(rf.x, rf.z) {
					mu.Lock()
					results[[2]int{rf.x, rf.z}] = scratch
					mu.Unlock()
				}
			})
		})
	}

	p.Wait()
	return results, nil
}

func renderOneChunk(r *container.Region, lx, lz, cx, cz int, opts Options) *pass.ChunkScratch {
	raw, err := r.ReadChunk(lx, lz)
	if err != nil {
		return nil
	}
	c, err := visitor.DecodeAnvil(raw, opts.Range)
	if err != nil {
		return nil
	}
	s := newSampler(c, opts.BlockColor)
	return pass.RenderChunk(opts.Chain, s, cx, cz)
}
