// Package worker orchestrates the full discover→decode→render pipeline
// across engine/pool. Anvil worlds drive one region-task per region file,
// itself fanning out one chunk-task per populated chunk; Alpha worlds submit
// one task per chunk file; Bedrock worlds walk the LevelDB chunk keys once
// and then run one decode-and-render task per chunk on a bounded errgroup
// rather than on the pool.
package worker

import (
	"image/color"

	"github.com/df-mc/atomic"
	"github.com/df-mc/pixelmap/config"
	"github.com/df-mc/pixelmap/render/pass"
	"github.com/df-mc/pixelmap/render/ray"
	"github.com/df-mc/pixelmap/world/chunk"
)

// Options carries everything a Render* entry point needs that isn't
// specific to one input format.
type Options struct {
	Settings   config.Settings
	BlockColor *chunk.BlockColor
	Chain      pass.Chain
	Range      chunk.Range

	Progress *config.DelayedAccumulator
	Abort    *atomic.Bool
}

// aborted reports whether the caller asked the run to stop. The region and
// chunk tasks check it once, when they start; a task that has started runs
// to completion.
func (o *Options) aborted() bool {
	return o.Abort != nil && o.Abort.Load()
}

// sampler adapts one decoded *chunk.Chunk and the shared BlockColor table
// into the pass.Sampler interface the block-pass chain reads from. Every
// pass walks straight down a single (x, z) column, so one sampler instance
// is scoped to exactly one chunk.
type sampler struct {
	c      *chunk.Chunk
	colors *chunk.BlockColor
}

func newSampler(c *chunk.Chunk, colors *chunk.BlockColor) *sampler {
	return &sampler{c: c, colors: colors}
}

func (s *sampler) ColorAt(pos ray.Vec3) (color.RGBA, bool) {
	idx, ok := s.c.At(pos.X&15, pos.Y, pos.Z&15)
	if !ok {
		return color.RGBA{}, false
	}
	if int(idx) >= len(s.c.Palette.Entries) {
		return color.RGBA{}, false
	}
	entry := s.c.Palette.Entries[idx]
	var ci chunk.ColorIndex
	if s.c.Palette.Kind == chunk.PaletteNamespace {
		ci = s.colors.IndexByName(entry.Name)
	} else {
		ci = s.colors.IndexByID(uint16(entry.ID))
	}
	return s.colors.Color(ci), true
}

func (s *sampler) BlockLightAt(pos ray.Vec3) byte {
	sec, ok := s.c.Sections[pos.Y>>4]
	if !ok || sec.Empty() {
		return 0
	}
	return sec.BlockLightAt(pos.X&15, pos.Y&15, pos.Z&15)
}

func (s *sampler) Height(x, z int) int32 {
	idx := (x & 15) + (z&15)*16
	h := s.c.Heightmap[idx]
	if h == chunk.HeightmapUnknown {
		_, maxY := s.Bounds()
		return int32(maxY + 1)
	}
	return h
}

func (s *sampler) Bounds() (int, int) {
	return s.c.YRange.Min(), s.c.YRange.Max()
}
