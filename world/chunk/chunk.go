package chunk

// Chunk is a 16x16 column of a world, built incrementally by a format
// visitor (world/chunk/visitor) and consumed read-only by the pass
// pipeline (render/pass) thereafter — except for the block-light
// regeneration pass, which rewrites BlockLight nibbles in place.
type Chunk struct {
	X, Z        int
	DataVersion int32
	YRange      Range

	Palette  *Palette
	Sections map[int]*Section

	// Heightmap holds one above the world-space Y of the topmost non-empty
	// block per column (16x16, row-major x+z*16), or math.MinInt32 where
	// unknown.
	Heightmap [256]int32
}

// HeightmapUnknown is the sentinel stored in Heightmap for a column whose
// height has not been computed.
const HeightmapUnknown = int32(-1 << 31)

// New returns an empty Chunk bounded to r, with no sections and an unset
// palette (the first visitor write determines PaletteKind).
func New(x, z int, r Range) *Chunk {
	c := &Chunk{X: x, Z: z, YRange: r, Sections: make(map[int]*Section)}
	for i := range c.Heightmap {
		c.Heightmap[i] = HeightmapUnknown
	}
	return c
}

// Section returns the section at the given section-Y, allocating both the
// map entry (not the tile arrays) lazily.
func (c *Chunk) SectionAt(sy int, order Order) *Section {
	if s, ok := c.Sections[sy]; ok {
		return s
	}
	s := NewSection(sy, order)
	c.Sections[sy] = s
	return s
}

// At returns the palette index of the tile at world-space (x,y,z) within
// this chunk's local (x,z) in [0,16), or 0/false if no section is
// allocated there.
func (c *Chunk) At(x, y, z int) (uint16, bool) {
	sy := y >> 4
	s, ok := c.Sections[sy]
	if !ok || s.Empty() {
		return 0, false
	}
	return s.At(x, y&15, z), true
}

// Merge unions other into c: when both chunks share a palette kind,
// other's new palette entries are appended and its sections' tile indices
// are rewritten through the composed translation before being inserted
// (overriding c's section at the same Y on collision). When palette kinds
// differ, other replaces c's contents verbatim.
func (c *Chunk) Merge(other *Chunk) {
	if c.Palette == nil {
		c.Palette = other.Palette
		c.Sections = other.Sections
		c.DataVersion = other.DataVersion
		return
	}
	if other.Palette == nil {
		return
	}
	if c.Palette.Kind != other.Palette.Kind {
		c.Palette = other.Palette
		c.Sections = other.Sections
		c.DataVersion = other.DataVersion
		return
	}
	for sy, sec := range other.Sections {
		if sec.Empty() {
			continue
		}
		rewritten := make([]uint16, len(sec.Blocks))
		copy(rewritten, sec.Blocks)
		c.Palette.Translate(other.Palette, rewritten)
		merged := &Section{
			Y:          sec.Y,
			Order:      sec.Order,
			Blocks:     rewritten,
			BlockLight: sec.BlockLight,
			SkyLight:   sec.SkyLight,
		}
		c.Sections[sy] = merged
	}
}
