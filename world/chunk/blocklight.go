package chunk

// LightSources maps a chunk-local palette index to the light intensity (in
// [1,15]) that block emits, as loaded from the optional light-source table.
type LightSources map[int]byte

// RegenerateBlockLight recomputes BlockLight for every section of c via a
// breadth-first flood from configured light sources, gated through
// air-only cells, for night-mode rendering. isAir reports whether a
// palette index is the chunk's "air" entry.
func (c *Chunk) RegenerateBlockLight(sources LightSources, isAir func(paletteIndex uint16) bool) {
	type cell struct{ x, y, z int }
	type seed struct {
		cell
		level byte
	}

	visited := make(map[cell]bool)
	queue := make([]seed, 0, 64)

	minY, maxY := c.YRange.Min(), c.YRange.Max()
	for sy, sec := range c.Sections {
		if sec.Empty() {
			continue
		}
		baseY := sy * 16
		for ly := 0; ly < 16; ly++ {
			y := baseY + ly
			if y < minY || y > maxY {
				continue
			}
			for lz := 0; lz < 16; lz++ {
				for lx := 0; lx < 16; lx++ {
					idx := sec.At(lx, ly, lz)
					if level, ok := sources[int(idx)]; ok && level > 0 {
						queue = append(queue, seed{cell{lx, y, lz}, level})
					}
				}
			}
		}
	}

	set := func(x, y, z int, v byte) {
		sy := y >> 4
		sec, ok := c.Sections[sy]
		if !ok {
			return
		}
		sec.SetBlockLightAt(x, y&15, z, v)
	}
	get := func(x, y, z int) (uint16, bool) { return c.At(x, y, z) }

	dirs := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		if visited[cur.cell] {
			continue
		}
		visited[cur.cell] = true
		set(cur.x, cur.y, cur.z, cur.level)
		if cur.level <= 1 {
			continue
		}
		for _, d := range dirs {
			nx, ny, nz := cur.x+d[0], cur.y+d[1], cur.z+d[2]
			if nx < 0 || nx > 15 || nz < 0 || nz > 15 || ny < minY || ny > maxY {
				continue
			}
			nc := cell{nx, ny, nz}
			if visited[nc] {
				continue
			}
			idx, ok := get(nx, ny, nz)
			if !ok || !isAir(idx) {
				continue
			}
			queue = append(queue, seed{nc, cur.level - 1})
		}
	}
}
