package visitor

import (
	"fmt"
	"math/bits"

	"github.com/df-mc/pixelmap/format/nbt"
	"github.com/df-mc/pixelmap/internal/bitio"
	"github.com/df-mc/pixelmap/world/chunk"
)

// Generation boundaries are approximate DataVersion cutoffs for the four
// Anvil chunk-format generations; exact per-snapshot boundaries are not
// load-bearing for rendering (only which bit-packing and compound shape
// to expect is).
const (
	dataVersion113 = 1451 // first 1.13 ("The Flattening") snapshot
	dataVersion116 = 2527 // first 1.16 snapshot
	dataVersion118 = 2825 // first 1.18 snapshot
)

// DecodeAnvil dispatches data (a decompressed chunk NBT blob) to the
// format-matched visitor based on its DataVersion tag.
func DecodeAnvil(data []byte, r chunk.Range) (*chunk.Chunk, error) {
	tree, err := nbt.Decode(data, nbt.BigEndian)
	if err != nil {
		return nil, fmt.Errorf("visitor: anvil decode: %w", err)
	}
	dv, _ := tree["DataVersion"].(int32)
	switch {
	case dv == 0 || dv < dataVersion113:
		return decodeV3(tree, r)
	case dv < dataVersion116:
		return decodeAnvilPaletted(tree, r, true)
	case dv < dataVersion118:
		return decodeAnvilPaletted(tree, r, false)
	default:
		return decodeV18(tree, r)
	}
}

func levelOf(tree map[string]any) map[string]any {
	if lvl, ok := tree["Level"].(map[string]any); ok {
		return lvl
	}
	return tree
}

func asInt32(v any) (int32, bool) {
	switch x := v.(type) {
	case int32:
		return x, true
	case int8:
		return int32(x), true
	}
	return 0, false
}

// decodeV3 handles pre-1.13 chunks: flat per-section byte arrays with an
// optional Add nibble. Block ids are promoted to (data<<12)|(add<<8)|id,
// mirroring the Alpha promotion so BlockColor's id&0xFF legacy fallback
// applies uniformly.
func decodeV3(tree map[string]any, r chunk.Range) (*chunk.Chunk, error) {
	level := levelOf(tree)
	x, _ := asInt32(level["xPos"])
	z, _ := asInt32(level["zPos"])
	c := chunk.New(int(x), int(z), r)
	c.Palette = chunk.NewPalette(chunk.PaletteBlockID)
	c.DataVersion, _ = tree["DataVersion"].(int32)

	sections, _ := level["Sections"].([]any)
	for _, raw := range sections {
		sm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		yv, ok := sm["Y"]
		if !ok {
			continue
		}
		y, _ := asInt32(yv)
		blocks, _ := sm["Blocks"].([]byte)
		if blocks == nil {
			continue
		}
		data, _ := sm["Data"].([]byte)
		add, _ := sm["Add"].([]byte)

		sec := chunk.NewSection(int(y), chunk.OrderYZX)
		for i := 0; i < len(blocks) && i < 4096; i++ {
			id := uint32(blocks[i])
			if data != nil {
				id |= uint32(bitio.Nibble4(data, i)) << 12
			}
			if add != nil {
				id |= uint32(bitio.Nibble4(add, i)) << 8
			}
			sec.Blocks[i] = uint16(c.Palette.Index(chunk.PaletteEntry{ID: id}))
		}
		if bl, ok := sm["BlockLight"].([]byte); ok {
			sec.BlockLight = bl
		}
		if sl, ok := sm["SkyLight"].([]byte); ok {
			sec.SkyLight = sl
		}
		c.Sections[int(y)] = sec
	}
	applyHeightmapLegacy(c, level)
	return c, nil
}

// decodeAnvilPaletted handles the 1.13–1.17 generations (V13 spanning /
// V16 non-spanning).
func decodeAnvilPaletted(tree map[string]any, r chunk.Range, spanning bool) (*chunk.Chunk, error) {
	level := levelOf(tree)
	x, _ := asInt32(level["xPos"])
	z, _ := asInt32(level["zPos"])
	c := chunk.New(int(x), int(z), r)
	c.Palette = chunk.NewPalette(chunk.PaletteNamespace)
	c.DataVersion, _ = tree["DataVersion"].(int32)

	sections, _ := level["Sections"].([]any)
	for _, raw := range sections {
		sm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		yv, ok := sm["Y"]
		if !ok {
			continue
		}
		y, _ := asInt32(yv)

		paletteList, _ := sm["Palette"].([]any)
		if len(paletteList) == 0 {
			continue
		}
		local := chunk.NewPalette(chunk.PaletteNamespace)
		for _, p := range paletteList {
			pm, _ := p.(map[string]any)
			name, _ := pm["Name"].(string)
			local.Index(chunk.PaletteEntry{Name: name})
		}

		blockBits := paletteBits(len(paletteList))
		longs, _ := sm["BlockStates"].([]int64)
		words := make([]uint64, len(longs))
		for i, v := range longs {
			words[i] = uint64(v)
		}

		blocks := make([]uint16, 4096)
		for i := 0; i < 4096; i++ {
			var v uint64
			if spanning {
				v = bitio.NibbleSpanning64(words, i, blockBits)
			} else {
				v = bitio.NibbleNonSpanning64(words, i, blockBits)
			}
			blocks[i] = uint16(v)
		}
		c.Palette.Translate(local, blocks)

		sec := &chunk.Section{Y: int(y), Order: chunk.OrderYZX, Blocks: blocks}
		if bl, ok := sm["BlockLight"].([]byte); ok {
			sec.BlockLight = bl
		}
		if sl, ok := sm["SkyLight"].([]byte); ok {
			sec.SkyLight = sl
		}
		c.Sections[int(y)] = sec
	}
	applyHeightmapModern(c, level, 0)
	return c, nil
}

// decodeV18 handles 1.18+ chunks: sections move under "sections", each with
// a nested block_states compound; Y may be Byte or Int; heightmaps are
// offset by 64; a palette of size 1 means the whole section is uniform
// (no data field present).
func decodeV18(tree map[string]any, r chunk.Range) (*chunk.Chunk, error) {
	x, _ := asInt32(tree["xPos"])
	z, _ := asInt32(tree["zPos"])
	c := chunk.New(int(x), int(z), r)
	c.Palette = chunk.NewPalette(chunk.PaletteNamespace)
	c.DataVersion, _ = tree["DataVersion"].(int32)

	sections, _ := tree["sections"].([]any)
	for _, raw := range sections {
		sm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		yv, ok := sm["Y"]
		if !ok {
			continue
		}
		y, _ := asInt32(yv)

		bs, ok := sm["block_states"].(map[string]any)
		if !ok {
			continue
		}
		paletteList, _ := bs["palette"].([]any)
		if len(paletteList) == 0 {
			continue
		}
		local := chunk.NewPalette(chunk.PaletteNamespace)
		for _, p := range paletteList {
			pm, _ := p.(map[string]any)
			name, _ := pm["Name"].(string)
			local.Index(chunk.PaletteEntry{Name: name})
		}

		blocks := make([]uint16, 4096)
		if len(paletteList) > 1 {
			blockBits := paletteBits(len(paletteList))
			longs, _ := bs["data"].([]int64)
			words := make([]uint64, len(longs))
			for i, v := range longs {
				words[i] = uint64(v)
			}
			for i := 0; i < 4096; i++ {
				blocks[i] = uint16(bitio.NibbleNonSpanning64(words, i, blockBits))
			}
		}
		// palette of size 1: every tile is index 0, already the zero value.
		c.Palette.Translate(local, blocks)

		sec := &chunk.Section{Y: int(y), Order: chunk.OrderYZX, Blocks: blocks}
		if bl, ok := sm["BlockLight"].([]byte); ok {
			sec.BlockLight = bl
		}
		if sl, ok := sm["SkyLight"].([]byte); ok {
			sec.SkyLight = sl
		}
		c.Sections[int(y)] = sec
	}
	applyHeightmapModern(c, tree, 64)
	return c, nil
}

// paletteBits returns the bit width Minecraft uses for a palette of size n:
// at least 4 bits, growing to ceil(log2(n)).
func paletteBits(n int) int {
	if n <= 1 {
		return 4
	}
	b := bits.Len(uint(n - 1))
	if b < 4 {
		b = 4
	}
	return b
}

func applyHeightmapLegacy(c *chunk.Chunk, level map[string]any) {
	hm, ok := level["HeightMap"].([]int32)
	if !ok {
		return
	}
	for i := 0; i < len(hm) && i < 256; i++ {
		c.Heightmap[i] = hm[i]
	}
}

func applyHeightmapModern(c *chunk.Chunk, tree map[string]any, offset int32) {
	hms, ok := tree["Heightmaps"].(map[string]any)
	if !ok {
		return
	}
	raw, ok := hms["WORLD_SURFACE"].([]int64)
	if !ok {
		return
	}
	// Packed non-spanning 9-bit entries (enough for 0..511 + offset).
	words := make([]uint64, len(raw))
	for i, v := range raw {
		words[i] = uint64(v)
	}
	for i := 0; i < 256; i++ {
		v := bitio.NibbleNonSpanning64(words, i, 9)
		c.Heightmap[i] = int32(v) - offset
	}
}
