package visitor

import (
	"fmt"

	"github.com/df-mc/pixelmap/format/nbt"
	"github.com/df-mc/pixelmap/internal/bitio"
	"github.com/df-mc/pixelmap/world/chunk"
)

// alphaSectionHeight is the tall height of one legacy Alpha/Beta section;
// the format has no sub-chunking, so eight fixed 16-tall bands are carved
// out of the single 128-tall column.
const alphaSectionHeight = 16

// DecodeAlpha decodes a loose Alpha/Beta ".dat" chunk blob (already
// decompressed) into a Chunk. Block ids are promoted to
// (data_value<<12)|block_id, matching the legacy promotion BlockColor's
// id&0xFF fallback expects.
func DecodeAlpha(data []byte, r chunk.Range) (*chunk.Chunk, error) {
	tree, err := nbt.Decode(data, nbt.BigEndian)
	if err != nil {
		return nil, fmt.Errorf("visitor: alpha decode: %w", err)
	}
	level := levelOf(tree)
	x, _ := asInt32(level["xPos"])
	z, _ := asInt32(level["zPos"])

	c := chunk.New(int(x), int(z), r)
	c.Palette = chunk.NewPalette(chunk.PaletteBlockID)

	blocks, _ := level["Blocks"].([]byte)
	data2, _ := level["Data"].([]byte)
	blockLight, _ := level["BlockLight"].([]byte)
	skyLight, _ := level["SkyLight"].([]byte)
	if blocks == nil {
		return c, nil
	}

	sections := make(map[int]*chunk.Section, 8)
	for sy := 0; sy < len(blocks)/(16*16*alphaSectionHeight); sy++ {
		sections[sy] = chunk.NewSection(sy, chunk.OrderXZY)
	}

	// Alpha lays its flat arrays out in x,z,y order (y fastest-varying) over
	// the whole 128-tall column; alphaIndex below reproduces that addressing
	// directly rather than remapping through Section.Index, since a single
	// flat array spans all eight of the sections being carved out of it.
	for x16 := 0; x16 < 16; x16++ {
		for z16 := 0; z16 < 16; z16++ {
			for y := 0; y < len(blocks)/(16*16); y++ {
				flat := alphaIndex(x16, y, z16)
				if flat >= len(blocks) {
					continue
				}
				id := uint32(blocks[flat])
				if data2 != nil {
					id |= uint32(bitio.Nibble4(data2, flat)) << 12
				}
				idx := c.Palette.Index(chunk.PaletteEntry{ID: id})

				sy := y / alphaSectionHeight
				sec := sections[sy]
				if sec == nil {
					sec = chunk.NewSection(sy, chunk.OrderXZY)
					sections[sy] = sec
				}
				ly := y % alphaSectionHeight
				sec.Blocks[sec.Index(x16, ly, z16)] = uint16(idx)
				if blockLight != nil {
					sec.SetBlockLightAt(x16, ly, z16, bitio.Nibble4(blockLight, flat))
				}
				if skyLight != nil {
					setSkyLight(sec, x16, ly, z16, bitio.Nibble4(skyLight, flat))
				}
			}
		}
	}
	c.Sections = sections

	if hm, ok := level["HeightMap"].([]byte); ok {
		for i := 0; i < len(hm) && i < 256; i++ {
			c.Heightmap[i] = int32(hm[i])
		}
	}
	return c, nil
}

// alphaIndex computes the flat offset into Alpha's Blocks/Data/BlockLight/
// SkyLight byte arrays for local column (x,z) and world-space y, matching
// the original format's x*2048 + z*128 + y addressing (y fastest-varying).
func alphaIndex(x, y, z int) int {
	return x*2048 + z*128 + y
}

func setSkyLight(sec *chunk.Section, x, y, z int, v byte) {
	if sec.SkyLight == nil {
		sec.SkyLight = make([]byte, 16*16*alphaSectionHeight/2)
	}
	idx := sec.Index(x, y, z)
	if idx%2 == 0 {
		sec.SkyLight[idx/2] = (sec.SkyLight[idx/2] & 0xf0) | (v & 0x0f)
	} else {
		sec.SkyLight[idx/2] = (sec.SkyLight[idx/2] & 0x0f) | (v << 4)
	}
}
