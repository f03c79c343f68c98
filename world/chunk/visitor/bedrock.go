package visitor

import (
	"encoding/binary"
	"fmt"

	"github.com/df-mc/pixelmap/format/nbt"
	"github.com/df-mc/pixelmap/internal/bitio"
	"github.com/df-mc/pixelmap/world/chunk"
)

// inheritPreviousStorage is the bits-per-block sentinel (0x7f) that tells a
// paletted storage layer to reuse the previous layer's data verbatim.
const inheritPreviousStorage = 0x7f

// DecodeBedrockSubChunk decodes one Bedrock sub-chunk value (the value half
// of a LevelDB SubChunkPrefix record) into a Section plus its local
// palette: version byte 0/2..7 is a legacy flat XYZ layout, 1 is a single
// palettized layer, 8/9 carry a storage-layer count (only layer 0 is
// rendered); 9 additionally stores its own sub-chunk Y up front.
func DecodeBedrockSubChunk(data []byte, fallbackY int) (*chunk.Section, *chunk.Palette, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("visitor: bedrock sub-chunk: empty payload")
	}
	ver := data[0]
	rest := data[1:]
	switch {
	case ver == 1:
		blocks, pal, _, err := decodeBedrockPalettedStorage(rest)
		if err != nil {
			return nil, nil, err
		}
		return sectionFromBedrockBlocks(fallbackY, blocks), pal, nil
	case ver == 8 || ver == 9:
		if len(rest) < 1 {
			return nil, nil, fmt.Errorf("visitor: bedrock sub-chunk: missing storage count")
		}
		count := int(rest[0])
		rest = rest[1:]
		y := fallbackY
		if ver == 9 {
			if len(rest) < 1 {
				return nil, nil, fmt.Errorf("visitor: bedrock sub-chunk: missing sub-chunk index")
			}
			y = int(int8(rest[0]))
			rest = rest[1:]
		}
		if count == 0 {
			return nil, nil, nil
		}
		// Only the first storage layer (the structural layer) is rendered;
		// subsequent layers (water, waterlogging) carry no visible color.
		blocks, pal, consumed, err := decodeBedrockPalettedStorage(rest)
		if err != nil {
			return nil, nil, err
		}
		_ = consumed
		return sectionFromBedrockBlocks(y, blocks), pal, nil
	default:
		return decodeBedrockLegacySubChunk(rest, fallbackY)
	}
}

func sectionFromBedrockBlocks(y int, blocks []uint16) *chunk.Section {
	if blocks == nil {
		return nil
	}
	return &chunk.Section{Y: y, Order: chunk.OrderXZY, Blocks: blocks}
}

// decodeBedrockPalettedStorage reads one paletted block-storage layer:
// (bitsPerBlock<<1 | persistentFlag), a non-spanning-packed u32 bitstream,
// an LE i32 palette entry count, and that many little-endian NBT compounds
// each naming a block ("name", plus "states"/"version" this renderer does
// not need). A bitsPerBlock of inheritPreviousStorage signals "reuse the
// previous layer" and yields (nil, nil, consumed, nil).
func decodeBedrockPalettedStorage(data []byte) (blocks []uint16, palette *chunk.Palette, consumed int, err error) {
	if len(data) < 1 {
		return nil, nil, 0, fmt.Errorf("visitor: bedrock paletted storage: missing header byte")
	}
	bitsPerBlock := int(data[0] >> 1)
	pos := 1
	if bitsPerBlock == inheritPreviousStorage {
		return nil, nil, pos, nil
	}
	if bitsPerBlock == 0 {
		bitsPerBlock = 1
	}
	wordCount := bitio.NonSpanningWordCount(4096, bitsPerBlock, 32)
	need := wordCount * 4
	if len(data) < pos+need {
		return nil, nil, 0, fmt.Errorf("visitor: bedrock paletted storage: truncated block words")
	}
	words := make([]uint32, wordCount)
	for i := 0; i < wordCount; i++ {
		words[i] = binary.LittleEndian.Uint32(data[pos+i*4:])
	}
	pos += need

	if len(data) < pos+4 {
		return nil, nil, 0, fmt.Errorf("visitor: bedrock paletted storage: missing palette count")
	}
	count := int(int32(binary.LittleEndian.Uint32(data[pos:])))
	pos += 4

	palette = chunk.NewPalette(chunk.PaletteNamespace)
	for i := 0; i < count; i++ {
		tree, n, derr := decodeOneNBTValue(data[pos:])
		if derr != nil {
			return nil, nil, 0, fmt.Errorf("visitor: bedrock palette entry %d: %w", i, derr)
		}
		pos += n
		name, _ := tree["name"].(string)
		palette.Index(chunk.PaletteEntry{Name: name})
	}

	blocks = make([]uint16, 4096)
	for i := 0; i < 4096; i++ {
		blocks[i] = uint16(bitio.NibbleNonSpanning32(words, i, bitsPerBlock))
	}
	return blocks, palette, pos, nil
}

// decodeOneNBTValue decodes a single little-endian NBT compound from the
// front of data and reports how many bytes it consumed, since Bedrock packs
// palette entries back-to-back with no outer framing: Decode materializes
// the value and a plain Walk (every tag skipped) reports its total length.
func decodeOneNBTValue(data []byte) (map[string]any, int, error) {
	tree, err := nbt.Decode(data, nbt.LittleEndian)
	if err != nil {
		return nil, 0, err
	}
	n, err := nbt.Walk(data, nbt.LittleEndian, nbt.Visitor{
		OnTag: func(name string, tag nbt.Tag, scalar any) bool { return true },
	})
	if err != nil {
		return nil, 0, err
	}
	return tree, n, nil
}

// decodeBedrockLegacySubChunk handles version bytes 0 and 2..7: a flat,
// unpalettized 4096-byte block-id array (plus matching nibble Data array),
// the pre-Anvil-style Bedrock layout that predates the palette format.
func decodeBedrockLegacySubChunk(data []byte, y int) (*chunk.Section, *chunk.Palette, error) {
	if len(data) < 4096 {
		return nil, nil, fmt.Errorf("visitor: bedrock legacy sub-chunk: truncated block array")
	}
	ids := data[:4096]
	var nibbles []byte
	if len(data) >= 4096+2048 {
		nibbles = data[4096 : 4096+2048]
	}
	pal := chunk.NewPalette(chunk.PaletteBlockID)
	blocks := make([]uint16, 4096)
	for i := 0; i < 4096; i++ {
		id := uint32(ids[i])
		if nibbles != nil {
			id |= uint32(bitio.Nibble4(nibbles, i)) << 12
		}
		blocks[i] = uint16(pal.Index(chunk.PaletteEntry{ID: id}))
	}
	return &chunk.Section{Y: y, Order: chunk.OrderXZY, Blocks: blocks}, pal, nil
}
