package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaletteMergeDisjoint(t *testing.T) {
	a := New(0, 0, Overworld.Range())
	a.Palette = NewPalette(PaletteNamespace)
	idxStone := a.Palette.Index(PaletteEntry{Name: "minecraft:stone"})
	secA := NewSection(0, OrderYZX)
	secA.Blocks[0] = uint16(idxStone)
	a.Sections[0] = secA

	b := New(0, 0, Overworld.Range())
	b.Palette = NewPalette(PaletteNamespace)
	idxDirt := b.Palette.Index(PaletteEntry{Name: "minecraft:dirt"})
	secB := NewSection(1, OrderYZX)
	secB.Blocks[0] = uint16(idxDirt)
	b.Sections[1] = secB

	a.Merge(b)

	require.Len(t, a.Palette.Entries, 2)
	names := map[string]bool{}
	for _, e := range a.Palette.Entries {
		names[e.Name] = true
	}
	require.True(t, names["minecraft:stone"])
	require.True(t, names["minecraft:dirt"])

	// Section 0 (from a) still resolves its tile 0 to stone.
	idx0 := a.Sections[0].Blocks[0]
	require.Equal(t, "minecraft:stone", a.Palette.Entries[idx0].Name)
	// Section 1 (merged in from b) resolves its tile 0 to dirt, via the
	// composed translation, not b's original local index.
	idx1 := a.Sections[1].Blocks[0]
	require.Equal(t, "minecraft:dirt", a.Palette.Entries[idx1].Name)
}

func TestPaletteMergeOverridesOnCollision(t *testing.T) {
	a := New(0, 0, Overworld.Range())
	a.Palette = NewPalette(PaletteNamespace)
	a.Palette.Index(PaletteEntry{Name: "minecraft:stone"})
	a.Sections[0] = NewSection(0, OrderYZX)

	b := New(0, 0, Overworld.Range())
	b.Palette = NewPalette(PaletteNamespace)
	b.Palette.Index(PaletteEntry{Name: "minecraft:water"})
	replacement := NewSection(0, OrderYZX)
	replacement.Blocks[5] = 0
	b.Sections[0] = replacement

	a.Merge(b)
	require.NotNil(t, a.Sections[0])
	idx := a.Sections[0].Blocks[5]
	require.Equal(t, "minecraft:water", a.Palette.Entries[idx].Name)
}

func TestRegenerateBlockLight(t *testing.T) {
	c := New(0, 0, Overworld.Range())
	c.Palette = NewPalette(PaletteNamespace)
	air := uint16(c.Palette.Index(PaletteEntry{Name: "minecraft:air"}))
	torch := uint16(c.Palette.Index(PaletteEntry{Name: "minecraft:torch"}))

	sec := NewSection(0, OrderYZX)
	for i := range sec.Blocks {
		sec.Blocks[i] = air
	}
	sec.Blocks[sec.Index(5, 5, 5)] = torch
	c.Sections[0] = sec

	c.RegenerateBlockLight(LightSources{int(torch): 14}, func(idx uint16) bool { return idx == air })

	require.Equal(t, byte(14), sec.BlockLightAt(5, 5, 5))
	require.Equal(t, byte(13), sec.BlockLightAt(6, 5, 5))
	require.Equal(t, byte(0), sec.BlockLightAt(5, 5, 0))
}
