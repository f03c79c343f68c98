package chunk

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// ColorIndex is an index into a BlockColor's color vector.
type ColorIndex uint32

// BlockColor holds the two lookup tables (numeric id and namespaced name)
// plus the RGBA vector they index into. An unknown block resolves to a
// sentinel index one past the end of the color vector, whose lookup always
// yields fully-transparent, so unrecognized blocks render as empty space
// rather than an opaque placeholder color.
type BlockColor struct {
	oldIndices map[uint16]ColorIndex
	newIndices map[string]ColorIndex
	colors     []color.RGBA
}

// NewBlockColor returns an empty table; call ReadDefault or ReadFile to
// populate it.
func NewBlockColor() *BlockColor {
	return &BlockColor{
		oldIndices: make(map[uint16]ColorIndex),
		newIndices: make(map[string]ColorIndex),
	}
}

// ReadFile loads a colors file at path, in the line format:
//
//	<block_id|namespace_id>[:<damage_value>[...]][ ...] = <hex_color>[ <hex_alpha>]|<r g b[ a]> [# comment]
//
// e.g. "1 2:3:4:6 minecraft:stone = 456789 # assign everything".
func (b *BlockColor) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.read(f)
}

// ReadDefault populates the table from the built-in default set, used when
// no "colors" configuration path is given.
func (b *BlockColor) ReadDefault() error {
	return b.read(strings.NewReader(defaultBlockColors))
}

func (b *BlockColor) read(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lhs, rhs, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		col, err := parseColor(strings.TrimSpace(rhs))
		if err != nil {
			continue
		}
		idx := ColorIndex(len(b.colors))
		for _, key := range strings.Fields(lhs) {
			if key == "" {
				continue
			}
			if key[0] >= '0' && key[0] <= '9' {
				for _, id := range parseBlockIDs(key) {
					b.oldIndices[id] = idx
				}
			} else {
				b.newIndices[key] = idx
			}
		}
		b.colors = append(b.colors, col)
	}
	return sc.Err()
}

// parseBlockIDs expands a "base[:damage[:damage...]]" token into the set of
// promoted (damage<<12)|base ids it denotes, matching blockcolor.cpp's
// read() loop: a lone number yields itself; a number followed by one or
// more colon-separated damage values yields one promoted id per damage
// value (the bare base id is not additionally emitted in that case).
func parseBlockIDs(tok string) []uint16 {
	parts := strings.Split(tok, ":")
	base, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return nil
	}
	if len(parts) == 1 {
		return []uint16{uint16(base)}
	}
	out := make([]uint16, 0, len(parts)-1)
	for _, p := range parts[1:] {
		dv, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			continue
		}
		out = append(out, uint16(base)|uint16(dv<<12))
	}
	return out
}

// parseColor parses a 6/8-digit hex RGB[A], a 6-digit hex RGB followed by
// a 2-digit hex alpha ("RRGGBB AA"), or space-separated decimal
// "r g b [a]", defaulting alpha to 255.
func parseColor(s string) (color.RGBA, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 && isHex(fields[0]) {
		hex := fields[0]
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		if len(hex) <= 6 {
			return color.RGBA{R: byte(v >> 16), G: byte(v >> 8), B: byte(v), A: 255}, nil
		}
		return color.RGBA{R: byte(v >> 24), G: byte(v >> 16), B: byte(v >> 8), A: byte(v)}, nil
	}
	if len(fields) == 2 && len(fields[0]) == 6 && isHex(fields[0]) && len(fields[1]) == 2 {
		rgb, err := strconv.ParseUint(fields[0], 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		a, err := strconv.ParseUint(fields[1], 16, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: byte(rgb >> 16), G: byte(rgb >> 8), B: byte(rgb), A: byte(a)}, nil
	}
	vals := [4]uint64{0, 0, 0, 255}
	for i, f := range fields {
		if i >= 4 {
			break
		}
		v, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return color.RGBA{}, err
		}
		vals[i] = v
	}
	return color.RGBA{R: byte(vals[0]), G: byte(vals[1]), B: byte(vals[2]), A: byte(vals[3])}, nil
}

func isHex(s string) bool {
	if len(s) != 6 && len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// sentinel returns the out-of-range index whose color is always
// fully-transparent.
func (b *BlockColor) sentinel() ColorIndex { return ColorIndex(len(b.colors)) }

// IndexByID returns the color index for a numeric block id, retrying the
// low byte (the data-value-stripped id) when the full id is unregistered.
func (b *BlockColor) IndexByID(id uint16) ColorIndex {
	if idx, ok := b.oldIndices[id]; ok {
		return idx
	}
	if id <= 0xFF {
		return b.sentinel()
	}
	return b.IndexByID(id & 0xFF)
}

// IndexByName returns the color index for a namespaced block name.
func (b *BlockColor) IndexByName(name string) ColorIndex {
	if idx, ok := b.newIndices[name]; ok {
		return idx
	}
	return b.sentinel()
}

// Color returns the RGBA for index, or fully-transparent if index is out of
// range (the unknown-block sentinel).
func (b *BlockColor) Color(index ColorIndex) color.RGBA {
	if int(index) >= len(b.colors) {
		return color.RGBA{}
	}
	return b.colors[index]
}

// HasColors reports whether any entries were loaded.
func (b *BlockColor) HasColors() bool { return len(b.colors) > 0 }

// WriteFile dumps the table to path in the same line format ReadFile
// accepts, one line per color index with every name/id bound to it. Used
// by pixelmapcli's -createcolor flag to produce an editable starting point
// from the built-in defaults.
func (b *BlockColor) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	names := make([][]string, len(b.colors))
	for name, idx := range b.newIndices {
		names[idx] = append(names[idx], name)
	}
	ids := make([][]uint16, len(b.colors))
	for id, idx := range b.oldIndices {
		ids[idx] = append(ids[idx], id)
	}
	// Map iteration order is random; sort each bucket so repeated WriteFile
	// calls against the same table produce byte-identical output.
	for _, bucket := range names {
		slices.Sort(bucket)
	}
	for _, bucket := range ids {
		slices.Sort(bucket)
	}

	w := bufio.NewWriter(f)
	for idx, c := range b.colors {
		var keys []string
		for _, id := range ids[idx] {
			keys = append(keys, strconv.Itoa(int(id)))
		}
		keys = append(keys, names[idx]...)
		if len(keys) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s = %02X%02X%02X %02X\n",
			strings.Join(keys, " "), c.R, c.G, c.B, c.A); err != nil {
			return err
		}
	}
	return w.Flush()
}

// defaultBlockColors is a representative built-in table covering common
// vanilla blocks, in the same line format ReadFile parses.
const defaultBlockColors = `
0 = 000000 00
1 minecraft:stone = 888888
2 minecraft:grass_block = 7CB342
3 minecraft:dirt = 8B5A2B
4 minecraft:cobblestone = 828282
8 9 minecraft:water = 3F76E4 B0
10 11 minecraft:lava = E25822
12 minecraft:sand = DBD3A0
13 minecraft:gravel = 8D8D8D
17 minecraft:oak_log = 6B4423
18 minecraft:oak_leaves = 4A7023
24 minecraft:sandstone = D8CFA0
31 minecraft:grass = 6A8F3D 00
35 minecraft:white_wool = E9ECEC
41 minecraft:gold_block = FAE54B
42 minecraft:iron_block = D8D8D8
56 minecraft:diamond_ore = 63D9D0
79 minecraft:ice = 9CCCF2 C0
80 minecraft:snow = F6FBFB
82 minecraft:clay = A4AABA
89 minecraft:glowstone = F8D775
159 minecraft:terracotta = A35A3F
`
