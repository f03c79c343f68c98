package chunk

import (
	"strconv"

	"github.com/brentp/intintmap"
	"github.com/cespare/xxhash/v2"
)

// PaletteKind distinguishes the two palette representations across format
// generations: pre-1.13 saves key blocks by a 16-bit numeric id (with an
// optional data-value nibble folded in), 1.13+ saves key them by namespaced
// string name.
type PaletteKind int

const (
	// PaletteBlockID is the pre-flattening numeric id palette.
	PaletteBlockID PaletteKind = iota
	// PaletteNamespace is the post-flattening "minecraft:stone"-style palette.
	PaletteNamespace
)

// PaletteEntry is one slot of a Chunk's palette. For PaletteBlockID, ID is
// the promoted (data_value<<12)|block_id value and Name is empty; for
// PaletteNamespace, Name is the block's namespaced identifier and ID is
// unused.
type PaletteEntry struct {
	ID   uint32
	Name string
}

// key returns the canonical string used to deduplicate and hash this
// entry, regardless of palette kind.
func (e PaletteEntry) key() string {
	if e.Name != "" {
		return e.Name
	}
	return strconv.FormatUint(uint64(e.ID), 10)
}

// Palette is the ordered, deduplicated id/name table a Chunk's sections
// index into.
type Palette struct {
	Kind    PaletteKind
	Entries []PaletteEntry

	// reverse maps an xxhash of an entry's key to its index in Entries,
	// backed by intintmap.Map's open-addressing int64-keyed storage to
	// avoid interface-boxing on a lookup touched once per tile during
	// merge.
	reverse *intintmap.Map
}

// NewPalette returns an empty palette of the given kind.
func NewPalette(kind PaletteKind) *Palette {
	return &Palette{Kind: kind, reverse: intintmap.New(64, 0.6)}
}

func hashKey(s string) int64 { return int64(xxhash.Sum64String(s)) }

// Index returns the local index of entry, allocating a new slot on first
// sight.
func (p *Palette) Index(e PaletteEntry) int {
	h := hashKey(e.key())
	if idx, ok := p.reverse.Get(h); ok {
		return int(idx)
	}
	idx := len(p.Entries)
	p.Entries = append(p.Entries, e)
	p.reverse.Put(h, int64(idx))
	return idx
}

// Lookup returns the local index of entry without allocating, and whether
// it was present.
func (p *Palette) Lookup(e PaletteEntry) (int, bool) {
	idx, ok := p.reverse.Get(hashKey(e.key()))
	return int(idx), ok
}

// Len returns the number of distinct entries.
func (p *Palette) Len() int { return len(p.Entries) }

// Translate rewrites a section's tile indices (originally indexing the
// source palette "from") into indices of the receiver, allocating a new
// local slot for each distinct source index on first sight and rewriting
// blocks[i] to match.
func (p *Palette) Translate(from *Palette, blocks []uint16) {
	table := make(map[uint16]uint16, from.Len())
	for i, v := range blocks {
		local, ok := table[v]
		if !ok {
			entry := from.Entries[v]
			local = uint16(p.Index(entry))
			table[v] = local
		}
		blocks[i] = local
	}
}
