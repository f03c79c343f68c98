// Package container implements the three on-disk save layouts this
// renderer iterates over: Anvil/Beta region files, loose Alpha chunk
// files, and Bedrock's LevelDB key-value store.
package container

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/df-mc/pixelmap/internal/compress"
)

const (
	sectorSize = 4096
	headerSize = 2 * sectorSize
)

// compression kinds read from a chunk's 1-byte header.
const (
	compressionGzip      = 1
	compressionZlib      = 2
	compressionNone      = 3
	compressionLZ4       = 4
	compressionCustom    = 127
	externalFlag         = 0x80
	externalKindBitsMask = 0x7f
)

// ErrChunkNotPresent is returned by Region.ReadChunk for an unpopulated slot.
var ErrChunkNotPresent = fmt.Errorf("container: chunk not present in region")

// Region is a read-only view over one r.X.Z.mca/.mcr file, opened by
// OpenRegion; ReadChunk dereferences one populated slot.
type Region struct {
	X, Z int
	path string

	f         *os.File
	locations [1024]uint32
}

// OpenRegion opens path (an r.X.Z.mca/.mcr file) and reads its location
// table. The file descriptor stays open until Close; callers that iterate
// many regions should close each as they advance past it.
func OpenRegion(path string, x, z int) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Region{X: x, Z: z, path: path, f: f}
	header := make([]byte, headerSize)
	if _, err := f.ReadAt(header, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("container: reading region header %s: %w", path, err)
	}
	for i := 0; i < 1024; i++ {
		o := i * 4
		r.locations[i] = uint32(header[o])<<24 | uint32(header[o+1])<<16 | uint32(header[o+2])<<8 | uint32(header[o+3])
	}
	return r, nil
}

// Close releases the region file's descriptor.
func (r *Region) Close() error { return r.f.Close() }

// Populated reports whether the slot at local chunk coordinates (lx, lz) in
// [0,32) has any chunk data, skipping headers with offset_sectors < 2 (the
// header itself).
func (r *Region) Populated(lx, lz int) bool {
	loc := r.locations[lx+lz*32]
	return loc != 0 && (loc>>8) >= 2
}

// Chunks returns the local (x,z) of every populated slot.
func (r *Region) Chunks() [][2]int {
	var out [][2]int
	for lz := 0; lz < 32; lz++ {
		for lx := 0; lx < 32; lx++ {
			if r.Populated(lx, lz) {
				out = append(out, [2]int{lx, lz})
			}
		}
	}
	return out
}

// ReadChunk reads and decompresses the chunk NBT blob at local (lx, lz). An
// externally-stored chunk (compression byte's top bit set) is loaded from
// the sibling c.X.Z.mcc file instead, with the low 7 bits as its
// compression kind.
func (r *Region) ReadChunk(lx, lz int) ([]byte, error) {
	if lx < 0 || lx >= 32 || lz < 0 || lz >= 32 {
		return nil, fmt.Errorf("container: chunk (%d,%d) out of region bounds", lx, lz)
	}
	loc := r.locations[lx+lz*32]
	if loc == 0 || (loc>>8) < 2 {
		return nil, ErrChunkNotPresent
	}
	offset := int64(loc>>8) * sectorSize
	sectors := int(loc & 0xff)

	header := make([]byte, 5)
	if _, err := r.f.ReadAt(header, offset); err != nil {
		return nil, fmt.Errorf("container: reading chunk header: %w", err)
	}
	length := uint32(header[0])<<24 | uint32(header[1])<<16 | uint32(header[2])<<8 | uint32(header[3])
	kindByte := header[4]
	if length == 0 || int(length) > sectors*sectorSize {
		return nil, fmt.Errorf("container: chunk length %d exceeds %d allotted sectors", length, sectors)
	}

	if kindByte&externalFlag != 0 {
		cx, cz := r.X*32+lx, r.Z*32+lz
		mcc := filepath.Join(filepath.Dir(r.path), fmt.Sprintf("c.%d.%d.mcc", cx, cz))
		raw, err := os.ReadFile(mcc)
		if err != nil {
			return nil, fmt.Errorf("container: reading external chunk %s: %w", mcc, err)
		}
		return inflateChunk(raw, kindByte&externalKindBitsMask)
	}

	payload := make([]byte, length-1)
	if _, err := r.f.ReadAt(payload, offset+5); err != nil {
		return nil, fmt.Errorf("container: reading chunk payload: %w", err)
	}
	return inflateChunk(payload, kindByte)
}

func inflateChunk(payload []byte, kind byte) ([]byte, error) {
	switch kind {
	case compressionGzip:
		return compress.InflateGzip(payload)
	case compressionZlib:
		return compress.InflateZlib(payload)
	case compressionNone:
		return payload, nil
	case compressionLZ4:
		return compress.InflateLZ4(payload)
	case compressionCustom:
		return nil, compress.ErrCustomCompression
	default:
		return nil, fmt.Errorf("container: unknown compression kind %d", kind)
	}
}

// regionFileName matches r.<x>.<z>.mca or .mcr.
var regionFileName = regexp.MustCompile(`^r\.(-?\d+)\.(-?\d+)\.mc[ar]$`)

// WalkRegions calls fn once per region file directly inside dir, in no
// particular order, passing its parsed (x, z) and path. Opening the file
// itself is left to the caller via OpenRegion so a worker can defer it
// until the region-task actually runs.
func WalkRegions(dir string, fn func(x, z int, path string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := regionFileName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		x, err1 := strconv.Atoi(m[1])
		z, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		if err := fn(x, z, filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
