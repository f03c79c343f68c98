package container

import (
	"encoding/binary"

	"github.com/df-mc/goleveldb/leveldb"
)

// Bedrock sub-chunk/chunk key tag bytes, appended after the 8- or 12-byte
// chunk index to select which record a key names. These are the publicly
// documented Bedrock LevelDB chunk-key tags.
const (
	tagData3D         = 0x2b
	tagVersion        = 0x76
	tagVersionOld     = 0x2c
	tagSubChunkData   = 0x2f
	tagFinalizedState = 0x36
)

// subChunkBlockLayer restricts rendering to layer 0 of each sub-chunk
// record, matching world/chunk/visitor.DecodeBedrockSubChunk's own
// single-layer convention.
const subChunkBlockLayer = 0

// LevelDB is a read-only view over a Bedrock world's db/ LevelDB store,
// wrapping df-mc/goleveldb's engine.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens the LevelDB store rooted at dir (a Bedrock world's db/
// directory).
func OpenLevelDB(dir string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

// Close releases the underlying LevelDB handles.
func (l *LevelDB) Close() error { return l.db.Close() }

// chunkIndex builds the 8-byte (overworld) or 12-byte (other dimensions)
// little-endian chunk key prefix: x(4) z(4) [dimension(4)].
func chunkIndex(x, z, dimension int32) []byte {
	n := 8
	if dimension != 0 {
		n = 12
	}
	b := make([]byte, n)
	binary.LittleEndian.PutUint32(b[0:4], uint32(x))
	binary.LittleEndian.PutUint32(b[4:8], uint32(z))
	if n == 12 {
		binary.LittleEndian.PutUint32(b[8:12], uint32(dimension))
	}
	return b
}

// Populated reports whether any chunk version record exists for (x, z) in
// the given dimension.
func (l *LevelDB) Populated(x, z, dimension int32) bool {
	key := chunkIndex(x, z, dimension)
	if _, err := l.db.Get(append(append([]byte{}, key...), tagVersion), nil); err == nil {
		return true
	}
	_, err := l.db.Get(append(append([]byte{}, key...), tagVersionOld), nil)
	return err == nil
}

// ChunkData is the set of raw records LoadChunk gathers for one chunk
// position: the 3D biome/heightmap blob (heightmap-stripped) and one
// sub-chunk payload per section index actually present.
type ChunkData struct {
	Biomes    []byte
	SubChunks map[int][]byte
}

// LoadChunk reads every sub-chunk record between yMin>>4 and yMax>>4
// (inclusive, both in section-Y units) for chunk (x, z) in dimension.
func (l *LevelDB) LoadChunk(x, z, dimension int32, yMinSection, yMaxSection int) (ChunkData, error) {
	key := chunkIndex(x, z, dimension)
	var data ChunkData

	biomes, err := l.db.Get(append(append([]byte{}, key...), tagData3D), nil)
	if err != nil && err != leveldb.ErrNotFound {
		return data, err
	}
	if len(biomes) > 512 {
		biomes = biomes[512:]
	}
	data.Biomes = biomes

	data.SubChunks = make(map[int][]byte)
	for sy := yMinSection; sy <= yMaxSection; sy++ {
		k := append(append([]byte{}, key...), tagSubChunkData, byte(int8(sy)))
		v, err := l.db.Get(k, nil)
		if err == leveldb.ErrNotFound {
			continue
		}
		if err != nil {
			return data, err
		}
		data.SubChunks[sy] = v
	}
	return data, nil
}

// WalkChunks calls fn once per distinct (x, z, dimension) chunk key found
// in the store, by scanning every version-tag record.
func (l *LevelDB) WalkChunks(fn func(x, z, dimension int32) error) error {
	it := l.db.NewIterator(nil, nil)
	defer it.Release()
	seen := make(map[[3]int32]bool)
	for it.Next() {
		k := it.Key()
		if len(k) != 9 && len(k) != 13 {
			continue
		}
		tag := k[len(k)-1]
		if tag != tagVersion && tag != tagVersionOld {
			continue
		}
		x := int32(binary.LittleEndian.Uint32(k[0:4]))
		z := int32(binary.LittleEndian.Uint32(k[4:8]))
		var dim int32
		if len(k) == 13 {
			dim = int32(binary.LittleEndian.Uint32(k[8:12]))
		}
		key := [3]int32{x, z, dim}
		if seen[key] {
			continue
		}
		seen[key] = true
		if err := fn(x, z, dim); err != nil {
			return err
		}
	}
	return it.Error()
}
