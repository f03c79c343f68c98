package container

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	bnbt "github.com/sandertv/gophertunnel/minecraft/nbt"

	"github.com/df-mc/pixelmap/format/nbt"
	"github.com/df-mc/pixelmap/internal/compress"
)

// levelDatHeaderSize is the 8-byte (version int32 LE, length int32 LE)
// prefix Bedrock writes before the little-endian NBT compound in level.dat.
const levelDatHeaderSize = 8

// LevelDat holds the handful of level.dat fields this renderer cares about:
// a human-readable world name for image metadata. DataVersion is set only
// by ReadJavaLevelDat (Bedrock has no single equivalent field: its nearest
// analogue, "lastOpenedWithVersion", is a 4-element engine version array,
// not a monotone format generation counter like Java's DataVersion).
type LevelDat struct {
	LevelName  string `nbt:"LevelName"`
	StorageVer int32  `nbt:"StorageVersion"`

	DataVersion int32
}

// ReadLevelDat loads dir/level.dat (the Bedrock world header), the same
// little-endian NBT-after-8-byte-header layout read/written by
// mcdb.DB.Close via nbt.MarshalEncoding/UnmarshalEncoding. Java/Alpha saves
// encode the equivalent information in a big-endian, gzip-compressed
// level.dat and are read separately by ReadJavaLevelDat.
func ReadLevelDat(dir string) (LevelDat, error) {
	var d LevelDat
	raw, err := os.ReadFile(filepath.Join(dir, "level.dat"))
	if err != nil {
		return d, err
	}
	if len(raw) < levelDatHeaderSize {
		return d, fmt.Errorf("container: level.dat: truncated header")
	}
	_ = int32(binary.LittleEndian.Uint32(raw[0:4])) // format version, unused
	n := int32(binary.LittleEndian.Uint32(raw[4:8]))
	body := raw[levelDatHeaderSize:]
	if int(n) > len(body) {
		return d, fmt.Errorf("container: level.dat: declared length %d exceeds %d remaining bytes", n, len(body))
	}
	if err := bnbt.UnmarshalEncoding(body[:n], &d, bnbt.LittleEndian); err != nil {
		return d, fmt.Errorf("container: level.dat: %w", err)
	}
	return d, nil
}

// ReadJavaLevelDat loads dir/level.dat for an Anvil/Alpha save: a
// gzip-compressed, big-endian NBT root compound with its fields nested one
// level down under "Data" (unlike Bedrock, which stores them at the root).
// Decoded with format/nbt rather than gophertunnel's nbt, matching the rest
// of the Java-format read path (world/chunk/visitor.PreParseDataVersion
// already walks big-endian NBT the same way for per-chunk DataVersion).
func ReadJavaLevelDat(dir string) (LevelDat, error) {
	var d LevelDat
	raw, err := os.ReadFile(filepath.Join(dir, "level.dat"))
	if err != nil {
		return d, err
	}
	plain, err := compress.InflateGzip(raw)
	if err != nil || len(plain) == 0 {
		return d, fmt.Errorf("container: level.dat: gzip decode failed: %w", err)
	}
	root, err := nbt.Decode(plain, nbt.BigEndian)
	if err != nil {
		return d, fmt.Errorf("container: level.dat: %w", err)
	}
	data, _ := root["Data"].(map[string]any)
	if name, ok := data["LevelName"].(string); ok {
		d.LevelName = name
	}
	if dv, ok := data["DataVersion"].(int32); ok {
		d.DataVersion = dv
	}
	return d, nil
}
