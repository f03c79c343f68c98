package container

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	bnbt "github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/stretchr/testify/require"
)

func TestReadLevelDatBedrock(t *testing.T) {
	dir := t.TempDir()

	body, err := bnbt.MarshalEncoding(LevelDat{LevelName: "My Bedrock World", StorageVer: 9}, bnbt.LittleEndian)
	require.NoError(t, err)

	header := make([]byte, levelDatHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], 9)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(body)))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "level.dat"), append(header, body...), 0o644))

	d, err := ReadLevelDat(dir)
	require.NoError(t, err)
	require.Equal(t, "My Bedrock World", d.LevelName)
	require.EqualValues(t, 9, d.StorageVer)
}

func TestReadLevelDatBedrockTruncatedHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level.dat"), []byte{1, 2, 3}, 0o644))

	_, err := ReadLevelDat(dir)
	require.Error(t, err)
}

// buildJavaLevelDat hand-assembles the minimal big-endian NBT this package
// reads from a Java level.dat: an unnamed root Compound containing a "Data"
// Compound with a "LevelName" String and "DataVersion" Int.
func buildJavaLevelDat(name string, dataVersion int32) []byte {
	var buf bytes.Buffer
	writeU8 := func(v byte) { buf.WriteByte(v) }
	writeU16 := func(v uint16) { var b [2]byte; binary.BigEndian.PutUint16(b[:], v); buf.Write(b[:]) }
	writeI32 := func(v int32) { var b [4]byte; binary.BigEndian.PutUint32(b[:], uint32(v)); buf.Write(b[:]) }
	writeNamedTag := func(tag byte, tagName string) {
		writeU8(tag)
		writeU16(uint16(len(tagName)))
		buf.WriteString(tagName)
	}

	writeNamedTag(10, "") // root Compound, unnamed
	writeNamedTag(10, "Data")

	writeNamedTag(8, "LevelName") // String
	writeU16(uint16(len(name)))
	buf.WriteString(name)

	writeNamedTag(3, "DataVersion") // Int
	writeI32(dataVersion)

	writeU8(0) // end Data
	writeU8(0) // end root
	return buf.Bytes()
}

func TestReadJavaLevelDat(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, err := w.Write(buildJavaLevelDat("My Java World", 3465))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "level.dat"), gz.Bytes(), 0o644))

	d, err := ReadJavaLevelDat(dir)
	require.NoError(t, err)
	require.Equal(t, "My Java World", d.LevelName)
	require.EqualValues(t, 3465, d.DataVersion)
}

func TestReadJavaLevelDatNotGzip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level.dat"), []byte("not gzip"), 0o644))

	_, err := ReadJavaLevelDat(dir)
	require.Error(t, err)
}
