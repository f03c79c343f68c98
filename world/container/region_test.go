package container

import (
	"bytes"
	"compress/zlib"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestRegion builds a minimal one-chunk region file at local (0,0):
// header locating sector 2, payload zlib-compressed.
func writeTestRegion(t *testing.T, dir string, x, z int, payload []byte) string {
	t.Helper()
	var zlibBuf bytes.Buffer
	w := zlib.NewWriter(&zlibBuf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	compressed := zlibBuf.Bytes()

	chunkLen := uint32(len(compressed) + 1)
	chunkSectors := (int(chunkLen) + 4 + sectorSize - 1) / sectorSize

	buf := make([]byte, headerSize+chunkSectors*sectorSize)
	loc := uint32(2)<<8 | uint32(chunkSectors)
	buf[0] = byte(loc >> 24)
	buf[1] = byte(loc >> 16)
	buf[2] = byte(loc >> 8)
	buf[3] = byte(loc)

	off := headerSize
	buf[off] = byte(chunkLen >> 24)
	buf[off+1] = byte(chunkLen >> 16)
	buf[off+2] = byte(chunkLen >> 8)
	buf[off+3] = byte(chunkLen)
	buf[off+4] = compressionZlib
	copy(buf[off+5:], compressed)

	path := filepath.Join(dir, "r.0.0.mca")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestRegionReadChunkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := []byte("pretend this is NBT bytes")
	path := writeTestRegion(t, dir, 0, 0, want)

	r, err := OpenRegion(path, 0, 0)
	require.NoError(t, err)
	defer r.Close()

	require.True(t, r.Populated(0, 0))
	require.False(t, r.Populated(1, 0))

	got, err := r.ReadChunk(0, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRegionChunksListsOnlyPopulatedSlots(t *testing.T) {
	dir := t.TempDir()
	path := writeTestRegion(t, dir, 0, 0, []byte("x"))
	r, err := OpenRegion(path, 0, 0)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, [][2]int{{0, 0}}, r.Chunks())
}

func TestRegionReadChunkOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	path := writeTestRegion(t, dir, 0, 0, []byte("x"))
	r, err := OpenRegion(path, 0, 0)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadChunk(32, 0)
	require.Error(t, err)
}

func TestRegionReadChunkNotPresent(t *testing.T) {
	dir := t.TempDir()
	path := writeTestRegion(t, dir, 0, 0, []byte("x"))
	r, err := OpenRegion(path, 0, 0)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadChunk(5, 5)
	require.ErrorIs(t, err, ErrChunkNotPresent)
}

func TestWalkRegionsParsesCoordinatesFromFilenames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"r.0.0.mca", "r.-1.2.mca", "r.3.-4.mcr", "not-a-region.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	seen := map[[2]int]string{}
	err := WalkRegions(dir, func(x, z int, path string) error {
		seen[[2]int{x, z}] = path
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 3)
	require.Contains(t, seen, [2]int{0, 0})
	require.Contains(t, seen, [2]int{-1, 2})
	require.Contains(t, seen, [2]int{3, -4})
}
