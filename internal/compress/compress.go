// Package compress implements the full-buffer decompression routines needed
// to read chunk payloads across every save generation PixelMap supports:
// zlib (with and without the 2-byte header), gzip, and LZ4 block-stream.
//
// Every routine here returns a freshly allocated byte slice. On failure it
// returns a non-nil error; the slice is then nil when the stream header is
// rejected and otherwise may hold output decoded before the failure —
// callers escalate the error to their compression-error counter rather than
// surfacing it to the end user.
package compress

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrCustomCompression is returned for Anvil's compression kind 127
// ("custom"), which names a payload format but ships no decoder. Callers
// must treat this as a dedicated error class, never guess a codec.
var ErrCustomCompression = errors.New("compress: custom compression kind has no decoder")

// ErrUnsupportedBlockType names the error for LevelDB block types that are
// recognized by name but not implemented (snappy). No code in this module
// returns it.
var ErrUnsupportedBlockType = errors.New("compress: unsupported block type")

// InflateZlib decompresses a zlib stream (2-byte header + deflate + Adler32
// trailer).
func InflateZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// InflateZlibRaw decompresses a headerless deflate stream, as used by
// LevelDB's "zlib-raw" block type (4).
func InflateZlibRaw(data []byte) ([]byte, error) {
	fr := newFlateReader(data)
	defer fr.Close()
	return io.ReadAll(fr)
}

// InflateGzip decompresses a gzip stream.
func InflateGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// InflateLZ4 decompresses an LZ4 block stream (Anvil compression kind 4).
func InflateLZ4(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	return io.ReadAll(r)
}

// InflateZstd decompresses a zstd stream, the codec of LevelDB block type
// 3; no code in this module calls it. Callers should treat any failure here as a recognized-but-bad
// chunk rather than retrying.
func InflateZstd(data []byte) ([]byte, error) {
	d, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.DecodeAll(data, nil)
}
