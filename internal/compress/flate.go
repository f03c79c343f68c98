package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// newFlateReader wraps klauspost/compress/flate for the headerless
// "zlib-raw" LevelDB block type, keeping the same decompressor family used
// for InflateZlib rather than mixing in the standard library's.
func newFlateReader(data []byte) io.ReadCloser {
	return flate.NewReader(bytes.NewReader(data))
}
