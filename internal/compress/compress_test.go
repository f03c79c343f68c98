package compress

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

func TestInflateZlibRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte("hello pixelmap"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out, err := InflateZlib(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "hello pixelmap", string(out))
}

func TestInflateGzipRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte("hello pixelmap"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out, err := InflateGzip(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "hello pixelmap", string(out))
}
