// Package image implements a streaming row-wise PNG encoder the world pass
// writes the final map through. Rather than building a full image.Image in
// memory, it frames IHDR/IDAT/tEXt/IEND chunks by hand as rows are
// produced.
package image

import (
	"bufio"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image/color"
	"io"
	"os"
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	colorTypeRGBA  = 6
	bitDepth8      = 8
	compressionDef = 0
	filterDef      = 0
	interlaceNone  = 0
)

// RowFunc produces the W-wide pixel row at the given output row index. The
// encoder calls it exactly H times, strictly increasing, and copies the
// returned slice before returning.
type RowFunc func(row int) []color.RGBA

// chunkWriter frames every Write call as one PNG chunk of the given type,
// matching how rmamba/image's encoder.Write feeds zlib-compressed IDAT data
// through repeated chunk writes.
type chunkWriter struct {
	w      io.Writer
	name   [4]byte
	header [8]byte
	footer [4]byte
	err    error
}

func (c *chunkWriter) Write(b []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	binary.BigEndian.PutUint32(c.header[:4], uint32(len(b)))
	copy(c.header[4:8], c.name[:])
	crc := crc32.NewIEEE()
	crc.Write(c.header[4:8])
	crc.Write(b)
	binary.BigEndian.PutUint32(c.footer[:4], crc.Sum32())

	if _, c.err = c.w.Write(c.header[:8]); c.err != nil {
		return 0, c.err
	}
	if _, c.err = c.w.Write(b); c.err != nil {
		return 0, c.err
	}
	if _, c.err = c.w.Write(c.footer[:4]); c.err != nil {
		return 0, c.err
	}
	return len(b), nil
}

func writeChunk(w io.Writer, name string, b []byte) error {
	var cw chunkWriter
	copy(cw.name[:], name)
	cw.w = w
	_, err := cw.Write(b)
	return err
}

// Save writes a W×H RGBA PNG to path, fetching each row from rows, and
// embeds comment in a single tEXt chunk under the key "mcdata". No partial
// file is left behind on error.
func Save(path string, w, h int, rows RowFunc, comment string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err != nil {
			os.Remove(path)
			return
		}
		err = cerr
	}()

	bw := bufio.NewWriter(f)
	if _, err = bw.Write(pngSignature[:]); err != nil {
		return err
	}
	if err = writeIHDR(bw, w, h); err != nil {
		return err
	}
	if err = writeIDAT(bw, w, h, rows); err != nil {
		return err
	}
	if err = writeText(bw, "mcdata", comment); err != nil {
		return err
	}
	if err = writeChunk(bw, "IEND", nil); err != nil {
		return err
	}
	return bw.Flush()
}

func writeIHDR(w io.Writer, width, height int) error {
	var b [13]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(width))
	binary.BigEndian.PutUint32(b[4:8], uint32(height))
	b[8] = bitDepth8
	b[9] = colorTypeRGBA
	b[10] = compressionDef
	b[11] = filterDef
	b[12] = interlaceNone
	return writeChunk(w, "IHDR", b[:])
}

// writeIDAT streams every row through a None-filtered (filter type 0) PNG
// scanline, zlib-compressing into one or more IDAT chunks as the
// compress/zlib writer's internal buffer fills.
func writeIDAT(w io.Writer, width, height int, rows RowFunc) error {
	cw := &chunkWriter{w: w}
	copy(cw.name[:], "IDAT")
	zw := zlib.NewWriter(cw)

	stride := width*4 + 1
	buf := make([]byte, stride)
	for y := 0; y < height; y++ {
		row := rows(y)
		if len(row) != width {
			return fmt.Errorf("image: row %d: got %d pixels, want %d", y, len(row), width)
		}
		buf[0] = 0 // filter type None
		for x, px := range row {
			o := 1 + x*4
			buf[o], buf[o+1], buf[o+2], buf[o+3] = px.R, px.G, px.B, px.A
		}
		if _, err := zw.Write(buf); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return cw.err
}

// writeText writes an uncompressed tEXt chunk: key, a NUL separator, value.
func writeText(w io.Writer, key, value string) error {
	b := make([]byte, 0, len(key)+1+len(value))
	b = append(b, key...)
	b = append(b, 0)
	b = append(b, value...)
	return writeChunk(w, "tEXt", b)
}
