package container

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/df-mc/pixelmap/internal/compress"
)

// alphaFileName matches c.<base36 x>.<base36 z>.dat.
var alphaFileName = regexp.MustCompile(`^c\.(-?[0-9a-z]+)\.(-?[0-9a-z]+)\.dat$`)

// AlphaChunkFile is one discovered loose chunk file.
type AlphaChunkFile struct {
	X, Z int
	Path string
}

// WalkAlpha walks the two levels of base-36 subdirectories under root (an
// Alpha/Beta world directory) and calls fn once per terminal chunk file
// whose name matches the Alpha grammar. Entries that don't match are
// silently skipped.
func WalkAlpha(root string, fn func(AlphaChunkFile) error) error {
	firstLevel, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, l1 := range firstLevel {
		if !l1.IsDir() {
			continue
		}
		sub1 := filepath.Join(root, l1.Name())
		secondLevel, err := os.ReadDir(sub1)
		if err != nil {
			continue
		}
		for _, l2 := range secondLevel {
			if !l2.IsDir() {
				continue
			}
			sub := filepath.Join(sub1, l2.Name())
			files, err := os.ReadDir(sub)
			if err != nil {
				continue
			}
			for _, f := range files {
				if f.IsDir() {
					continue
				}
				m := alphaFileName.FindStringSubmatch(f.Name())
				if m == nil {
					continue
				}
				x, errX := strconv.ParseInt(m[1], 36, 32)
				z, errZ := strconv.ParseInt(m[2], 36, 32)
				if errX != nil || errZ != nil {
					continue
				}
				if err := fn(AlphaChunkFile{X: int(x), Z: int(z), Path: filepath.Join(sub, f.Name())}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ReadAlphaChunk reads and gzip-decompresses a loose Alpha/Beta chunk file
// (Alpha ".dat" chunk payloads are always gzip, unlike Anvil's per-chunk
// compression byte).
func ReadAlphaChunk(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("container: reading alpha chunk %s: %w", path, err)
	}
	return compress.InflateGzip(raw)
}
