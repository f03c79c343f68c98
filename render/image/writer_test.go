package image

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCallsRowFuncExactlyHTimesInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	var seen []int
	err := Save(path, 4, 3, func(row int) []color.RGBA {
		seen = append(seen, row)
		return make([]color.RGBA, 4)
	}, "hello")
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestSaveEmbedsTextChunk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	err := Save(path, 1, 1, func(int) []color.RGBA {
		return []color.RGBA{{R: 1, G: 2, B: 3, A: 4}}
	}, "mcdata-comment")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(b, []byte("tEXt")))
	assert.True(t, bytes.Contains(b, []byte("mcdata\x00mcdata-comment")))
}

func TestSaveRemovesPartialFileOnRowMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	err := Save(path, 4, 2, func(row int) []color.RGBA {
		return make([]color.RGBA, 1) // wrong width
	}, "")
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
