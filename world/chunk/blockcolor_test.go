package chunk

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockColorDefaultAndFallback(t *testing.T) {
	bc := NewBlockColor()
	require.NoError(t, bc.ReadDefault())
	require.True(t, bc.HasColors())

	stone := bc.IndexByName("minecraft:stone")
	require.Equal(t, color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}, bc.Color(stone))

	unknown := bc.IndexByName("minecraft:does_not_exist")
	require.Equal(t, color.RGBA{}, bc.Color(unknown))
}

func TestBlockColorLegacyDataValueFallback(t *testing.T) {
	bc := NewBlockColor()
	require.NoError(t, bc.ReadDefault())

	// id 1 (stone) is registered plain; a promoted id carrying a nonzero
	// data value in its high bits but the same low byte must resolve to
	// the same color via the id&0xFF retry.
	plain := bc.IndexByID(1)
	promoted := bc.IndexByID(1 | (3 << 12))
	require.Equal(t, plain, promoted)
	require.Equal(t, color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}, bc.Color(plain))
}

func TestBlockColorDamageRanges(t *testing.T) {
	bc := NewBlockColor()
	require.NoError(t, bc.read(strings.NewReader("10 20:1:2:3 = FF0000")))
	require.Equal(t, color.RGBA{R: 0xFF, A: 255}, bc.Color(bc.IndexByID(10)))
	require.Equal(t, color.RGBA{R: 0xFF, A: 255}, bc.Color(bc.IndexByID(20|(1<<12))))
	require.Equal(t, color.RGBA{R: 0xFF, A: 255}, bc.Color(bc.IndexByID(20|(2<<12))))
}

func TestBlockColorWriteFileIsDeterministic(t *testing.T) {
	bc := NewBlockColor()
	require.NoError(t, bc.ReadDefault())

	path := filepath.Join(t.TempDir(), "colors.txt")
	require.NoError(t, bc.WriteFile(path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, bc.WriteFile(path))
		again, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
