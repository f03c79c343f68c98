package pixelmap

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df-mc/pixelmap/config"
	"github.com/df-mc/pixelmap/render/pass"
)

func TestBuildChainAlwaysStartsWithDefault(t *testing.T) {
	chain, err := buildChain(config.Default())
	require.NoError(t, err)
	require.NotEmpty(t, chain)
	_, ok := chain[0].(pass.Default)
	assert.True(t, ok)
}

func TestBuildChainOpaqueExcludesBlend(t *testing.T) {
	s := config.Default()
	s.Opaque = true
	chain, err := buildChain(s)
	require.NoError(t, err)
	for _, p := range chain {
		_, isBlend := p.(pass.Blend)
		assert.False(t, isBlend, "opaque chain must not also contain Blend")
	}
}

func TestBuildChainGrayModeExcludesHeightmap(t *testing.T) {
	s := config.Default()
	s.Mode = config.ColorModeGray
	s.HeightGrad = true
	chain, err := buildChain(s)
	require.NoError(t, err)
	sawGray, sawHeightmap := false, false
	for _, p := range chain {
		switch p.(type) {
		case pass.Gray:
			sawGray = true
		case pass.Heightmap:
			sawHeightmap = true
		}
	}
	assert.True(t, sawGray)
	assert.False(t, sawHeightmap)
}

func TestBuildChainUnknownBlendModeErrors(t *testing.T) {
	s := config.Default()
	s.Blend = "not-a-real-mode"
	_, err := buildChain(s)
	assert.Error(t, err)
}

func TestBuildChainLegacyIsDefaultBlendMode(t *testing.T) {
	s := config.Default()
	require.Equal(t, "legacy", s.Blend)
	chain, err := buildChain(s)
	require.NoError(t, err)
	found := false
	for _, p := range chain {
		if b, ok := p.(pass.Blend); ok {
			found = true
			assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, b.Mode(color.RGBA{}, color.RGBA{R: 1, G: 2, B: 3, A: 255}))
		}
	}
	assert.True(t, found, "default chain must include a Blend pass")
}

func TestLevelCommentFallsBackToDirNameWithoutLevelDat(t *testing.T) {
	dir := t.TempDir()
	assert.Contains(t, levelComment(dir, false), filepath.Base(dir))
	assert.Contains(t, levelComment(dir, true), filepath.Base(dir))
}
