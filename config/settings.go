// Package config defines the render configuration surface: an explicit
// struct with one typed field per recognized option, plus Extras for a
// plugin pipeline's own arguments, loadable from a TOML file via
// pelletier/go-toml.
package config

import (
	"os"

	"github.com/pelletier/go-toml"
	"golang.org/x/text/unicode/norm"
)

// ImageType names an output granularity. pixelmap.Run does not read it:
// every run writes one stitched world image.
type ImageType string

const (
	ImageTypeChunk       ImageType = "chunk"
	ImageTypeRegion      ImageType = "region"
	ImageTypeImage       ImageType = "image"
	ImageTypeImageDirect ImageType = "image_direct"
	ImageTypeTinyChunk   ImageType = "tiny_chunk"
	ImageTypeTinyRegion  ImageType = "tiny_region"
)

// ColorMode selects which of the block passes supplies a block's base
// color.
type ColorMode string

const (
	ColorModeDefault ColorMode = "default"
	ColorModeGray    ColorMode = "gray"
	ColorModeColor   ColorMode = "color"
)

// Pipeline names an external plugin providing custom passes.
type Pipeline struct {
	Lib  string   `toml:"lib"`
	Args []string `toml:"args"`
}

// Settings is the full recognized render configuration.
type Settings struct {
	Threads int `toml:"threads"`

	Dimension   int    `toml:"dimension"`
	Colors      string `toml:"colors"`
	LightSource string `toml:"lightsource"`

	Mode  ColorMode `toml:"mode"`
	Blend string    `toml:"blend"`

	Slice      int  `toml:"slice"`
	SliceSet   bool `toml:"-"`
	Heightline int  `toml:"heightline"`
	Opaque     bool `toml:"opaque"`
	HeightGrad bool `toml:"heightgradient"`
	Night      bool `toml:"night"`
	Cave       bool `toml:"cave"`

	ImageType ImageType `toml:"imageType"`
	NoLonely  bool      `toml:"nolonely"`

	Pipeline *Pipeline `toml:"pipeline"`

	// Extras carries any plugin-specific arguments a Pipeline consumes,
	// unknown to the core render loop.
	Extras map[string]string `toml:"extras"`
}

// Default returns the settings the CLI falls back to when neither a flag
// nor a config file overrides a field.
func Default() Settings {
	return Settings{
		Threads:   1,
		Mode:      ColorModeDefault,
		Blend:     "legacy",
		ImageType: ImageTypeRegion,
	}
}

// Load reads a TOML settings file at path and merges it over Default().
func Load(path string) (Settings, error) {
	s := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(b, &s); err != nil {
		return s, err
	}
	s.NormalizePaths()
	return s, nil
}

// NormalizePaths puts Colors and LightSource through Unicode NFC
// normalization, so a path written with decomposed combining characters
// (as macOS's filesystem APIs tend to hand back) still matches a
// precomposed name on disk.
func (s *Settings) NormalizePaths() {
	s.Colors = norm.NFC.String(s.Colors)
	s.LightSource = norm.NFC.String(s.LightSource)
}

// ClampThreads clamps Threads into [1, fdLimit-1], leaving headroom for
// other file descriptors a worker may need.
func (s *Settings) ClampThreads(fdLimit int) {
	upper := fdLimit - 1
	if upper < 1 {
		upper = 1
	}
	switch {
	case s.Threads < 1:
		s.Threads = 1
	case s.Threads > upper:
		s.Threads = upper
	}
}
