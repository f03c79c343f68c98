// Package pixelmap renders a Minecraft world save into a top-down PNG map,
// tying together world discovery (world/container), format decoding
// (world/chunk/visitor), the block/region/world pass pipeline
// (render/pass), and the priority worker pool (engine/pool, engine/worker)
// behind one blocking entry point.
package pixelmap

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/df-mc/atomic"
	"github.com/sirupsen/logrus"

	"github.com/df-mc/pixelmap/config"
	"github.com/df-mc/pixelmap/engine/pool"
	"github.com/df-mc/pixelmap/engine/worker"
	"github.com/df-mc/pixelmap/render/blend"
	"github.com/df-mc/pixelmap/render/pass"
	"github.com/df-mc/pixelmap/world/chunk"
	"github.com/df-mc/pixelmap/world/container"
)

// Run blocks until the world at inputPath is fully rendered to outputPath
// according to settings, or abort is signaled. Progress increments (one per
// rendered chunk) are delivered to onProgress, already coalesced to a
// ~50ms cadence.
func Run(inputPath, outputPath string, settings config.Settings, abort *atomic.Bool, log logrus.FieldLogger, onProgress func(n int64)) error {
	if abort == nil {
		abort = new(atomic.Bool)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	colors := chunk.NewBlockColor()
	var err error
	if settings.Colors != "" {
		err = colors.ReadFile(settings.Colors)
	} else {
		err = colors.ReadDefault()
	}
	if err != nil {
		return fmt.Errorf("pixelmap: loading colors: %w", err)
	}

	dim, ok := chunk.DimensionByID(settings.Dimension)
	if !ok {
		return fmt.Errorf("pixelmap: unknown dimension id %d", settings.Dimension)
	}

	chain, err := buildChain(settings)
	if err != nil {
		return err
	}

	threads := settings.Threads
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	p := pool.New(threads, 64)
	defer p.Close()

	progress := config.NewDelayedAccumulator(onProgress)
	defer progress.Flush()

	opts := worker.Options{
		Settings:   settings,
		BlockColor: colors,
		Chain:      chain,
		Range:      dim.Range(),
		Progress:   progress,
		Abort:      abort,
	}

	regionDir := filepath.Join(inputPath, "region")
	dbDir := filepath.Join(inputPath, "db")
	isBedrock := dirExists(dbDir)

	var regions map[[2]int]*pass.RegionScratch
	if isBedrock {
		log.Info("detected Bedrock LevelDB world")
		regions, err = worker.RenderBedrock(worker.BedrockOptions{
			Options:   opts,
			DBDir:     dbDir,
			Dimension: int32(settings.Dimension),
			NightLight: settings.Night,
		})
	} else if dirExists(regionDir) {
		log.Info("detected Anvil/Alpha world")
		regions, err = worker.RenderAnvil(p, worker.AnvilOptions{Options: opts, RegionDir: regionDir})
	} else {
		regions, err = worker.RenderAlpha(p, worker.AnvilOptions{Options: opts, AlphaDir: inputPath})
	}
	if err != nil {
		return fmt.Errorf("pixelmap: rendering world: %w", err)
	}
	if abort.Load() {
		return nil
	}
	if len(regions) == 0 {
		return fmt.Errorf("pixelmap: no populated regions found in %s", inputPath)
	}

	log.Infof("stitching %d region(s) into final image", len(regions))
	return pass.SaveWorld(outputPath, regions, levelComment(inputPath, isBedrock))
}

// levelComment builds the PNG tEXt comment "rendered from <name>", where
// name is the world's LevelName from level.dat when it can be read, falling
// back to the save directory's name.
func levelComment(inputPath string, bedrock bool) string {
	var name string
	var err error
	if bedrock {
		var dat container.LevelDat
		dat, err = container.ReadLevelDat(inputPath)
		name = dat.LevelName
	} else {
		var dat container.LevelDat
		dat, err = container.ReadJavaLevelDat(inputPath)
		name = dat.LevelName
	}
	if err != nil || name == "" {
		name = filepath.Base(inputPath)
	}
	return fmt.Sprintf("rendered from %s", name)
}

// buildChain assembles the block-pass chain from settings: default is
// always first, slice precedes cave, opaque/blend are mutually exclusive,
// and color-mode is mutually exclusive with gradient/heightline/night.
func buildChain(settings config.Settings) (pass.Chain, error) {
	chain := pass.Chain{pass.Default{}}

	if settings.Slice != 0 || settings.SliceSet {
		chain = append(chain, pass.Slice{Y: settings.Slice})
	}
	if settings.Cave {
		chain = append(chain, pass.Cave{})
	}

	switch {
	case settings.Opaque:
		chain = append(chain, pass.Opaque{})
	default:
		mode, err := blendMode(settings.Blend)
		if err != nil {
			return nil, err
		}
		chain = append(chain, pass.Blend{Mode: mode})
	}

	switch settings.Mode {
	case config.ColorModeGray:
		chain = append(chain, pass.Gray{})
	case config.ColorModeColor:
		chain = append(chain, pass.Color{})
	default:
		if settings.HeightGrad {
			chain = append(chain, pass.Heightmap{})
		}
		if settings.Heightline > 0 {
			chain = append(chain, pass.Heightline{Frequency: settings.Heightline})
		}
		if settings.Night {
			chain = append(chain, pass.Night{})
		}
	}
	return chain, nil
}

func blendMode(name string) (blend.Mode, error) {
	switch name {
	case "", "legacy":
		return blend.Legacy, nil
	case "normal":
		return blend.Normal, nil
	case "multiply":
		return blend.Multiply, nil
	case "screen":
		return blend.Screen, nil
	case "overlay":
		return blend.Overlay, nil
	case "darken":
		return blend.Darken, nil
	case "lighten":
		return blend.Lighten, nil
	case "color-dodge":
		return blend.ColorDodge, nil
	case "color-burn":
		return blend.ColorBurn, nil
	case "hard-light":
		return blend.HardLight, nil
	case "soft-light":
		return blend.SoftLight, nil
	case "difference":
		return blend.Difference, nil
	case "exclusion":
		return blend.Exclusion, nil
	case "hue":
		return blend.Hue, nil
	case "saturation":
		return blend.Saturation, nil
	case "color":
		return blend.Color, nil
	case "luminosity":
		return blend.Luminosity, nil
	default:
		return nil, fmt.Errorf("pixelmap: unknown blend mode %q", name)
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
