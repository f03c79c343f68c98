// Command pixelmapcli is a top-down pixel-perfect Minecraft world mapper,
// wiring command-line flags directly onto config.Settings and driving
// pixelmap.Run.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/df-mc/atomic"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/df-mc/pixelmap"
	"github.com/df-mc/pixelmap/config"
	"github.com/df-mc/pixelmap/world/chunk"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("pixelmapcli", flag.ContinueOnError)
	fs.Usage = func() { printHelp(fs) }

	threads := fs.Int("threads", 0, "the amount of threads to create (default is amount of cores)")
	fs.IntVar(threads, "t", 0, "shorthand for -threads")
	dimension := fs.Int("dimension", 0, "the dimension to render")
	fs.IntVar(dimension, "d", 0, "shorthand for -dimension")
	colors := fs.String("colors", "", "the block color file")
	fs.StringVar(colors, "p", "", "shorthand for -colors")
	mode := fs.String("mode", "default", "the mode to render in: default, gray, color")
	fs.StringVar(mode, "m", "default", "shorthand for -mode")
	blend := fs.String("blend", "legacy", "when not opaque, pick a blend mode")
	slice := fs.Int("slice", 0, "slice from height")
	heightline := fs.Int("heightline", 0, "put a height line on every n")
	opaque := fs.Bool("opaque", false, "render blocks as opaque")
	gradient := fs.Bool("gradient", false, "put a darker gradient on blocks depending on height")
	fs.BoolVar(gradient, "g", false, "shorthand for -gradient")
	night := fs.Bool("night", false, "render as if night")
	fs.BoolVar(night, "n", false, "shorthand for -night")
	imageType := fs.String("render", "image", "specify output mode: chunk, region, image(default), image_direct, tiny_chunk, tiny_region")
	fs.StringVar(imageType, "r", "image", "shorthand for -render")
	cave := fs.Bool("cave", false, "render next cave")
	fs.BoolVar(cave, "c", false, "shorthand for -cave")
	pipelineLib := fs.String("lib", "", "set pipeline library")
	pipelineArgs := fs.String("arg", "", "set pipeline library arguments")
	fs.StringVar(pipelineArgs, "a", "", "shorthand for -arg")
	createColor := fs.String("createcolor", "", "create a block color file from the default and exit")
	noLonely := fs.Bool("no-lonely", false, "disable lonely checking")
	verbosity := fs.String("verbosity", "", "exact verbosity level: critical, error, warn, info(default), debug, trace, off")
	verbose := fs.Bool("verbose", false, "display more output to the user")
	quiet := fs.Bool("quiet", false, "silence all output")
	fs.BoolVar(quiet, "q", false, "shorthand for -quiet")
	noColor := fs.Bool("no-color", false, "turn off console color")
	showHelp := fs.Bool("help", false, "this help text")
	fs.BoolVar(showHelp, "h", false, "shorthand for -help")
	showVersion := fs.Bool("version", false, "the version of the program")
	fs.BoolVar(showVersion, "v", false, "shorthand for -version")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbosity == "off" {
		log.SetOutput(io.Discard)
	}
	log.SetLevel(resolveLevel(*verbosity, *verbose, *quiet))
	if _, noColorEnv := os.LookupEnv("NO_COLOR"); noColorEnv || *noColor {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	if *showHelp {
		printHelp(fs)
		return 0
	}
	if *showVersion {
		fmt.Println(version)
		return 0
	}
	if *createColor != "" {
		colors := chunk.NewBlockColor()
		if err := colors.ReadDefault(); err != nil {
			log.Errorf("loading default colors: %v", err)
			return 1
		}
		if err := colors.WriteFile(*createColor); err != nil {
			log.Errorf("writing colors to %s: %v", *createColor, err)
			return 1
		}
		return 0
	}

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Requires one input path and one output path")
		return 1
	}
	input, output := fs.Arg(0), fs.Arg(1)

	settings := config.Default()
	settings.Threads = *threads
	if settings.Threads < 1 {
		settings.Threads = runtime.NumCPU()
	}
	settings.Dimension = *dimension
	settings.Colors = *colors
	settings.NormalizePaths()
	settings.Mode = config.ColorMode(*mode)
	settings.Blend = *blend
	if slice != nil && *slice != 0 {
		settings.Slice = *slice
		settings.SliceSet = true
	}
	settings.Heightline = *heightline
	settings.Opaque = *opaque
	settings.HeightGrad = *gradient
	settings.Night = *night
	settings.ImageType = config.ImageType(*imageType)
	settings.Cave = *cave
	settings.NoLonely = *noLonely
	if *pipelineLib != "" {
		p := &config.Pipeline{Lib: *pipelineLib}
		if *pipelineArgs != "" {
			p.Args = []string{*pipelineArgs}
		}
		settings.Pipeline = p
	}
	settings.ClampThreads(fdLimit())

	abort := new(atomic.Bool)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		if _, ok := <-sig; ok {
			log.Warn("interrupted, aborting render")
			abort.Store(true)
		}
	}()

	start := time.Now()
	var rendered int64
	err := pixelmap.Run(input, output, settings, abort, log, func(n int64) {
		rendered += n
		log.Debugf("rendered %d chunks so far", rendered)
	})
	if abort.Load() {
		return 1
	}
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	log.Infof("total time: %s", time.Since(start).Round(time.Millisecond))
	return 0
}

func resolveLevel(verbosity string, verbose, quiet bool) logrus.Level {
	switch verbosity {
	case "critical", "fatal":
		return logrus.FatalLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	case "trace":
		return logrus.TraceLevel
	case "off":
		return logrus.TraceLevel
	}
	switch {
	case verbose:
		return logrus.DebugLevel
	case quiet:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// fdLimit returns the process's open-file soft limit, used to cap Threads
// since each worker may hold a region file open concurrently. Falls back
// to a conservative default if the resource limit cannot be read.
func fdLimit() int {
	var rlim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rlim); err != nil {
		return 64
	}
	return int(rlim.Cur)
}

func printHelp(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "pixelmapcli [options] <input> <output>")
	fmt.Fprintln(os.Stderr, "Top-down pixel-perfect Minecraft world mapper.")
	fmt.Fprintln(os.Stderr)
	fs.PrintDefaults()
}
