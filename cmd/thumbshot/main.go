package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/ironsheep/thumbshot/internal/config"
	"github.com/ironsheep/thumbshot/internal/hdrio"
	"github.com/ironsheep/thumbshot/internal/imaging"
	"github.com/ironsheep/thumbshot/internal/logging"
	"github.com/ironsheep/thumbshot/internal/pipeline"
	"github.com/ironsheep/thumbshot/internal/screen"
)

const longHelp = `Create thumbnails of HDR images and capture screen regions.

HDR files (.hdr Radiance, .exr OpenEXR) are tone mapped to 8-bit, resized
and saved in the format of the output extension. Screenshots pick the
monitor with the largest overlap and clamp the region to it.

Configuration is read from $HOME/.thumbshot/config.toml, a .env file
(next to the executable or in THUMBSHOT_ENV_FILE), THUMBSHOT_* variables
and flags, in increasing order of precedence.`

var exampleUsage = strings.TrimSpace(`
  thumbshot convert sky.hdr
  thumbshot convert --width 480 -o preview.png studio.exr
  thumbshot screenshot --x 1800 --y 0 --region-width 400 --region-height 300 shot.png
  thumbshot watch ~/renders
  thumbshot serve
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries the resolved configuration and the collaborators shared by
// every subcommand.
type app struct {
	cfg     config.Config
	cfgPath string
	out     io.Writer

	log     zerolog.Logger
	resizer imaging.Resizer
	saver   *imaging.Saver
	screen  *screen.Provider
}

// setup resolves configuration for cmd and builds the logger, resizer and
// saver. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if err := config.Load(&a.cfg, a.cfgPath, changed); err != nil {
		return err
	}

	log, err := logging.New(a.cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	a.log = log
	a.log.Debug().Interface("config", a.cfg).Msg("configuration")

	a.resizer, err = imaging.NewResizer(a.cfg.Backend, a.cfg.Filter)
	if err != nil {
		return err
	}
	a.saver = imaging.NewSaver(a.cfg.JPEGQuality)
	a.screen = screen.NewProvider()
	return nil
}

func (a *app) converter() *pipeline.Converter {
	return pipeline.NewConverter(a.cfg.ToneMap(), a.resizer, a.saver,
		pipeline.WithDecoders(hdrio.DefaultRegistry()),
		pipeline.WithOverwrite(a.cfg.Overwrite),
		pipeline.WithLogger(a.log),
	)
}

func (a *app) capturer() *pipeline.Capturer {
	return pipeline.NewCapturer(a.screen, a.screen, a.resizer, a.saver, a.log)
}

// printJSON writes v to stdout as indented JSON.
func (a *app) printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "thumbshot",
		Short:         "HDR thumbnails and monitor-aware screenshots",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.thumbshot/config.toml)")
	pf.StringVar(&a.cfg.LogLevel, config.FlagLogLevel, a.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.Float64Var(&a.cfg.Exposure, config.FlagExposure, a.cfg.Exposure, "tone mapping exposure")
	pf.Float64Var(&a.cfg.InverseGamma, config.FlagInverseGamma, a.cfg.InverseGamma, "inverse gamma for gamma correction")
	pf.IntVar(&a.cfg.ThumbnailWidth, config.FlagWidth, a.cfg.ThumbnailWidth, "thumbnail width in pixels")
	pf.StringVar(&a.cfg.Filter, config.FlagFilter, a.cfg.Filter, "resample filter ("+strings.Join(imaging.Filters(), ", ")+")")
	pf.StringVar(&a.cfg.Backend, config.FlagBackend, a.cfg.Backend, "resize backend ("+strings.Join(imaging.Backends(), ", ")+")")
	pf.IntVar(&a.cfg.JPEGQuality, config.FlagQuality, a.cfg.JPEGQuality, "JPEG quality (1-100)")
	pf.BoolVar(&a.cfg.Overwrite, config.FlagOverwrite, a.cfg.Overwrite, "replace existing thumbnails")
	pf.DurationVar(&a.cfg.WatchDebounce, config.FlagWatchDebounce, a.cfg.WatchDebounce, "quiet period before a watched file is converted")

	root.AddCommand(
		newConvertCmd(a),
		newScreenshotCmd(a),
		newResolveCmd(a),
		newMonitorsCmd(a),
		newGammaCmd(a),
		newToneMapCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
	)
	return root
}

func main() {
	a := &app{cfg: config.Default(), out: os.Stdout}

	// Replaced by setup once the configured level is known.
	a.log, _ = logging.New("info", os.Stderr)

	if err := newRootCmd(a).Execute(); err != nil {
		a.log.Error().Err(err).Msg("thumbshot")
		os.Exit(1)
	}
}
