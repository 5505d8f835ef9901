package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/thumbshot/internal/pipeline"
	"github.com/ironsheep/thumbshot/internal/region"
	"github.com/ironsheep/thumbshot/internal/server"
	"github.com/ironsheep/thumbshot/internal/tonemap"
	"github.com/ironsheep/thumbshot/internal/watch"
)

func newConvertCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <file.hdr|file.exr>...",
		Short: "Create thumbnails of HDR images",
		Long: `Tone map, resize and save each input. Without -o the thumbnail is written
next to the input as <stem>.jpg. Existing thumbnails are kept unless
--overwrite is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return errors.New("-o can only be used with a single input")
			}

			conv := a.converter()
			var failed int
			for _, input := range args {
				res, err := conv.ConvertIfMissing(input, output, a.cfg.ThumbnailWidth)
				if err != nil {
					a.log.Error().Err(err).Str("input", input).Msg("convert failed")
					failed++
					continue
				}
				if err := a.printJSON(res); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (single input only)")
	return cmd
}

// regionFlags binds the rectangle flags to r.
func regionFlags(cmd *cobra.Command, r *region.Rect) {
	cmd.Flags().IntVar(&r.X, "x", 0, "left edge in virtual-desktop pixels")
	cmd.Flags().IntVar(&r.Y, "y", 0, "top edge in virtual-desktop pixels")
	cmd.Flags().IntVar(&r.Width, "region-width", 0, "region width")
	cmd.Flags().IntVar(&r.Height, "region-height", 0, "region height")
	_ = cmd.MarkFlagRequired("region-width")
	_ = cmd.MarkFlagRequired("region-height")
}

func newScreenshotCmd(a *app) *cobra.Command {
	var (
		req         region.Rect
		resizeWidth int
	)

	cmd := &cobra.Command{
		Use:   "screenshot <output>",
		Short: "Capture a desktop region to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.capturer().Capture(req, args[0], resizeWidth)
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
	regionFlags(cmd, &req)
	cmd.Flags().IntVar(&resizeWidth, "resize", 0, "resize the capture to this width (0 keeps the captured size)")
	return cmd
}

func newResolveCmd(a *app) *cobra.Command {
	var req region.Rect

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which monitor would serve a capture region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, monitors, err := a.capturer().Resolve(req)
			if err != nil {
				return err
			}
			return a.printJSON(map[string]interface{}{
				"region":   res,
				"absolute": res.Absolute(),
				"monitors": len(monitors),
			})
		},
	}
	regionFlags(cmd, &req)
	return cmd
}

func newMonitorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List attached monitors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			monitors, err := a.screen.Monitors()
			if err != nil {
				return err
			}
			return a.printJSON(monitors)
		},
	}
}

func newGammaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gamma <image>...",
		Short: "Apply inverse gamma to LDR images in place",
		Long: `Each file is rewritten with every colour channel mapped through
round(255 * (v/255)^inverse-gamma). Running it twice brightens twice.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := pipeline.NewGammaCorrector(a.saver, a.log)
			for _, path := range args {
				res, err := g.CorrectFile(path, a.cfg.InverseGamma)
				if err != nil {
					return err
				}
				if err := a.printJSON(res); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newToneMapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tonemap <value>...",
		Short: "Map linear radiance values to 8-bit levels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.ToneMap()
			for _, arg := range args {
				v, err := strconv.ParseFloat(arg, 32)
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", arg, err)
				}
				fmt.Fprintf(a.out, "%s\t%d\n", arg, tonemap.Map(float32(v), cfg.Exposure))
			}
			return nil
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Create thumbnails for HDR files as they appear in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := watch.New(args[0], a.converter(), watch.Options{
				Width:    a.cfg.ThumbnailWidth,
				Debounce: a.cfg.WatchDebounce,
			}, a.log)

			if err := w.Run(ctx); err != nil {
				return err
			}
			a.log.Info().Msg("watcher stopped")
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.log.Info().Str("version", getVersion()).Msg("MCP server starting")

			srv := server.New(server.Deps{
				Config:    a.cfg,
				Resizer:   a.resizer,
				Converter: a.converter(),
				Capturer:  a.capturer(),
				Gamma:     pipeline.NewGammaCorrector(a.saver, a.log),
				Log:       a.log,
			})
			if err := srv.Run(); err != nil {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		},
	}
}
