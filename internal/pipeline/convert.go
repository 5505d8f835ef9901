package pipeline

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/thumbshot/internal/hdrio"
	"github.com/ironsheep/thumbshot/internal/imaging"
	"github.com/ironsheep/thumbshot/internal/tonemap"
)

// ThumbnailExt is the extension of thumbnails written next to their source.
const ThumbnailExt = ".jpg"

// Saver encodes an image to a file, choosing the format from its extension.
type Saver interface {
	Save(img image.Image, path string) error
}

// ConvertResult describes a finished (or skipped) conversion.
type ConvertResult struct {
	Input        string `json:"input"`
	Output       string `json:"output"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AverageColor string `json:"average_color,omitempty"`
	// Skipped is set by ConvertIfMissing when the output already existed.
	Skipped bool `json:"skipped,omitempty"`
}

// Converter decodes HDR files, tone maps them to 8-bit and saves resized
// thumbnails.
type Converter struct {
	decoders  hdrio.Registry
	toneMap   tonemap.Config
	resizer   imaging.Resizer
	saver     Saver
	overwrite bool
	log       zerolog.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithDecoders replaces the default .hdr/.exr decoder registry.
func WithDecoders(r hdrio.Registry) ConverterOption {
	return func(c *Converter) { c.decoders = r }
}

// WithOverwrite makes ConvertIfMissing regenerate existing thumbnails.
func WithOverwrite(overwrite bool) ConverterOption {
	return func(c *Converter) { c.overwrite = overwrite }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(log zerolog.Logger) ConverterOption {
	return func(c *Converter) { c.log = log }
}

// NewConverter returns a Converter using the given tone-mapping settings,
// resizer and saver.
func NewConverter(tm tonemap.Config, resizer imaging.Resizer, saver Saver, opts ...ConverterOption) *Converter {
	c := &Converter{
		decoders: hdrio.DefaultRegistry(),
		toneMap:  tm,
		resizer:  resizer,
		saver:    saver,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Supports reports whether path has a registered HDR decoder.
func (c *Converter) Supports(path string) bool {
	return c.decoders.Supports(path)
}

// DefaultThumbnailPath returns <dir>/<stem>.jpg for an input file.
func DefaultThumbnailPath(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(input), stem+ThumbnailExt)
}

// Convert decodes input, tone maps it, resizes it to targetWidth (height
// keeps the aspect ratio) and saves it to output. An empty output selects
// DefaultThumbnailPath(input).
func (c *Converter) Convert(input, output string, targetWidth int) (*ConvertResult, error) {
	const op = "convert"

	if output == "" {
		output = DefaultThumbnailPath(input)
	}
	if targetWidth <= 0 {
		return nil, newError(KindInvalidArgument, op, input, fmt.Errorf("target width must be positive, got %d", targetWidth))
	}
	if err := c.toneMap.Validate(); err != nil {
		return nil, newError(KindInvalidArgument, op, input, err)
	}
	if !imaging.CanEncode(output) {
		return nil, newError(KindInvalidArgument, op, output, fmt.Errorf("no encoder for output extension %q", filepath.Ext(output)))
	}

	dec, err := c.decoders.Lookup(input)
	if err != nil {
		return nil, newError(KindUnsupportedFormat, op, input, err)
	}

	hdr, err := dec.Decode(input)
	if err != nil {
		return nil, newError(KindDecode, op, input, err)
	}

	ldr, err := tonemap.ToLDR(hdr, c.toneMap)
	if err != nil {
		return nil, newError(KindDecode, op, input, err)
	}

	thumb, err := imaging.Fit(c.resizer, ldr, targetWidth)
	if err != nil {
		return nil, newError(KindInvalidArgument, op, input, err)
	}

	if err := c.saver.Save(thumb, output); err != nil {
		return nil, newError(KindSave, op, output, err)
	}

	res := &ConvertResult{
		Input:        input,
		Output:       output,
		SourceWidth:  hdr.Width,
		SourceHeight: hdr.Height,
		Width:        thumb.Bounds().Dx(),
		Height:       thumb.Bounds().Dy(),
		AverageColor: imaging.AverageColor(thumb).Hex,
	}

	c.log.Info().
		Str("input", input).
		Str("output", output).
		Int("width", res.Width).
		Int("height", res.Height).
		Msg("thumbnail created")

	return res, nil
}

// ConvertIfMissing behaves like Convert but returns a Skipped result without
// touching the file when output already exists and overwrite is off.
func (c *Converter) ConvertIfMissing(input, output string, targetWidth int) (*ConvertResult, error) {
	if output == "" {
		output = DefaultThumbnailPath(input)
	}

	if !c.overwrite {
		_, err := os.Stat(output)
		if err == nil {
			c.log.Debug().Str("input", input).Str("output", output).Msg("thumbnail exists, skipping")
			return &ConvertResult{Input: input, Output: output, Skipped: true}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindSave, "convert", output, err)
		}
	}

	return c.Convert(input, output, targetWidth)
}
