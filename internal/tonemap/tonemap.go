package tonemap

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// DefaultExposure is the exposure factor used for thumbnails.
const DefaultExposure = 4.0

// ErrInvalidExposure is returned by Config.Validate for non-positive or
// non-finite exposure values.
var ErrInvalidExposure = errors.New("tonemap: exposure must be a finite positive number")

// Config controls how aggressively highlights are compressed.
type Config struct {
	Exposure float64 `json:"exposure"`
}

// DefaultConfig returns a Config using DefaultExposure.
func DefaultConfig() Config {
	return Config{Exposure: DefaultExposure}
}

// Validate checks that Exposure is finite and greater than zero.
func (c Config) Validate() error {
	if math.IsNaN(c.Exposure) || math.IsInf(c.Exposure, 0) || c.Exposure <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidExposure, c.Exposure)
	}
	return nil
}

// Map tone maps a single linear channel value with the configured exposure.
func (c Config) Map(linear float32) uint8 {
	return Map(linear, c.Exposure)
}

// Map tone maps a single linear channel value.
func Map(linear float32, exposure float64) uint8 {
	v := float64(linear)
	switch {
	case math.IsNaN(v), v <= 0:
		// Below -1/exposure the raw curve turns positive again; negative
		// radiance is black regardless.
		return 0
	case math.IsInf(v, 1):
		return 255
	}
	exposed := v * exposure
	mapped := exposed / (1 + exposed)
	return quantize(mapped * 255)
}

// MapAlpha scales a coverage value in [0,1] to 8 bits.
func MapAlpha(alpha float32) uint8 {
	return quantize(float64(alpha) * 255)
}

// quantize rounds v to the nearest integer and clamps it to [0,255].
// NaN is treated as 0.
func quantize(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// HDRImage stores a linear-light image as interleaved float32 samples.
// Channels is 3 (RGB) or 4 (RGBA).
type HDRImage struct {
	Width    int
	Height   int
	Channels int
	Pix      []float32
}

// NewHDRImage allocates a zeroed image. Alpha, when present, starts at 0.
func NewHDRImage(width, height, channels int) *HDRImage {
	return &HDRImage{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// Set stores one pixel. a is ignored for 3-channel images.
func (h *HDRImage) Set(x, y int, r, g, b, a float32) {
	i := (y*h.Width + x) * h.Channels
	h.Pix[i] = r
	h.Pix[i+1] = g
	h.Pix[i+2] = b
	if h.Channels == 4 {
		h.Pix[i+3] = a
	}
}

// Validate reports structural problems that would make ToLDR index out of range.
func (h *HDRImage) Validate() error {
	if h == nil {
		return errors.New("tonemap: nil image")
	}
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("tonemap: invalid dimensions %dx%d", h.Width, h.Height)
	}
	if h.Channels != 3 && h.Channels != 4 {
		return fmt.Errorf("tonemap: unsupported channel count %d", h.Channels)
	}
	if len(h.Pix) < h.Width*h.Height*h.Channels {
		return fmt.Errorf("tonemap: pixel buffer too short: %d < %d", len(h.Pix), h.Width*h.Height*h.Channels)
	}
	return nil
}

// ToLDR tone maps every pixel of src into a new 8-bit image.
// RGB channels go through Map; alpha goes through MapAlpha, or is opaque for
// 3-channel sources.
func ToLDR(src *HDRImage, cfg Config) (*image.NRGBA, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, src.Width, src.Height))
	n := src.Width * src.Height
	for p := 0; p < n; p++ {
		si := p * src.Channels
		di := p * 4
		dst.Pix[di] = Map(src.Pix[si], cfg.Exposure)
		dst.Pix[di+1] = Map(src.Pix[si+1], cfg.Exposure)
		dst.Pix[di+2] = Map(src.Pix[si+2], cfg.Exposure)
		if src.Channels == 4 {
			dst.Pix[di+3] = MapAlpha(src.Pix[si+3])
		} else {
			dst.Pix[di+3] = 255
		}
	}
	return dst, nil
}
