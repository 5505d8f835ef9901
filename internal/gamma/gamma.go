// Package gamma builds and applies 256-entry gamma lookup tables for
// correcting images that are already 8-bit.
//
// It is independent of tone mapping: a LUT is never applied automatically
// after tonemap.ToLDR.
package gamma

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// SRGBInverse is the inverse display gamma used for sRGB-like encoding.
const SRGBInverse = 1.0 / 2.2

// ErrInvalidGamma is returned by Build for non-positive or non-finite exponents.
var ErrInvalidGamma = errors.New("gamma: inverse gamma must be a finite positive number")

// LUT maps an 8-bit channel value to its corrected value.
type LUT [256]uint8

// Build computes lut[i] = round(clamp((i/255)^inverseGamma * 255, 0, 255)).
func Build(inverseGamma float64) (LUT, error) {
	var lut LUT
	if math.IsNaN(inverseGamma) || math.IsInf(inverseGamma, 0) || inverseGamma <= 0 {
		return lut, fmt.Errorf("%w: %v", ErrInvalidGamma, inverseGamma)
	}
	for i := range lut {
		f := float64(i) / 255
		v := math.Pow(f, inverseGamma) * 255
		lut[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return lut, nil
}

// Apply corrects R, G and B; alpha passes through.
//
// A correction is one-shot: applying a non-identity table twice bends the
// curve twice. Only the identity table (Build(1)) is idempotent.
func (l *LUT) Apply(c color.NRGBA) color.NRGBA {
	return color.NRGBA{R: l[c.R], G: l[c.G], B: l[c.B], A: c.A}
}

// ApplyImage corrects img in place.
func (l *LUT) ApplyImage(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			row[i] = l[row[i]]
			row[i+1] = l[row[i+1]]
			row[i+2] = l[row[i+2]]
		}
	}
}

// IsIdentity reports whether the table leaves every value unchanged.
func (l *LUT) IsIdentity() bool {
	for i, v := range l {
		if int(v) != i {
			return false
		}
	}
	return true
}
