package imaging

import (
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in several representations.
type ColorResult struct {
	Hex string   `json:"hex"` // "#rrggbb", alpha excluded
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// AverageColor returns the mean colour of the opaque pixels of img.
//
// Channels are averaged in linear RGB and converted back to sRGB, so a
// half-black, half-white image averages to a mid grey of about #bcbcbc rather
// than #808080. Fully transparent pixels are skipped; an image with none
// left returns black.
func AverageColor(img image.Image) ColorResult {
	src := ToNRGBA(img)
	b := src.Bounds()

	var sr, sg, sb float64
	var n int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			if row[i+3] == 0 {
				continue
			}
			r, g, bl := colorful.Color{
				R: float64(row[i]) / 255,
				G: float64(row[i+1]) / 255,
				B: float64(row[i+2]) / 255,
			}.LinearRgb()
			sr += r
			sg += g
			sb += bl
			n++
		}
	}

	if n == 0 {
		return toColorResult(colorful.Color{})
	}
	mean := colorful.LinearRgb(sr/float64(n), sg/float64(n), sb/float64(n)).Clamped()
	return toColorResult(mean)
}

func toColorResult(c colorful.Color) ColorResult {
	r, g, b := c.RGB255()
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return ColorResult{
		Hex: c.Hex(),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}
