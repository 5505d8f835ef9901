package hdrio

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"

	"github.com/ironsheep/thumbshot/internal/tonemap"
)

// RGBEDecoder reads Radiance .hdr files. The result has 3 channels.
type RGBEDecoder struct{}

// Decode opens path and converts every pixel to linear RGB.
func (RGBEDecoder) Decode(path string) (*tonemap.HDRImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := rgbe.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode rgbe %s: %w", path, err)
	}

	hm, ok := m.(hdr.Image)
	if !ok {
		return nil, fmt.Errorf("decode rgbe %s: unexpected image type %T", path, m)
	}

	return fromHDRImage(hm), nil
}

// fromHDRImage copies an hdr.Image into a 3-channel buffer anchored at (0,0).
func fromHDRImage(m hdr.Image) *tonemap.HDRImage {
	b := m.Bounds()
	out := tonemap.NewHDRImage(b.Dx(), b.Dy(), 3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := m.HDRAt(x, y).HDRRGBA()
			out.Set(x-b.Min.X, y-b.Min.Y, float32(r), float32(g), float32(bl), 1)
		}
	}
	return out
}
