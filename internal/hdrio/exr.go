package hdrio

import (
	"fmt"
	"os"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/ironsheep/thumbshot/internal/tonemap"
)

// EXRDecoder reads the first part of an OpenEXR file through the RGBA
// interface. Missing channels are filled by the codec (alpha defaults to 1).
// The result has 4 channels.
type EXRDecoder struct{}

// Decode opens path and returns its RGBA samples.
func (EXRDecoder) Decode(path string) (*tonemap.HDRImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	ef, err := exr.OpenReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open exr %s: %w", path, err)
	}

	in, err := exr.NewRGBAInputFile(ef)
	if err != nil {
		return nil, fmt.Errorf("read exr %s: %w", path, err)
	}

	img, err := in.ReadRGBA()
	if err != nil {
		return nil, fmt.Errorf("read exr pixels %s: %w", path, err)
	}

	rect := img.Rect
	if rect.Empty() {
		return nil, fmt.Errorf("read exr %s: empty data window", path)
	}

	out := tonemap.NewHDRImage(rect.Dx(), rect.Dy(), 4)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, a := img.RGBA(x, y)
			out.Set(x-rect.Min.X, y-rect.Min.Y, r, g, b, a)
		}
	}
	return out, nil
}
