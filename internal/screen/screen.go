// Package screen enumerates the active displays and captures screen regions.
//
// Display geometry and pixel capture come from github.com/kbinani/screenshot.
// Coordinates follow its virtual-screen convention: the primary display's
// top-left is (0,0) and secondary displays may have negative origins.
package screen

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/ironsheep/thumbshot/internal/region"
)

// ErrNoDisplays is returned when the platform reports no active display.
var ErrNoDisplays = errors.New("no active displays found")

// Provider lists monitors and grabs monitor-relative rectangles.
//
// The zero value is not usable; call NewProvider.
type Provider struct {
	numDisplays   func() int
	displayBounds func(i int) image.Rectangle
	captureRect   func(r image.Rectangle) (*image.RGBA, error)
}

// NewProvider returns a Provider backed by the operating system's displays.
func NewProvider() *Provider {
	return &Provider{
		numDisplays:   screenshot.NumActiveDisplays,
		displayBounds: screenshot.GetDisplayBounds,
		captureRect:   screenshot.CaptureRect,
	}
}

// Monitors returns one descriptor per active display, in platform order.
// Display 0 is reported as primary.
func (p *Provider) Monitors() ([]region.Monitor, error) {
	n := p.numDisplays()
	if n <= 0 {
		return nil, ErrNoDisplays
	}

	monitors := make([]region.Monitor, 0, n)
	for i := 0; i < n; i++ {
		b := p.displayBounds(i)
		monitors = append(monitors, region.Monitor{
			ID:      i,
			Name:    fmt.Sprintf("display-%d", i),
			X:       b.Min.X,
			Y:       b.Min.Y,
			Width:   uint32(max(b.Dx(), 0)),
			Height:  uint32(max(b.Dy(), 0)),
			Primary: i == 0,
		})
	}
	return monitors, nil
}

// Capture grabs a w x h rectangle at (relX, relY) relative to m's origin.
// The returned image is anchored at (0,0).
func (p *Provider) Capture(m region.Monitor, relX, relY, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d on monitor %d", w, h, m.ID)
	}

	x := m.X + relX
	y := m.Y + relY
	rect := image.Rect(x, y, x+w, y+h)

	img, err := p.captureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %v on monitor %d: %w", rect, m.ID, err)
	}

	if img.Rect.Min != (image.Point{}) {
		img = rebase(img)
	}
	return img, nil
}

// rebase copies img into a new buffer whose bounds start at (0,0).
func rebase(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()*4], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return out
}
