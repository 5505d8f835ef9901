package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Backend and filter names accepted by NewResizer.
const (
	BackendImaging = "imaging"
	BackendNfnt    = "nfnt"
	BackendBild    = "bild"

	FilterLanczos    = "lanczos"
	FilterCatmullRom = "catmullrom"
	FilterLinear     = "linear"
	FilterBox        = "box"
	FilterNearest    = "nearest"
)

var (
	// ErrUnknownBackend is returned by NewResizer for an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown resize backend")

	// ErrUnknownFilter is returned by NewResizer for an unrecognised filter name.
	ErrUnknownFilter = errors.New("unknown resize filter")
)

// Resizer scales an image to exact pixel dimensions.
//
// Implementations always return a new *image.NRGBA anchored at (0,0) and never
// modify the source.
type Resizer interface {
	Resize(img image.Image, width, height int) *image.NRGBA
}

// filterSet holds the native kernel of every backend for one filter name.
type filterSet struct {
	imaging imaging.ResampleFilter
	nfnt    resize.InterpolationFunction
	bild    transform.ResampleFilter
}

var filters = map[string]filterSet{
	FilterLanczos:    {imaging.Lanczos, resize.Lanczos3, transform.Lanczos},
	FilterCatmullRom: {imaging.CatmullRom, resize.Bicubic, transform.CatmullRom},
	FilterLinear:     {imaging.Linear, resize.Bilinear, transform.Linear},
	FilterBox:        {imaging.Box, resize.NearestNeighbor, transform.Box},
	FilterNearest:    {imaging.NearestNeighbor, resize.NearestNeighbor, transform.NearestNeighbor},
}

// Backends returns the accepted backend names.
func Backends() []string {
	return []string{BackendImaging, BackendNfnt, BackendBild}
}

// Filters returns the accepted filter names in sorted order.
func Filters() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewResizer returns the Resizer for a backend and filter name. Names are
// case-insensitive; empty strings select the defaults (imaging, lanczos).
func NewResizer(backend, filter string) (Resizer, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	filter = strings.ToLower(strings.TrimSpace(filter))
	if backend == "" {
		backend = BackendImaging
	}
	if filter == "" {
		filter = FilterLanczos
	}

	fs, ok := filters[filter]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFilter, filter, strings.Join(Filters(), ", "))
	}

	switch backend {
	case BackendImaging:
		return imagingResizer{filter: fs.imaging}, nil
	case BackendNfnt:
		return nfntResizer{interp: fs.nfnt}, nil
	case BackendBild:
		return bildResizer{filter: fs.bild}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownBackend, backend, strings.Join(Backends(), ", "))
	}
}

type imagingResizer struct {
	filter imaging.ResampleFilter
}

func (r imagingResizer) Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, r.filter)
}

type nfntResizer struct {
	interp resize.InterpolationFunction
}

func (r nfntResizer) Resize(img image.Image, width, height int) *image.NRGBA {
	return ToNRGBA(resize.Resize(uint(width), uint(height), img, r.interp))
}

type bildResizer struct {
	filter transform.ResampleFilter
}

func (r bildResizer) Resize(img image.Image, width, height int) *image.NRGBA {
	// bild works in premultiplied RGBA; convert back so alpha stays separate.
	return ToNRGBA(transform.Resize(img, width, height, r.filter))
}

// ToNRGBA returns img as a non-premultiplied *image.NRGBA anchored at (0,0).
// An *image.NRGBA that is already anchored is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// TargetHeight returns the height that preserves the aspect ratio of a
// srcWidth x srcHeight image scaled to targetWidth:
//
//	round(srcHeight / (srcWidth / targetWidth))
//
// The result is at least 1. Non-positive inputs return 0.
func TargetHeight(srcWidth, srcHeight, targetWidth int) int {
	if srcWidth <= 0 || srcHeight <= 0 || targetWidth <= 0 {
		return 0
	}
	ratio := float64(srcWidth) / float64(targetWidth)
	h := int(math.Round(float64(srcHeight) / ratio))
	return max(h, 1)
}

// Fit resizes img to targetWidth keeping its aspect ratio.
func Fit(r Resizer, img image.Image, targetWidth int) (*image.NRGBA, error) {
	b := img.Bounds()
	h := TargetHeight(b.Dx(), b.Dy(), targetWidth)
	if h == 0 {
		return nil, fmt.Errorf("cannot resize %dx%d image to width %d", b.Dx(), b.Dy(), targetWidth)
	}
	return r.Resize(img, targetWidth, h), nil
}
