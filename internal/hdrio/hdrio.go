// Package hdrio decodes HDR image containers into linear float buffers.
//
// Container parsing is delegated to third-party codecs; this package only
// adapts their pixel accessors to tonemap.HDRImage and dispatches by file
// extension.
//
// Supported extensions (case-insensitive):
//   - .hdr: Radiance RGBE, via github.com/mdouchement/hdr
//   - .exr: OpenEXR scanline/tiled RGBA, via github.com/mrjoshuak/go-openexr
package hdrio

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/thumbshot/internal/tonemap"
)

// ErrUnsupportedFormat is returned when no decoder is registered for a
// file's extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Decoder turns a file on disk into linear radiance.
type Decoder interface {
	Decode(path string) (*tonemap.HDRImage, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (*tonemap.HDRImage, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (*tonemap.HDRImage, error) { return f(path) }

// Registry maps lower-case extensions (with the leading dot) to decoders.
type Registry map[string]Decoder

// DefaultRegistry returns the built-in .hdr and .exr decoders.
func DefaultRegistry() Registry {
	return Registry{
		".hdr": RGBEDecoder{},
		".exr": EXRDecoder{},
	}
}

// Lookup returns the decoder for path's extension.
func (r Registry) Lookup(path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if d, ok := r[ext]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
}

// Supports reports whether a decoder is registered for path's extension.
func (r Registry) Supports(path string) bool {
	_, ok := r[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the registered extensions in sorted order.
func (r Registry) Extensions() []string {
	exts := make([]string, 0, len(r))
	for ext := range r {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
