// Package imaging provides the LDR image collaborators used by the thumbnail
// and screenshot pipelines.
//
// This package wraps third-party raster libraries behind small, synchronous
// helpers: opening and decoding LDR files, resizing with a selectable backend,
// atomic encode-and-save, base64 previews, and average-colour summaries. It
// never implements a resampling filter itself.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Images returned by this
// package are anchored at (0,0).
//
// # Resize Backends
//
// NewResizer selects one of three libraries:
//   - "imaging": github.com/disintegration/imaging (default)
//   - "nfnt": github.com/nfnt/resize
//   - "bild": github.com/anthonynsimon/bild/transform
//
// Filter names are shared across backends (lanczos, catmullrom, linear, box,
// nearest); each backend maps a name to its closest native kernel.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Resizers are immutable and
// may be shared. Individual operations are stateless.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O errors during loading or saving
//   - Unknown output extensions (no encoder registered)
//   - Unknown backend or filter names
//   - Non-positive target dimensions
package imaging
