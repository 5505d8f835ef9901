package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when a Saver has no explicit quality.
const DefaultJPEGQuality = 90

// DefaultFileMode is the permission of newly created outputs. Overwritten
// files keep their existing permissions.
const DefaultFileMode os.FileMode = 0o644

// Saver encodes images to disk, choosing the format from the file extension.
//
// Writes are atomic: the image is encoded to a temporary file in the
// destination directory and renamed over the target only after the encoder
// and Close have both succeeded. A failed save leaves no partial output.
// New files get DefaultFileMode; an existing target keeps its permissions.
type Saver struct {
	// JPEGQuality is the quality (1-100) used for .jpg/.jpeg outputs.
	JPEGQuality int
}

// NewSaver returns a Saver with the given JPEG quality. Values outside 1..100
// fall back to DefaultJPEGQuality.
func NewSaver(jpegQuality int) *Saver {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &Saver{JPEGQuality: jpegQuality}
}

// Save writes img to path.
//
// Supported extensions are those of github.com/disintegration/imaging:
// .jpg, .jpeg, .png, .gif, .tif, .tiff and .bmp (case-insensitive).
func (s *Saver) Save(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	quality := s.JPEGQuality
	if quality == 0 {
		quality = DefaultJPEGQuality
	}

	mode := DefaultFileMode
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := imaging.Encode(tmp, img, format, imaging.JPEGQuality(quality)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// CanEncode reports whether Save knows an encoder for path's extension.
func CanEncode(path string) bool {
	_, err := imaging.FormatFromFilename(path)
	return err == nil
}
