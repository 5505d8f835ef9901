package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// PreviewResult contains an encoded, resized copy of an image.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview scales img to width (keeping the aspect ratio) and returns it as a
// base64 PNG. A width of 0, or one at least as wide as the source, keeps the
// original size.
func Preview(r Resizer, img image.Image, width int) (*PreviewResult, error) {
	if width < 0 {
		return nil, fmt.Errorf("invalid preview width: %d", width)
	}

	out := ToNRGBA(img)
	if width > 0 && width < out.Bounds().Dx() {
		var err error
		out, err = Fit(r, out, width)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
