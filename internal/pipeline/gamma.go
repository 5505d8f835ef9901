package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/ironsheep/thumbshot/internal/gamma"
	"github.com/ironsheep/thumbshot/internal/imaging"
)

// GammaResult describes a gamma-corrected file.
type GammaResult struct {
	Path         string  `json:"path"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	InverseGamma float64 `json:"inverse_gamma"`
}

// GammaCorrector applies a gamma LUT to LDR files in place.
//
// The correction is not idempotent: running it twice on the same file
// brightens it twice.
type GammaCorrector struct {
	saver Saver
	log   zerolog.Logger
}

// NewGammaCorrector returns a GammaCorrector writing through saver.
func NewGammaCorrector(saver Saver, log zerolog.Logger) *GammaCorrector {
	return &GammaCorrector{saver: saver, log: log}
}

// CorrectFile reads path, maps every colour channel through the LUT built for
// inverseGamma and writes the result back to path.
func (g *GammaCorrector) CorrectFile(path string, inverseGamma float64) (*GammaResult, error) {
	const op = "gamma"

	lut, err := gamma.Build(inverseGamma)
	if err != nil {
		return nil, newError(KindInvalidArgument, op, path, err)
	}
	if !imaging.CanEncode(path) {
		return nil, newError(KindUnsupportedFormat, op, path, ErrUnsupportedFormat)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, newError(KindDecode, op, path, err)
	}

	lut.ApplyImage(img)

	if err := g.saver.Save(img, path); err != nil {
		return nil, newError(KindSave, op, path, err)
	}

	g.log.Info().Str("path", path).Float64("inverse_gamma", inverseGamma).Msg("gamma corrected")

	return &GammaResult{
		Path:         path,
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
		InverseGamma: inverseGamma,
	}, nil
}
