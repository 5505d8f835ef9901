package pipeline

import (
	"errors"
	"fmt"
	"image"

	"github.com/rs/zerolog"

	"github.com/ironsheep/thumbshot/internal/imaging"
	"github.com/ironsheep/thumbshot/internal/region"
)

// MonitorSource enumerates the attached monitors.
type MonitorSource interface {
	Monitors() ([]region.Monitor, error)
}

// RegionGrabber captures a w x h rectangle at (relX, relY) relative to the
// top-left corner of monitor m.
type RegionGrabber interface {
	Capture(m region.Monitor, relX, relY, w, h int) (*image.RGBA, error)
}

// CaptureResult describes a saved screenshot.
type CaptureResult struct {
	Output         string          `json:"output"`
	Region         region.Resolved `json:"region"`
	CapturedWidth  int             `json:"captured_width"`
	CapturedHeight int             `json:"captured_height"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
}

// Capturer resolves a requested screen rectangle to one monitor, grabs it and
// saves it, optionally resized.
type Capturer struct {
	monitors MonitorSource
	grabber  RegionGrabber
	resizer  imaging.Resizer
	saver    Saver
	log      zerolog.Logger
}

// NewCapturer returns a Capturer. log may be zerolog.Nop().
func NewCapturer(monitors MonitorSource, grabber RegionGrabber, resizer imaging.Resizer, saver Saver, log zerolog.Logger) *Capturer {
	return &Capturer{
		monitors: monitors,
		grabber:  grabber,
		resizer:  resizer,
		saver:    saver,
		log:      log,
	}
}

// Monitors lists the monitors of the underlying MonitorSource.
func (c *Capturer) Monitors() ([]region.Monitor, error) {
	monitors, err := c.monitors.Monitors()
	if err != nil {
		return nil, newError(KindCapture, "monitors", "", err)
	}
	return monitors, nil
}

// Resolve enumerates monitors and picks the one serving requested, without
// capturing anything. The enumerated monitors are returned alongside.
func (c *Capturer) Resolve(requested region.Rect) (region.Resolved, []region.Monitor, error) {
	const op = "resolve"

	if requested.Width <= 0 || requested.Height <= 0 {
		return region.Resolved{}, nil, newError(KindInvalidArgument, op, "",
			fmt.Errorf("requested size must be positive, got %dx%d", requested.Width, requested.Height))
	}

	monitors, err := c.monitors.Monitors()
	if err != nil {
		return region.Resolved{}, nil, newError(KindCapture, op, "", err)
	}

	res, err := region.Resolve(requested, monitors)
	if err != nil {
		return region.Resolved{}, monitors, &Error{
			Kind:     KindNoMonitorFound,
			Op:       op,
			Monitors: len(monitors),
			Err:      err,
		}
	}

	c.log.Debug().
		Int("monitor", res.Monitor.ID).
		Int("rel_x", res.RelX).
		Int("rel_y", res.RelY).
		Int("width", res.Width).
		Int("height", res.Height).
		Msg("capture region resolved")

	return res, monitors, nil
}

// Capture resolves requested, grabs the clamped region and saves it to
// output. A positive targetWidth resizes the capture, keeping the aspect
// ratio of the captured pixels; 0 keeps the captured size.
func (c *Capturer) Capture(requested region.Rect, output string, targetWidth int) (*CaptureResult, error) {
	const op = "capture"

	if output == "" {
		return nil, newError(KindInvalidArgument, op, "", fmt.Errorf("output path is required"))
	}
	if targetWidth < 0 {
		return nil, newError(KindInvalidArgument, op, output, fmt.Errorf("target width must not be negative, got %d", targetWidth))
	}
	if !imaging.CanEncode(output) {
		return nil, newError(KindInvalidArgument, op, output, fmt.Errorf("no encoder for output file"))
	}

	res, _, err := c.Resolve(requested)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			pe.Op = op
		}
		return nil, err
	}
	if res.Width == 0 || res.Height == 0 {
		return nil, newError(KindCapture, op, output,
			fmt.Errorf("region on monitor %d is empty after clamping", res.Monitor.ID))
	}

	shot, err := c.grabber.Capture(res.Monitor, res.RelX, res.RelY, res.Width, res.Height)
	if err != nil {
		return nil, newError(KindCapture, op, output, err)
	}

	var out image.Image = shot
	capW, capH := shot.Bounds().Dx(), shot.Bounds().Dy()
	if targetWidth > 0 {
		resized, err := imaging.Fit(c.resizer, shot, targetWidth)
		if err != nil {
			return nil, newError(KindCapture, op, output, err)
		}
		out = resized
	}

	if err := c.saver.Save(out, output); err != nil {
		return nil, newError(KindSave, op, output, err)
	}

	result := &CaptureResult{
		Output:         output,
		Region:         res,
		CapturedWidth:  capW,
		CapturedHeight: capH,
		Width:          out.Bounds().Dx(),
		Height:         out.Bounds().Dy(),
	}

	c.log.Info().
		Str("output", output).
		Int("monitor", res.Monitor.ID).
		Int("width", result.Width).
		Int("height", result.Height).
		Msg("screenshot saved")

	return result, nil
}
