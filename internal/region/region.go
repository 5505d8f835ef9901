// Package region decides which monitor serves a screenshot request and
// clamps the request to that monitor.
//
// Coordinates are virtual-desktop pixels. Monitor origins may be negative
// (displays left of or above the primary), so all arithmetic is done in
// signed int and every clamp is an explicit comparison.
package region

import (
	"errors"
	"fmt"
)

// ErrNoMonitorFound is returned when no monitor overlaps the requested
// rectangle or contains its top-left corner.
var ErrNoMonitorFound = errors.New("no monitor overlaps the requested region")

// Rect is a rectangle in virtual-desktop coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Monitor describes one display. Missing geometry is left at zero.
type Monitor struct {
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   uint32 `json:"width"`
	Height  uint32 `json:"height"`
	Primary bool   `json:"primary,omitempty"`
}

// Bounds returns the monitor area as a signed Rect.
func (m Monitor) Bounds() Rect {
	return Rect{X: m.X, Y: m.Y, Width: int(m.Width), Height: int(m.Height)}
}

// Resolved is a capture rectangle relative to the chosen monitor's origin.
// RelX+Width never exceeds Monitor.Width, and likewise for the vertical axis.
type Resolved struct {
	Monitor Monitor `json:"monitor"`
	RelX    int     `json:"rel_x"`
	RelY    int     `json:"rel_y"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
}

// Absolute returns the resolved rectangle in virtual-desktop coordinates.
func (r Resolved) Absolute() Rect {
	return Rect{
		X:      r.Monitor.X + r.RelX,
		Y:      r.Monitor.Y + r.RelY,
		Width:  r.Width,
		Height: r.Height,
	}
}

// OverlapArea returns the intersection area of a and b, or 0 if they do not
// intersect.
func OverlapArea(a, b Rect) int {
	ox := max(a.X, b.X)
	oy := max(a.Y, b.Y)
	ow := max(0, min(a.X+a.Width, b.X+b.Width)-ox)
	oh := max(0, min(a.Y+a.Height, b.Y+b.Height)-oy)
	return ow * oh
}

// Contains reports whether the point (x, y) lies inside r. The right and
// bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Resolve picks the monitor with the largest overlap with requested. Ties go
// to the monitor that appears first in monitors. When nothing overlaps, the
// first monitor containing the requested top-left corner is used instead.
func Resolve(requested Rect, monitors []Monitor) (Resolved, error) {
	chosen, ok := bestOverlap(requested, monitors)
	if !ok {
		chosen, ok = containing(requested, monitors)
	}
	if !ok {
		return Resolved{}, fmt.Errorf("%w (%d monitors)", ErrNoMonitorFound, len(monitors))
	}
	return clampTo(requested, chosen), nil
}

func bestOverlap(requested Rect, monitors []Monitor) (Monitor, bool) {
	var best Monitor
	bestArea := 0
	for _, m := range monitors {
		// strictly greater: equal areas keep the earlier monitor
		if area := OverlapArea(m.Bounds(), requested); area > bestArea {
			best, bestArea = m, area
		}
	}
	return best, bestArea > 0
}

func containing(requested Rect, monitors []Monitor) (Monitor, bool) {
	for _, m := range monitors {
		if m.Bounds().Contains(requested.X, requested.Y) {
			return m, true
		}
	}
	return Monitor{}, false
}

func clampTo(requested Rect, m Monitor) Resolved {
	relX := max(0, requested.X-m.X)
	relY := max(0, requested.Y-m.Y)

	maxW := max(0, int(m.Width)-relX)
	maxH := max(0, int(m.Height)-relY)

	return Resolved{
		Monitor: m,
		RelX:    relX,
		RelY:    relY,
		Width:   min(max(0, requested.Width), maxW),
		Height:  min(max(0, requested.Height), maxH),
	}
}
