package region

import (
	"errors"
	"testing"
)

func dualMonitors() []Monitor {
	return []Monitor{
		{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
		{ID: 1, X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
}

func TestResolve_InsideFirstMonitor(t *testing.T) {
	got, err := Resolve(Rect{X: 100, Y: 100, Width: 500, Height: 500}, dualMonitors())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if got.Monitor.ID != 0 {
		t.Errorf("monitor: got %d, want 0", got.Monitor.ID)
	}
	if got.RelX != 100 || got.RelY != 100 {
		t.Errorf("rel: got (%d,%d), want (100,100)", got.RelX, got.RelY)
	}
	if got.Width != 500 || got.Height != 500 {
		t.Errorf("size: got %dx%d, want 500x500", got.Width, got.Height)
	}
}

func TestResolve_StraddlingPicksLargerOverlap(t *testing.T) {
	// 120*400 = 48000 on monitor 0, 280*400 = 112000 on monitor 1
	got, err := Resolve(Rect{X: 1800, Y: 0, Width: 400, Height: 400}, dualMonitors())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if got.Monitor.ID != 1 {
		t.Fatalf("monitor: got %d, want 1", got.Monitor.ID)
	}
	if got.RelX != 0 || got.RelY != 0 {
		t.Errorf("rel: got (%d,%d), want (0,0)", got.RelX, got.RelY)
	}
	if got.Width != 400 || got.Height != 400 {
		t.Errorf("size: got %dx%d, want 400x400", got.Width, got.Height)
	}
}

func TestResolve_TieKeepsFirstMonitor(t *testing.T) {
	// 200 pixels on each side of the boundary
	req := Rect{X: 1720, Y: 0, Width: 400, Height: 100}

	got, err := Resolve(req, dualMonitors())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Monitor.ID != 0 {
		t.Errorf("tie: got monitor %d, want 0", got.Monitor.ID)
	}

	reversed := []Monitor{dualMonitors()[1], dualMonitors()[0]}
	got, err = Resolve(req, reversed)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Monitor.ID != 1 {
		t.Errorf("tie with reversed order: got monitor %d, want 1", got.Monitor.ID)
	}
}

func TestResolve_OutsideAllMonitors(t *testing.T) {
	_, err := Resolve(Rect{X: -5000, Y: -5000, Width: 10, Height: 10}, dualMonitors())
	if !errors.Is(err, ErrNoMonitorFound) {
		t.Fatalf("got %v, want ErrNoMonitorFound", err)
	}
}

func TestResolve_NoMonitors(t *testing.T) {
	_, err := Resolve(Rect{X: 0, Y: 0, Width: 10, Height: 10}, nil)
	if !errors.Is(err, ErrNoMonitorFound) {
		t.Fatalf("got %v, want ErrNoMonitorFound", err)
	}
}

func TestResolve_ClampsToMonitorBounds(t *testing.T) {
	monitors := []Monitor{{ID: 7, X: 0, Y: 0, Width: 800, Height: 600}}

	got, err := Resolve(Rect{X: 700, Y: 500, Width: 500, Height: 500}, monitors)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if got.RelX != 700 || got.RelY != 500 {
		t.Errorf("rel: got (%d,%d), want (700,500)", got.RelX, got.RelY)
	}
	if got.Width != 100 || got.Height != 100 {
		t.Errorf("size: got %dx%d, want 100x100", got.Width, got.Height)
	}
}

func TestResolve_NegativeOrigins(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
		{ID: 1, X: -1280, Y: -200, Width: 1280, Height: 1024},
	}

	got, err := Resolve(Rect{X: -1000, Y: 0, Width: 300, Height: 200}, monitors)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Monitor.ID != 1 {
		t.Fatalf("monitor: got %d, want 1", got.Monitor.ID)
	}
	if got.RelX != 280 || got.RelY != 200 {
		t.Errorf("rel: got (%d,%d), want (280,200)", got.RelX, got.RelY)
	}

	abs := got.Absolute()
	if abs.X != -1000 || abs.Y != 0 {
		t.Errorf("absolute origin: got (%d,%d), want (-1000,0)", abs.X, abs.Y)
	}
}

func TestResolve_StartsLeftOfMonitorIsPulledToEdge(t *testing.T) {
	monitors := []Monitor{{ID: 3, X: 100, Y: 100, Width: 400, Height: 300}}

	got, err := Resolve(Rect{X: 50, Y: 80, Width: 200, Height: 100}, monitors)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.RelX != 0 || got.RelY != 0 {
		t.Errorf("rel: got (%d,%d), want (0,0)", got.RelX, got.RelY)
	}
	// Requested size is kept, not reduced by the off-monitor part.
	if got.Width != 200 || got.Height != 100 {
		t.Errorf("size: got %dx%d, want 200x100", got.Width, got.Height)
	}
}

func TestResolve_ZeroSizeFallsBackToContainment(t *testing.T) {
	got, err := Resolve(Rect{X: 2000, Y: 10, Width: 0, Height: 0}, dualMonitors())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Monitor.ID != 1 {
		t.Errorf("monitor: got %d, want 1", got.Monitor.ID)
	}
	if got.RelX != 80 || got.RelY != 10 {
		t.Errorf("rel: got (%d,%d), want (80,10)", got.RelX, got.RelY)
	}
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("size: got %dx%d, want 0x0", got.Width, got.Height)
	}
}

func TestResolve_NegativeSizeIsFloored(t *testing.T) {
	got, err := Resolve(Rect{X: 10, Y: 10, Width: -50, Height: -50}, dualMonitors())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("size: got %dx%d, want 0x0", got.Width, got.Height)
	}
}

func TestResolve_MissingGeometry(t *testing.T) {
	monitors := []Monitor{
		{ID: 0},
		{ID: 1, X: 0, Y: 0, Width: 640, Height: 480},
	}

	got, err := Resolve(Rect{X: 0, Y: 0, Width: 10, Height: 10}, monitors)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.Monitor.ID != 1 {
		t.Errorf("monitor: got %d, want 1", got.Monitor.ID)
	}
}

func TestResolve_InvariantHolds(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
		{ID: 1, X: 1920, Y: -300, Width: 1080, Height: 1920},
		{ID: 2, X: -2560, Y: 0, Width: 2560, Height: 1440},
	}

	for x := -3000; x <= 3200; x += 173 {
		for y := -400; y <= 1700; y += 131 {
			req := Rect{X: x, Y: y, Width: 777, Height: 555}
			got, err := Resolve(req, monitors)
			if err != nil {
				continue
			}
			if got.RelX < 0 || got.RelY < 0 || got.Width < 0 || got.Height < 0 {
				t.Fatalf("negative result for %+v: %+v", req, got)
			}
			if got.RelX+got.Width > int(got.Monitor.Width) || got.RelY+got.Height > int(got.Monitor.Height) {
				t.Fatalf("result exceeds monitor for %+v: %+v", req, got)
			}
		}
	}
}

func TestOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want int
	}{
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, 0},
		{"touching edges", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, 0},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, 25},
		{"partial", Rect{0, 0, 1920, 1080}, Rect{1800, 0, 400, 400}, 48000},
		{"negative origin", Rect{-100, -100, 200, 200}, Rect{0, 0, 50, 50}, 2500},
		{"zero size", Rect{0, 0, 0, 0}, Rect{0, 0, 10, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapArea(tt.a, tt.b); got != tt.want {
				t.Errorf("OverlapArea: got %d, want %d", got, tt.want)
			}
			if got := OverlapArea(tt.b, tt.a); got != tt.want {
				t.Errorf("OverlapArea (swapped): got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: -10, Y: -10, Width: 20, Height: 20}

	tests := []struct {
		x, y int
		want bool
	}{
		{-10, -10, true},
		{0, 0, true},
		{9, 9, true},
		{10, 0, false},
		{0, 10, false},
		{-11, 0, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
