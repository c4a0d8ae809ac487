package viewport

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRoundTrip(t *testing.T) {
	tr := Transform{Zoom: 2.5, OffsetX: -37.2, OffsetY: 14.8}
	for _, p := range [][2]float64{{0, 0}, {123.4, 56.7}, {-10, 900}} {
		sx, sy := tr.ToScreen(p[0], p[1])
		ix, iy := tr.ToImage(sx, sy)
		if !almost(ix, p[0]) || !almost(iy, p[1]) {
			t.Errorf("round trip of %v gave (%v, %v)", p, ix, iy)
		}
	}
}

func TestFitCentersImage(t *testing.T) {
	// 800x600 image in a 400x400 window: zoom 0.5, letterboxed
	// vertically.
	tr := Fit(800, 600, 400, 400)
	if !almost(tr.Zoom, 0.5) {
		t.Fatalf("zoom = %v", tr.Zoom)
	}
	sx, sy := tr.ToScreen(0, 0)
	if !almost(sx, 0) || !almost(sy, 50) {
		t.Errorf("origin at (%v, %v), want (0, 50)", sx, sy)
	}
	sx, sy = tr.ToScreen(800, 600)
	if !almost(sx, 400) || !almost(sy, 350) {
		t.Errorf("far corner at (%v, %v), want (400, 350)", sx, sy)
	}
}

func TestFitEnlargesSmallImage(t *testing.T) {
	tr := Fit(100, 100, 400, 400)
	if !almost(tr.Zoom, 4) {
		t.Errorf("zoom = %v, want 4", tr.Zoom)
	}
}

func TestFitDegenerateInput(t *testing.T) {
	tr := Fit(0, 0, 400, 400)
	if tr.Zoom != 1 {
		t.Errorf("zoom = %v, want identity", tr.Zoom)
	}
}

func TestZoomAtAnchorsPointer(t *testing.T) {
	tr := Fit(800, 600, 400, 400)
	ix, iy := tr.ToImage(250, 130)
	for i := 0; i < 6; i++ {
		tr = tr.ZoomAt(250, 130, ZoomStep)
	}
	sx, sy := tr.ToScreen(ix, iy)
	if !almost(sx, 250) || !almost(sy, 130) {
		t.Errorf("anchor drifted to (%v, %v)", sx, sy)
	}
}

func TestZoomClamped(t *testing.T) {
	tr := NewTransform()
	for i := 0; i < 100; i++ {
		tr = tr.ZoomAt(0, 0, ZoomStep)
	}
	if tr.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want %v", tr.Zoom, MaxZoom)
	}
	for i := 0; i < 100; i++ {
		tr = tr.ZoomAt(0, 0, 1/ZoomStep)
	}
	if tr.Zoom != MinZoom {
		t.Errorf("zoom = %v, want %v", tr.Zoom, MinZoom)
	}
}

func TestPanIsZoomIndependent(t *testing.T) {
	tr := Transform{Zoom: 2}
	tr = tr.Pan(100, -40)
	sx, sy := tr.ToScreen(0, 0)
	if !almost(sx, 100) || !almost(sy, -40) {
		t.Errorf("origin at (%v, %v) after pan", sx, sy)
	}
	// Zooming around the window origin must keep the image origin
	// pinned there, pan included.
	tr = tr.ZoomAt(100, -40, 2)
	sx, sy = tr.ToScreen(0, 0)
	if !almost(sx, 100) || !almost(sy, -40) {
		t.Errorf("origin moved to (%v, %v) after zoom", sx, sy)
	}
}
