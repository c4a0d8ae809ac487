// Package viewport maps between image pixel coordinates and window
// coordinates under zoom and pan. Annotations never leave image space;
// every pointer event is pushed through the inverse transform instead.
package viewport

import "math"

const (
	// ZoomStep is the multiplier applied per wheel notch.
	ZoomStep = 1.15
	MinZoom  = 0.05
	MaxZoom  = 32.0
)

// Transform describes the current view of an image inside a window.
// Offset is stored in image coordinates so it is independent of zoom.
type Transform struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// NewTransform returns an identity view.
func NewTransform() Transform {
	return Transform{Zoom: 1}
}

// ToScreen converts an image point to window coordinates.
func (t Transform) ToScreen(ix, iy float64) (float64, float64) {
	return (ix + t.OffsetX) * t.Zoom, (iy + t.OffsetY) * t.Zoom
}

// ToImage converts a window point to image coordinates. It is the
// exact inverse of ToScreen for any zoom and offset.
func (t Transform) ToImage(sx, sy float64) (float64, float64) {
	return sx/t.Zoom - t.OffsetX, sy/t.Zoom - t.OffsetY
}

// Fit returns a transform that shows the whole image centered in a
// viewW x viewH window, shrinking or enlarging as needed.
func Fit(imgW, imgH, viewW, viewH int) Transform {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return NewTransform()
	}
	zoom := math.Min(float64(viewW)/float64(imgW), float64(viewH)/float64(imgH))
	zoom = clampZoom(zoom)
	return Transform{
		Zoom:    zoom,
		OffsetX: (float64(viewW)/zoom - float64(imgW)) / 2,
		OffsetY: (float64(viewH)/zoom - float64(imgH)) / 2,
	}
}

// Reset returns a 1:1 transform with the image centered.
func Reset(imgW, imgH, viewW, viewH int) Transform {
	return Transform{
		Zoom:    1,
		OffsetX: float64(viewW-imgW) / 2,
		OffsetY: float64(viewH-imgH) / 2,
	}
}

// ZoomAt scales the zoom by factor while keeping the image point under
// the window point (sx, sy) stationary. The zoom level is clamped to
// [MinZoom, MaxZoom]; at the limits the view does not move.
func (t Transform) ZoomAt(sx, sy, factor float64) Transform {
	nz := clampZoom(t.Zoom * factor)
	if nz == t.Zoom {
		return t
	}
	ix, iy := t.ToImage(sx, sy)
	t.Zoom = nz
	t.OffsetX = sx/nz - ix
	t.OffsetY = sy/nz - iy
	return t
}

// Pan shifts the view by a window-space delta. Panning is not clamped;
// the image may be pushed fully out of view and brought back.
func (t Transform) Pan(dx, dy float64) Transform {
	t.OffsetX += dx / t.Zoom
	t.OffsetY += dy / t.Zoom
	return t
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
