// Package annotation holds the bounding boxes attached to an image and
// the geometry queries the editor performs on them. Coordinates are in
// image space so boxes survive zooming and panning unchanged.
package annotation

import "math"

// Handle identifies a corner of a box grabbed for resizing.
type Handle int

const (
	HandleNone Handle = iota
	HandleTL
	HandleTR
	HandleBL
	HandleBR
)

// Box is an axis-aligned rectangle in image pixel coordinates with an
// integer class id. Min/Max are kept ordered; use Normalized after
// constructing a box from two arbitrary drag points.
type Box struct {
	Class int
	MinX  float64
	MinY  float64
	MaxX  float64
	MaxY  float64
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Normalized returns b with Min/Max swapped where needed so that
// MinX <= MaxX and MinY <= MaxY.
func (b Box) Normalized() Box {
	if b.MinX > b.MaxX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}
	if b.MinY > b.MaxY {
		b.MinY, b.MaxY = b.MaxY, b.MinY
	}
	return b
}

// Clamped restricts b to the image bounds w x h.
func (b Box) Clamped(w, h float64) Box {
	b.MinX = clamp(b.MinX, 0, w)
	b.MaxX = clamp(b.MaxX, 0, w)
	b.MinY = clamp(b.MinY, 0, h)
	b.MaxY = clamp(b.MaxY, 0, h)
	return b
}

// Contains reports whether the point (x, y) lies inside the box,
// borders included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// HandleAt returns the corner handle within tol of (x, y), or
// HandleNone. tol is in image pixels; the caller divides the on-screen
// grab radius by the zoom factor so handles feel the same size at any
// magnification.
func (b Box) HandleAt(x, y, tol float64) Handle {
	type corner struct {
		h    Handle
		x, y float64
	}
	for _, c := range []corner{
		{HandleTL, b.MinX, b.MinY},
		{HandleTR, b.MaxX, b.MinY},
		{HandleBL, b.MinX, b.MaxY},
		{HandleBR, b.MaxX, b.MaxY},
	} {
		if math.Abs(x-c.x) <= tol && math.Abs(y-c.y) <= tol {
			return c.h
		}
	}
	return HandleNone
}

// MoveHandle returns b with the given corner moved to (x, y). The
// result may be inverted; callers normalize after the drag.
func (b Box) MoveHandle(h Handle, x, y float64) Box {
	switch h {
	case HandleTL:
		b.MinX, b.MinY = x, y
	case HandleTR:
		b.MaxX, b.MinY = x, y
	case HandleBL:
		b.MinX, b.MaxY = x, y
	case HandleBR:
		b.MaxX, b.MaxY = x, y
	}
	return b
}

// Translated returns b shifted by (dx, dy).
func (b Box) Translated(dx, dy float64) Box {
	b.MinX += dx
	b.MaxX += dx
	b.MinY += dy
	b.MaxY += dy
	return b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
