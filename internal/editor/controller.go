// Package editor implements the annotation editor: a state machine
// translating pointer and key input into box edits, and the shiny UI
// that hosts it. The state machine is pure so every interaction can be
// tested as a sequence of events without a window.
package editor

import (
	"github.com/example/yolomark/internal/annotation"
	"github.com/example/yolomark/internal/history"
	"github.com/example/yolomark/internal/viewport"
)

const (
	// minDrawSize discards accidental click-drags; a new box must be
	// at least this many image pixels on both axes.
	minDrawSize = 5
	// minBoxSize is the floor a resize cannot shrink a box below.
	minBoxSize = 10
	// handleGrab is the grab radius around a corner handle in window
	// pixels; it is divided by zoom before hit testing.
	handleGrab = 5
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeMoving
	ModeResizing
	ModePanning
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
)

// Cursor is the pointer affordance the UI should show.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorCrosshair
	CursorMove
	CursorResize
)

// Controller drives one image's editing session. All coordinates
// arriving from the UI are window coordinates; the controller converts
// through View and keeps boxes in image space.
type Controller struct {
	Set  *annotation.Set
	Hist *history.History
	View viewport.Transform

	ImgW, ImgH int

	// Selected is the index of the selected box, -1 for none.
	Selected int
	// Class is the id assigned to newly drawn boxes.
	Class int
	// DrawEnabled gates starting new boxes; move and resize of
	// existing boxes work regardless.
	DrawEnabled bool

	// OnEdit fires after every committed mutation of Set.
	OnEdit func()

	mode   Mode
	handle annotation.Handle

	draft    annotation.Box // live ghost while drawing, moving or resizing
	draftIdx int            // box being edited, -1 while drawing a new one

	pressIX, pressIY float64 // image coords at press
	pressSX, pressSY float64 // window coords at press
	startBox         annotation.Box
	lastSX, lastSY   float64
}

// New builds a controller over the given editing context.
func New(set *annotation.Set, hist *history.History, imgW, imgH int) *Controller {
	return &Controller{
		Set:         set,
		Hist:        hist,
		View:        viewport.NewTransform(),
		ImgW:        imgW,
		ImgH:        imgH,
		Selected:    -1,
		DrawEnabled: true,
		draftIdx:    -1,
	}
}

// Attach swaps in a new editing context after navigation. The view is
// left alone; the caller refits it if wanted.
func (c *Controller) Attach(set *annotation.Set, hist *history.History, imgW, imgH int) {
	c.Set = set
	c.Hist = hist
	c.ImgW = imgW
	c.ImgH = imgH
	c.Selected = -1
	c.mode = ModeIdle
	c.draftIdx = -1
}

func (c *Controller) Mode() Mode { return c.mode }

// Draft returns the ghost box shown during an active drag. hideIdx is
// the set index the renderer should suppress in favor of the ghost,
// or -1.
func (c *Controller) Draft() (box annotation.Box, hideIdx int, ok bool) {
	switch c.mode {
	case ModeDrawing, ModeMoving, ModeResizing:
		return c.draft, c.draftIdx, true
	}
	return annotation.Box{}, -1, false
}

func (c *Controller) tol() float64 { return handleGrab / c.View.Zoom }

// Press starts a gesture. Resize wins over move so a handle shared
// with a box interior is still grabbable; move wins over drawing a new
// box on top of an existing one.
func (c *Controller) Press(sx, sy float64, btn Button) {
	if c.mode != ModeIdle {
		return
	}
	c.pressSX, c.pressSY = sx, sy
	c.lastSX, c.lastSY = sx, sy

	if btn == ButtonMiddle {
		c.mode = ModePanning
		return
	}
	if btn != ButtonLeft {
		return
	}

	ix, iy := c.View.ToImage(sx, sy)
	c.pressIX, c.pressIY = ix, iy

	if i, h := c.Set.FindHandleAt(ix, iy, c.tol()); i >= 0 {
		b, _ := c.Set.At(i)
		c.mode = ModeResizing
		c.handle = h
		c.draftIdx = i
		c.startBox = b
		c.draft = b
		c.Selected = i
		return
	}
	if i := c.Set.FindAt(ix, iy); i >= 0 {
		b, _ := c.Set.At(i)
		c.mode = ModeMoving
		c.draftIdx = i
		c.startBox = b
		c.draft = b
		c.Selected = i
		return
	}
	if c.DrawEnabled {
		c.mode = ModeDrawing
		c.draftIdx = -1
		c.draft = annotation.Box{Class: c.Class, MinX: ix, MinY: iy, MaxX: ix, MaxY: iy}
		return
	}
	c.Selected = -1
}

// Move updates the active gesture with a new pointer position.
func (c *Controller) Move(sx, sy float64) {
	switch c.mode {
	case ModePanning:
		c.View = c.View.Pan(sx-c.lastSX, sy-c.lastSY)
	case ModeDrawing:
		ix, iy := c.View.ToImage(sx, sy)
		c.draft.MaxX, c.draft.MaxY = ix, iy
	case ModeMoving:
		ix, iy := c.View.ToImage(sx, sy)
		c.draft = c.translated(c.startBox, ix-c.pressIX, iy-c.pressIY)
	case ModeResizing:
		ix, iy := c.View.ToImage(sx, sy)
		next := c.startBox.MoveHandle(c.handle, ix, iy).Normalized().
			Clamped(float64(c.ImgW), float64(c.ImgH))
		if next.Width() >= minBoxSize && next.Height() >= minBoxSize {
			c.draft = next
		}
	}
	c.lastSX, c.lastSY = sx, sy
}

// Release ends the gesture, committing the edit when it survived the
// size checks. A click on a box that never moved selects it without
// recording history.
func (c *Controller) Release(sx, sy float64, btn Button) {
	if c.mode == ModePanning {
		if btn == ButtonMiddle {
			c.mode = ModeIdle
		}
		return
	}
	if btn != ButtonLeft || c.mode == ModeIdle {
		return
	}
	c.Move(sx, sy)

	switch c.mode {
	case ModeDrawing:
		b := c.draft.Normalized().Clamped(float64(c.ImgW), float64(c.ImgH))
		if b.Width() >= minDrawSize && b.Height() >= minDrawSize {
			c.commit(func() {
				c.Selected = c.Set.Add(b)
			})
		} else {
			c.Selected = -1
		}
	case ModeMoving, ModeResizing:
		if c.draft != c.startBox {
			idx := c.draftIdx
			b := c.draft
			c.commit(func() {
				c.Set.Update(idx, b)
			})
		}
	}
	c.mode = ModeIdle
	c.draftIdx = -1
}

// translated moves b by (dx, dy), stopping at the image border so a
// move never changes the box size.
func (c *Controller) translated(b annotation.Box, dx, dy float64) annotation.Box {
	if dx < -b.MinX {
		dx = -b.MinX
	}
	if max := float64(c.ImgW) - b.MaxX; dx > max {
		dx = max
	}
	if dy < -b.MinY {
		dy = -b.MinY
	}
	if max := float64(c.ImgH) - b.MaxY; dy > max {
		dy = max
	}
	return b.Translated(dx, dy)
}

// commit snapshots the pre-edit state, applies fn and reports the edit.
func (c *Controller) commit(fn func()) {
	c.Hist.Record(c.Set)
	fn()
	if c.OnEdit != nil {
		c.OnEdit()
	}
}

// DeleteSelected removes the selected box.
func (c *Controller) DeleteSelected() bool {
	if c.Selected < 0 {
		return false
	}
	idx := c.Selected
	c.commit(func() {
		c.Set.Remove(idx)
	})
	c.Selected = -1
	return true
}

// SetClass changes the class for new boxes and retags the selected
// box if there is one.
func (c *Controller) SetClass(id int) {
	if id < 0 {
		return
	}
	c.Class = id
	if c.Selected < 0 {
		return
	}
	b, ok := c.Set.At(c.Selected)
	if !ok || b.Class == id {
		return
	}
	idx := c.Selected
	c.commit(func() {
		b.Class = id
		c.Set.Update(idx, b)
	})
}

// Undo rolls back the latest edit. The selection is dropped because
// its index may no longer point at the same box.
func (c *Controller) Undo() bool {
	s, ok := c.Hist.Undo(c.Set)
	if !ok {
		return false
	}
	c.Set = s
	c.Selected = -1
	if c.OnEdit != nil {
		c.OnEdit()
	}
	return true
}

// Redo reapplies the last undone edit.
func (c *Controller) Redo() bool {
	s, ok := c.Hist.Redo(c.Set)
	if !ok {
		return false
	}
	c.Set = s
	c.Selected = -1
	if c.OnEdit != nil {
		c.OnEdit()
	}
	return true
}

// ToggleDraw flips drawing mode and reports the new state.
func (c *Controller) ToggleDraw() bool {
	c.DrawEnabled = !c.DrawEnabled
	return c.DrawEnabled
}

// Fit refits the whole image into the window.
func (c *Controller) Fit(viewW, viewH int) {
	c.View = viewport.Fit(c.ImgW, c.ImgH, viewW, viewH)
}

// ResetZoom returns to 1:1 with the image centered.
func (c *Controller) ResetZoom(viewW, viewH int) {
	c.View = viewport.Reset(c.ImgW, c.ImgH, viewW, viewH)
}

// Zoom applies one wheel step at the pointer. in=false zooms out.
func (c *Controller) Zoom(sx, sy float64, in bool) {
	f := viewport.ZoomStep
	if !in {
		f = 1 / viewport.ZoomStep
	}
	c.View = c.View.ZoomAt(sx, sy, f)
}

// Hover reports the cursor to show for the pointer at rest.
func (c *Controller) Hover(sx, sy float64) Cursor {
	if c.mode == ModePanning {
		return CursorMove
	}
	ix, iy := c.View.ToImage(sx, sy)
	if i, _ := c.Set.FindHandleAt(ix, iy, c.tol()); i >= 0 {
		return CursorResize
	}
	if c.Set.FindAt(ix, iy) >= 0 {
		return CursorMove
	}
	if c.DrawEnabled {
		return CursorCrosshair
	}
	return CursorArrow
}
