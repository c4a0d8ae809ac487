package editor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/yolomark/internal/annotation"
	"github.com/example/yolomark/internal/classes"
)

const (
	statusHeight = 22
	handleSize   = 8
	boxThickness = 2
)

var (
	backdropColor  = color.RGBA{40, 40, 40, 255}
	statusBarColor = color.RGBA{28, 28, 28, 255}
	statusTextCol  = color.RGBA{230, 230, 230, 255}
	selectionWhite = color.RGBA{255, 255, 255, 255}
)

// frameState is everything one repaint needs, captured so the paint
// path never races the event loop.
type frameState struct {
	width, height int
	img           *image.RGBA
	boxes         []annotation.Box
	selected      int
	draft         *annotation.Box
	hideIdx       int
	view          viewTransform
	reg           *classes.Registry
	showLabels    bool
	status        string
}

// viewTransform is the subset of the viewport the renderer needs.
type viewTransform interface {
	ToScreen(ix, iy float64) (float64, float64)
}

// renderFrame composes one frame into dst: backdrop, scaled image,
// boxes, the drag ghost, selection handles and the status bar.
func renderFrame(dst *image.RGBA, st frameState) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{backdropColor}, image.Point{}, draw.Src)

	ib := st.img.Bounds()
	x0, y0 := st.view.ToScreen(0, 0)
	x1, y1 := st.view.ToScreen(float64(ib.Dx()), float64(ib.Dy()))
	target := image.Rect(int(x0), int(y0), int(x1), int(y1))
	xdraw.NearestNeighbor.Scale(dst, target, st.img, ib, draw.Over, nil)

	for i, b := range st.boxes {
		if i == st.hideIdx {
			continue
		}
		drawAnnotation(dst, st, b, i == st.selected)
	}
	if st.draft != nil {
		drawAnnotation(dst, st, *st.draft, true)
	}

	drawStatusBar(dst, st)
}

func drawAnnotation(dst *image.RGBA, st frameState, b annotation.Box, selected bool) {
	b = b.Normalized()
	col := st.reg.Color(b.Class)
	r := screenRect(st.view, b)

	drawRectOutline(dst, r, col, boxThickness)
	if selected {
		drawRectOutline(dst, r.Inset(-boxThickness), selectionWhite, 1)
		for _, hr := range handleRects(r) {
			draw.Draw(dst, hr, &image.Uniform{selectionWhite}, image.Point{}, draw.Src)
			drawRectOutline(dst, hr, col, 1)
		}
	}
	if st.showLabels {
		drawTag(dst, r, st.reg.Name(b.Class), col)
	}
}

func screenRect(v viewTransform, b annotation.Box) image.Rectangle {
	x0, y0 := v.ToScreen(b.MinX, b.MinY)
	x1, y1 := v.ToScreen(b.MaxX, b.MaxY)
	return image.Rect(int(x0), int(y0), int(x1), int(y1))
}

// handleRects returns the four corner handle squares for a screen
// rect, matching the grab targets the controller hit-tests.
func handleRects(r image.Rectangle) []image.Rectangle {
	hs := handleSize / 2
	return []image.Rectangle{
		image.Rect(r.Min.X-hs, r.Min.Y-hs, r.Min.X+hs, r.Min.Y+hs),
		image.Rect(r.Max.X-hs, r.Min.Y-hs, r.Max.X+hs, r.Min.Y+hs),
		image.Rect(r.Min.X-hs, r.Max.Y-hs, r.Min.X+hs, r.Max.Y+hs),
		image.Rect(r.Max.X-hs, r.Max.Y-hs, r.Max.X+hs, r.Max.Y+hs),
	}
}

func drawTag(dst *image.RGBA, r image.Rectangle, label string, col color.RGBA) {
	d := &font.Drawer{Face: basicfont.Face7x13}
	tw := d.MeasureString(label).Ceil()
	th := basicfont.Face7x13.Metrics().Height.Ceil()

	tag := image.Rect(r.Min.X, r.Min.Y-th-4, r.Min.X+tw+8, r.Min.Y)
	if tag.Min.Y < 0 {
		tag = tag.Add(image.Pt(0, th+4))
	}
	draw.Draw(dst, tag, &image.Uniform{col}, image.Point{}, draw.Src)

	d.Dst = dst
	d.Src = &image.Uniform{tagText(col)}
	d.Dot = fixed.P(tag.Min.X+4, tag.Max.Y-4)
	d.DrawString(label)
}

func tagText(c color.RGBA) color.Color {
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if luma > 140 {
		return color.Black
	}
	return color.White
}

func drawStatusBar(dst *image.RGBA, st frameState) {
	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, bar, &image.Uniform{statusBarColor}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{statusTextCol},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(6, st.height-7),
	}
	d.DrawString(st.status)
}

func drawRectOutline(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	if thick <= 1 {
		if image.Pt(x, y).In(img.Bounds()) {
			img.Set(x, y, col)
		}
		return
	}
	half := thick / 2
	for oy := -half; oy <= half; oy++ {
		for ox := -half; ox <= half; ox++ {
			p := image.Pt(x+ox, y+oy)
			if p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// statusLine formats the bottom bar text.
func statusLine(name string, idx, total int, className string, classID int, zoom float64, dirty, drawEnabled bool) string {
	mark := ""
	if dirty {
		mark = " *"
	}
	mode := "draw"
	if !drawEnabled {
		mode = "select"
	}
	return fmt.Sprintf("%s%s  [%d/%d]  class %d:%s  zoom %.0f%%  %s",
		name, mark, idx+1, total, classID, className, zoom*100, mode)
}
