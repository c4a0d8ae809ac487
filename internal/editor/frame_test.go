package editor

import (
	"image"
	"testing"

	"github.com/example/yolomark/internal/annotation"
	"github.com/example/yolomark/internal/classes"
	"github.com/example/yolomark/internal/viewport"
)

func TestRenderFrameDrawsBox(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	st := frameState{
		width:  200,
		height: 200,
		img:    img,
		boxes: []annotation.Box{
			{Class: 0, MinX: 20, MinY: 20, MaxX: 80, MaxY: 80},
		},
		selected: -1,
		hideIdx:  -1,
		view:     viewport.NewTransform(),
		reg:      classes.NewRegistry(),
		status:   "test",
	}
	renderFrame(dst, st)

	// Left edge of the box is green, interior keeps the backdrop.
	c := dst.RGBAAt(20, 50)
	if c.G < 200 || c.R > 80 {
		t.Errorf("edge pixel = %+v, want green", c)
	}
	in := dst.RGBAAt(50, 50)
	if in.G > 100 {
		t.Errorf("interior pixel = %+v, want backdrop", in)
	}
	// Status bar covers the bottom strip.
	bar := dst.RGBAAt(5, 195)
	if bar != statusBarColor {
		t.Errorf("status bar pixel = %+v", bar)
	}
}

func TestRenderFrameHidesDraftOriginal(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draft := annotation.Box{Class: 0, MinX: 120, MinY: 20, MaxX: 180, MaxY: 80}
	st := frameState{
		width:  200,
		height: 200,
		img:    img,
		boxes: []annotation.Box{
			{Class: 0, MinX: 20, MinY: 20, MaxX: 80, MaxY: 80},
		},
		selected: 0,
		draft:    &draft,
		hideIdx:  0,
		view:     viewport.NewTransform(),
		reg:      classes.NewRegistry(),
	}
	renderFrame(dst, st)

	// Original spot shows the backdrop, the ghost shows the box.
	if c := dst.RGBAAt(20, 50); c.G > 100 {
		t.Errorf("hidden original still drawn: %+v", c)
	}
	if c := dst.RGBAAt(120, 50); c.G < 200 {
		t.Errorf("ghost missing: %+v", c)
	}
}

func TestStatusLine(t *testing.T) {
	got := statusLine("img01.png", 2, 10, "person", 0, 1.5, true, true)
	want := "img01.png *  [3/10]  class 0:person  zoom 150%  draw"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
