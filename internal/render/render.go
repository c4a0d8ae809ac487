// Package render rasterizes an annotated image to a standalone
// picture: the source bitmap with boxes and class labels burned in.
// Used by the render subcommand and clipboard export.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/example/yolomark/internal/annotation"
	"github.com/example/yolomark/internal/classes"
)

const (
	lineWidth = 2.0
	fontSize  = 13.0
	labelPad  = 3.0
)

// Options controls the rendered output.
type Options struct {
	// HideLabels suppresses the class name tags above each box.
	HideLabels bool
	// Scale resizes the output; 0 or 1 keeps the source size.
	Scale float64
}

// Annotated draws the set over img and returns the composed picture.
func Annotated(img image.Image, set *annotation.Set, reg *classes.Registry, opts Options) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("render: empty image")
	}

	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, box := range set.Boxes() {
		drawBox(dc, box, reg, opts.HideLabels)
	}

	out := dc.Image()
	if opts.Scale > 0 && opts.Scale != 1 {
		w := int(float64(b.Dx())*opts.Scale + 0.5)
		h := int(float64(b.Dy())*opts.Scale + 0.5)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("render: scale %v collapses the image", opts.Scale)
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}
	return out, nil
}

func drawBox(dc *gg.Context, box annotation.Box, reg *classes.Registry, hideLabel bool) {
	box = box.Normalized()
	col := reg.Color(box.Class)

	dc.SetLineWidth(lineWidth)
	dc.SetColor(col)
	dc.DrawRectangle(box.MinX, box.MinY, box.Width(), box.Height())
	dc.Stroke()

	if hideLabel {
		return
	}
	label := reg.Name(box.Class)
	tw, th := dc.MeasureString(label)

	// Tag sits above the box, or inside the top edge when the box
	// touches the image border.
	tagY := box.MinY - th - 2*labelPad
	if tagY < 0 {
		tagY = box.MinY
	}
	dc.SetColor(col)
	dc.DrawRectangle(box.MinX, tagY, tw+2*labelPad, th+2*labelPad)
	dc.Fill()
	dc.SetColor(labelTextColor(col))
	dc.DrawString(label, box.MinX+labelPad, tagY+th+labelPad-1)
}

// labelTextColor picks black or white for legibility on the tag fill.
func labelTextColor(c color.RGBA) color.Color {
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if luma > 140 {
		return color.Black
	}
	return color.White
}
