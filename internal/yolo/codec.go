// Package yolo reads and writes YOLO label files. Each line holds one
// box as "class cx cy w h" with center and size normalized to the
// image dimensions in [0, 1].
package yolo

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/yolomark/internal/annotation"
)

// ParseError describes one rejected label line. Decoding skips bad
// lines instead of failing the whole file so a stray line cannot make
// an annotation set unreachable.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Encode writes the set to w in YOLO format, one line per box in draw
// order. Coordinates are clamped to [0, 1] so an edit that nudged a
// box past the border still round-trips.
func Encode(w io.Writer, set *annotation.Set, imgW, imgH int) error {
	if imgW <= 0 || imgH <= 0 {
		return fmt.Errorf("encode: invalid image size %dx%d", imgW, imgH)
	}
	bw := bufio.NewWriter(w)
	for _, b := range set.Boxes() {
		b = b.Normalized()
		cx := clamp01((b.MinX + b.MaxX) / 2 / float64(imgW))
		cy := clamp01((b.MinY + b.MaxY) / 2 / float64(imgH))
		nw := clamp01(b.Width() / float64(imgW))
		nh := clamp01(b.Height() / float64(imgH))
		if _, err := fmt.Fprintf(bw, "%d %.6f %.6f %.6f %.6f\n", b.Class, cx, cy, nw, nh); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses YOLO lines from r into image-space boxes for an
// imgW x imgH image. Malformed lines are reported and skipped; the
// returned boxes are everything that parsed cleanly.
func Decode(r io.Reader, imgW, imgH int) ([]annotation.Box, []*ParseError, error) {
	if imgW <= 0 || imgH <= 0 {
		return nil, nil, fmt.Errorf("decode: invalid image size %dx%d", imgW, imgH)
	}
	var (
		boxes []annotation.Box
		bad   []*ParseError
	)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		b, err := parseLine(line, n, imgW, imgH)
		if err != nil {
			bad = append(bad, err)
			continue
		}
		boxes = append(boxes, b)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	return boxes, bad, nil
}

func parseLine(line string, n, imgW, imgH int) (annotation.Box, *ParseError) {
	fail := func(msg string) (annotation.Box, *ParseError) {
		return annotation.Box{}, &ParseError{Line: n, Text: line, Msg: msg}
	}
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return fail(fmt.Sprintf("want 5 fields, got %d", len(fields)))
	}
	class, err := strconv.Atoi(fields[0])
	if err != nil || class < 0 {
		return fail("bad class id")
	}
	var v [4]float64
	for i, f := range fields[1:] {
		v[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return fail("bad coordinate")
		}
		if v[i] < 0 || v[i] > 1 {
			return fail("coordinate out of range")
		}
	}
	cx, cy, w, h := v[0], v[1], v[2], v[3]
	b := annotation.Box{
		Class: class,
		MinX:  (cx - w/2) * float64(imgW),
		MinY:  (cy - h/2) * float64(imgH),
		MaxX:  (cx + w/2) * float64(imgW),
		MaxY:  (cy + h/2) * float64(imgH),
	}
	return b.Clamped(float64(imgW), float64(imgH)), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
