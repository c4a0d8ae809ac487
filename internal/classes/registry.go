// Package classes maps YOLO class ids to display names and colors.
// Names come from a classes.txt next to the dataset; colors come from
// a fixed palette unless overridden in the config.
package classes

import (
	"fmt"
	"image/color"
	"sort"
)

func fallbackName(id int) string { return fmt.Sprintf("class_%d", id) }

// palette is cycled by class id for boxes without a configured color.
var palette = []color.RGBA{
	{0, 255, 0, 255},   // green
	{255, 0, 0, 255},   // red
	{0, 0, 255, 255},   // blue
	{255, 255, 0, 255}, // yellow
	{255, 0, 255, 255}, // magenta
	{0, 255, 255, 255}, // cyan
	{255, 165, 0, 255}, // orange
	{128, 0, 128, 255}, // purple
}

// Registry holds the known class names and any color overrides. Ids
// outside the registry are still usable; they get a generated name and
// a palette color so labels from a bigger dataset never break display.
type Registry struct {
	names  map[int]string
	colors map[int]color.RGBA
}

func NewRegistry() *Registry {
	return &Registry{
		names:  make(map[int]string),
		colors: make(map[int]color.RGBA),
	}
}

// Name returns the display name for id, or "class_N" when unknown.
func (r *Registry) Name(id int) string {
	if n, ok := r.names[id]; ok {
		return n
	}
	return fallbackName(id)
}

// Known reports whether id has a declared name.
func (r *Registry) Known(id int) bool {
	_, ok := r.names[id]
	return ok
}

// Color returns the box color for id: a configured override if set,
// otherwise the palette color for id modulo the palette size.
func (r *Registry) Color(id int) color.RGBA {
	if c, ok := r.colors[id]; ok {
		return c
	}
	i := id % len(palette)
	if i < 0 {
		i += len(palette)
	}
	return palette[i]
}

func (r *Registry) SetName(id int, name string) { r.names[id] = name }

func (r *Registry) SetColor(id int, c color.RGBA) { r.colors[id] = c }

// IDs returns the declared class ids in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.names))
	for id := range r.names {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (r *Registry) Len() int { return len(r.names) }
