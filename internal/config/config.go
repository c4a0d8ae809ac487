package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
}

// Config holds the application configuration.
type Config struct {
	LabelsDir    string // label files relative to the image dir; "" keeps them alongside
	ClassesFile  string // overrides the classes.txt lookup
	DefaultClass int
	Autosave     bool // save labels when navigating away from an image
	Notify       Notify
	ClassColors  map[int]color.RGBA // per-class box color overrides
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Autosave:    true,
		ClassColors: make(map[int]color.RGBA),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.LabelsDir != "" {
		fmt.Fprintf(&sb, "labels_dir = %s\n", c.LabelsDir)
	}
	if c.ClassesFile != "" {
		fmt.Fprintf(&sb, "classes_file = %s\n", c.ClassesFile)
	}
	fmt.Fprintf(&sb, "default_class = %d\n", c.DefaultClass)
	fmt.Fprintf(&sb, "autosave = %v\n", c.Autosave)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)

	// Sort ids for deterministic output
	var ids []int
	for id := range c.ClassColors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(&sb, "\n[class.%d]\n", id)
		fmt.Fprintf(&sb, "color = %s\n", toHex(c.ClassColors[id]))
	}

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
