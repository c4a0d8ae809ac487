package config

import (
	"image/color"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
labels_dir = labels
classes_file = /data/classes.txt
default_class = 3
autosave = false

[notify]
save = true
export = false

[class.0]
color = #FF8800

[class.7]
color = #00FF0080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.LabelsDir != "labels" {
		t.Errorf("Expected labels_dir 'labels', got '%s'", cfg.LabelsDir)
	}
	if cfg.ClassesFile != "/data/classes.txt" {
		t.Errorf("Expected classes_file '/data/classes.txt', got '%s'", cfg.ClassesFile)
	}
	if cfg.DefaultClass != 3 {
		t.Errorf("Expected default_class 3, got %d", cfg.DefaultClass)
	}
	if cfg.Autosave {
		t.Error("Expected autosave to be false")
	}
	if !cfg.Notify.Save {
		t.Error("Expected notify.save to be true")
	}
	if cfg.Notify.Export {
		t.Error("Expected notify.export to be false")
	}

	if got := cfg.ClassColors[0]; got != (color.RGBA{0xFF, 0x88, 0x00, 0xFF}) {
		t.Errorf("Unexpected class 0 color: %+v", got)
	}
	if got := cfg.ClassColors[7]; got != (color.RGBA{0x00, 0xFF, 0x00, 0x80}) {
		t.Errorf("Unexpected class 7 color: %+v", got)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !cfg.Autosave {
		t.Error("Expected autosave to default to true")
	}
	if cfg.DefaultClass != 0 {
		t.Errorf("Expected default_class 0, got %d", cfg.DefaultClass)
	}
}

func TestParseBadValues(t *testing.T) {
	cases := []string{
		"autosave = maybe\n",
		"default_class = -2\n",
		"[class.x]\ncolor = #FFFFFF\n",
		"[class.1]\ncolor = red\n",
	}
	for _, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `labels_dir = labels
default_class = 1
autosave = true

[notify]
save = true
export = true

[class.2]
color = #0000FF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.LabelsDir != cfg2.LabelsDir {
		t.Errorf("LabelsDir mismatch: %q vs %q", cfg.LabelsDir, cfg2.LabelsDir)
	}
	if cfg.DefaultClass != cfg2.DefaultClass {
		t.Errorf("DefaultClass mismatch: %d vs %d", cfg.DefaultClass, cfg2.DefaultClass)
	}
	if cfg.Autosave != cfg2.Autosave {
		t.Errorf("Autosave mismatch: %v vs %v", cfg.Autosave, cfg2.Autosave)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.ClassColors[2] != cfg2.ClassColors[2] {
		t.Errorf("Class color mismatch: %v vs %v", cfg.ClassColors[2], cfg2.ClassColors[2])
	}
}
