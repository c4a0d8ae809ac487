// Package session owns the dataset being annotated: the sorted image
// list, the current position in it, and the live annotation state for
// the open image. Navigation swaps the whole editing context at once
// so a half-loaded state is never observable.
package session

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/yolomark/internal/annotation"
	"github.com/example/yolomark/internal/config"
	"github.com/example/yolomark/internal/history"
	"github.com/example/yolomark/internal/imageio"
	"github.com/example/yolomark/internal/yolo"
)

// loadImage is swapped out in tests.
var loadImage = imageio.Load

// Session is the open dataset directory plus the editing context for
// the current image.
type Session struct {
	Dir       string
	LabelsDir string // where label files live; defaults to Dir

	files []string // sorted base names
	idx   int

	Img  *image.RGBA
	Set  *annotation.Set
	Hist *history.History

	Autosave bool
	dirty    bool
}

// Open scans dir for images and loads the first one. An empty
// directory is an error; there is nothing to annotate.
func Open(dir string, cfg *config.Config) (*Session, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImage(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images in %s", dir)
	}
	sort.Strings(files)

	labelsDir := dir
	if cfg.LabelsDir != "" {
		if filepath.IsAbs(cfg.LabelsDir) {
			labelsDir = cfg.LabelsDir
		} else {
			labelsDir = filepath.Join(dir, cfg.LabelsDir)
		}
		if err := os.MkdirAll(labelsDir, 0o755); err != nil {
			return nil, fmt.Errorf("labels dir: %w", err)
		}
	}

	s := &Session{
		Dir:       dir,
		LabelsDir: labelsDir,
		files:     files,
		Autosave:  cfg.Autosave,
		Hist:      history.New(),
	}
	if err := s.load(0); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Len() int   { return len(s.files) }
func (s *Session) Index() int { return s.idx }

// ImagePath returns the path of the current image.
func (s *Session) ImagePath() string {
	return filepath.Join(s.Dir, s.files[s.idx])
}

// ImageName returns the base name of the current image.
func (s *Session) ImageName() string { return s.files[s.idx] }

// LabelPath returns the label file path for the current image.
func (s *Session) LabelPath() string {
	return LabelPath(s.LabelsDir, s.files[s.idx])
}

// LabelPath maps an image base name to its label file in labelsDir.
func LabelPath(labelsDir, imageName string) string {
	stem := strings.TrimSuffix(imageName, filepath.Ext(imageName))
	return filepath.Join(labelsDir, stem+".txt")
}

// ClassesPath returns the classes.txt location for the dataset,
// honoring a config override.
func ClassesPath(dir string, cfg *config.Config) string {
	if cfg.ClassesFile != "" {
		return cfg.ClassesFile
	}
	return filepath.Join(dir, "classes.txt")
}

// Dirty reports whether the current set has unsaved edits.
func (s *Session) Dirty() bool { return s.dirty }

// MarkDirty flags the current set as edited.
func (s *Session) MarkDirty() { s.dirty = true }

// Save writes the current set to its label file. An empty set removes
// the file.
func (s *Session) Save() error {
	b := s.Img.Bounds()
	if err := yolo.SaveFile(s.LabelPath(), s.Set, b.Dx(), b.Dy()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Next advances to the next image, wrapping at the end.
func (s *Session) Next() error { return s.step(1) }

// Prev moves to the previous image, wrapping at the start.
func (s *Session) Prev() error { return s.step(-1) }

// Goto jumps to the image at index i.
func (s *Session) Goto(i int) error {
	if i < 0 || i >= len(s.files) {
		return fmt.Errorf("image index %d out of range", i)
	}
	if i == s.idx {
		return nil
	}
	if err := s.flush(); err != nil {
		return err
	}
	return s.load(i)
}

func (s *Session) step(d int) error {
	if len(s.files) == 1 {
		return nil
	}
	if err := s.flush(); err != nil {
		return err
	}
	n := len(s.files)
	return s.load(((s.idx+d)%n + n) % n)
}

func (s *Session) flush() error {
	if !s.dirty {
		return nil
	}
	if !s.Autosave {
		s.dirty = false
		return nil
	}
	return s.Save()
}

// load replaces the whole editing context. On failure the previous
// context is left untouched.
func (s *Session) load(i int) error {
	name := s.files[i]
	img, err := loadImage(filepath.Join(s.Dir, name))
	if err != nil {
		return err
	}
	b := img.Bounds()
	set, bad, err := yolo.LoadFile(LabelPath(s.LabelsDir, name), b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	for _, pe := range bad {
		log.Printf("%s: skipping %v", LabelPath(s.LabelsDir, name), pe)
	}

	s.idx = i
	s.Img = img
	s.Set = set
	s.Hist.Reset()
	s.dirty = false
	return nil
}
