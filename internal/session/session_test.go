package session

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/yolomark/internal/annotation"
	"github.com/example/yolomark/internal/config"
)

func fakeDataset(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte{}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old := loadImage
	loadImage = func(string) (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 100, 80)), nil
	}
	t.Cleanup(func() { loadImage = old })
	return dir
}

func TestOpenSortsImagesOnly(t *testing.T) {
	dir := fakeDataset(t, "b.png", "a.jpg", "c.txt", "notes.md", "z.webp")
	s, err := Open(dir, config.New())
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if s.ImageName() != "a.jpg" {
		t.Errorf("first image = %s", s.ImageName())
	}
}

func TestOpenEmptyDir(t *testing.T) {
	if _, err := Open(t.TempDir(), config.New()); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestNavigationWraps(t *testing.T) {
	dir := fakeDataset(t, "a.png", "b.png", "c.png")
	s, err := Open(dir, config.New())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Prev(); err != nil {
		t.Fatal(err)
	}
	if s.ImageName() != "c.png" {
		t.Errorf("prev from first = %s, want c.png", s.ImageName())
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if s.ImageName() != "a.png" {
		t.Errorf("next from last = %s, want a.png", s.ImageName())
	}
}

func TestSingleImageNavigationIsNoop(t *testing.T) {
	dir := fakeDataset(t, "only.png")
	s, err := Open(dir, config.New())
	if err != nil {
		t.Fatal(err)
	}
	s.Set.Add(annotation.Box{Class: 1, MinX: 1, MinY: 1, MaxX: 2, MaxY: 2})
	s.MarkDirty()
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if s.Set.Len() != 1 {
		t.Error("navigation on single image reloaded the context")
	}
}

func TestAutosaveOnNavigate(t *testing.T) {
	dir := fakeDataset(t, "a.png", "b.png")
	s, err := Open(dir, config.New())
	if err != nil {
		t.Fatal(err)
	}
	s.Set.Add(annotation.Box{Class: 0, MinX: 10, MinY: 10, MaxX: 50, MaxY: 50})
	s.MarkDirty()
	labelA := s.LabelPath()
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(labelA); err != nil {
		t.Errorf("autosave did not write %s: %v", labelA, err)
	}
	// Coming back reloads the saved annotations.
	if err := s.Prev(); err != nil {
		t.Fatal(err)
	}
	if s.Set.Len() != 1 {
		t.Errorf("reloaded set has %d boxes", s.Set.Len())
	}
}

func TestNoAutosaveDiscardsEdits(t *testing.T) {
	cfg := config.New()
	cfg.Autosave = false
	dir := fakeDataset(t, "a.png", "b.png")
	s, err := Open(dir, cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.Set.Add(annotation.Box{Class: 0, MinX: 10, MinY: 10, MaxX: 50, MaxY: 50})
	s.MarkDirty()
	labelA := s.LabelPath()
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(labelA); !os.IsNotExist(err) {
		t.Error("edits saved despite autosave=false")
	}
}

func TestHistoryResetOnNavigate(t *testing.T) {
	dir := fakeDataset(t, "a.png", "b.png")
	s, err := Open(dir, config.New())
	if err != nil {
		t.Fatal(err)
	}
	s.Hist.Record(s.Set)
	s.Set.Add(annotation.Box{Class: 0, MinX: 1, MinY: 1, MaxX: 2, MaxY: 2})
	s.MarkDirty()
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if s.Hist.CanUndo() {
		t.Error("undo history leaked across images")
	}
}

func TestLabelPathInSeparateDir(t *testing.T) {
	cfg := config.New()
	cfg.LabelsDir = "labels"
	dir := fakeDataset(t, "a.png")
	s, err := Open(dir, cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "labels", "a.txt")
	if s.LabelPath() != want {
		t.Errorf("label path = %s, want %s", s.LabelPath(), want)
	}
	if fi, err := os.Stat(filepath.Join(dir, "labels")); err != nil || !fi.IsDir() {
		t.Error("labels dir not created")
	}
}

func TestGotoOutOfRange(t *testing.T) {
	dir := fakeDataset(t, "a.png")
	s, err := Open(dir, config.New())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Goto(5); err == nil {
		t.Error("Goto(5) succeeded on 1-image session")
	}
}
