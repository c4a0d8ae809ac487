package yolo

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/example/yolomark/internal/annotation"
)

func TestEncodeKnownBox(t *testing.T) {
	set := annotation.NewSet(annotation.Box{
		Class: 2, MinX: 100, MinY: 100, MaxX: 300, MaxY: 400,
	})
	var buf bytes.Buffer
	if err := Encode(&buf, set, 800, 600); err != nil {
		t.Fatal(err)
	}
	want := "2 0.250000 0.416667 0.250000 0.500000\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestEncodeClampsOverhang(t *testing.T) {
	set := annotation.NewSet(annotation.Box{
		Class: 0, MinX: 700, MinY: 0, MaxX: 900, MaxY: 100,
	})
	var buf bytes.Buffer
	if err := Encode(&buf, set, 800, 600); err != nil {
		t.Fatal(err)
	}
	for _, f := range strings.Fields(buf.String())[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			t.Fatal(err)
		}
		if v < 0 || v > 1 {
			t.Errorf("field %s out of range", f)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	in := "2 0.250000 0.416667 0.250000 0.500000\n"
	boxes, bad, err := Decode(strings.NewReader(in), 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(bad) != 0 {
		t.Fatalf("unexpected parse errors: %v", bad)
	}
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes", len(boxes))
	}
	b := boxes[0]
	const eps = 0.01
	if b.Class != 2 ||
		b.MinX < 100-eps || b.MinX > 100+eps ||
		b.MinY < 100-eps || b.MinY > 100+eps ||
		b.MaxX < 300-eps || b.MaxX > 300+eps ||
		b.MaxY < 400-eps || b.MaxY > 400+eps {
		t.Errorf("got %+v", b)
	}
}

func TestDecodeSkipsMalformed(t *testing.T) {
	in := strings.Join([]string{
		"0 0.5 0.5 0.2 0.2",
		"1 0.5 0.5 2.0 0.5",
		"not a label",
		"2 0.5",
		"",
		"3 0.1 0.1 0.05 0.05",
	}, "\n")
	boxes, bad, err := Decode(strings.NewReader(in), 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(boxes))
	}
	if boxes[0].Class != 0 || boxes[1].Class != 3 {
		t.Errorf("wrong survivors: %+v", boxes)
	}
	if len(bad) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(bad), bad)
	}
	if bad[0].Line != 2 || bad[1].Line != 3 || bad[2].Line != 4 {
		t.Errorf("wrong line numbers: %v", bad)
	}
}

func TestDecodeRejectsNegativeClass(t *testing.T) {
	_, bad, err := Decode(strings.NewReader("-1 0.5 0.5 0.2 0.2\n"), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(bad) != 1 {
		t.Fatalf("negative class accepted")
	}
}

func TestSaveFileDeletesWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.txt")
	set := annotation.NewSet(annotation.Box{Class: 1, MinX: 10, MinY: 10, MaxX: 50, MaxY: 50})
	if err := SaveFile(path, set, 100, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("label file not written: %v", err)
	}
	if err := SaveFile(path, annotation.NewSet(), 100, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty save left the label file behind")
	}
	// Deleting again must not fail.
	if err := SaveFile(path, annotation.NewSet(), 100, 100); err != nil {
		t.Errorf("second empty save: %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	set, bad, err := LoadFile(filepath.Join(t.TempDir(), "none.txt"), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 0 || len(bad) != 0 {
		t.Errorf("missing file gave %d boxes, %d errors", set.Len(), len(bad))
	}
}
