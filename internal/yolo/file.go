package yolo

import (
	"bytes"
	"fmt"
	"os"

	"github.com/example/yolomark/internal/annotation"
)

// SaveFile writes the set to path. An empty set deletes the label file
// instead of leaving a zero-byte file behind, which keeps dataset
// tooling that globs for non-empty labels happy.
func SaveFile(path string, set *annotation.Set, imgW, imgH int) error {
	if set.Len() == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		return nil
	}
	var buf bytes.Buffer
	if err := Encode(&buf, set, imgW, imgH); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadFile reads the label file at path. A missing file is not an
// error; it simply means the image has no annotations yet.
func LoadFile(path string, imgW, imgH int) (*annotation.Set, []*ParseError, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return annotation.NewSet(), nil, nil
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	boxes, bad, err := Decode(f, imgW, imgH)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return annotation.NewSet(boxes...), bad, nil
}
