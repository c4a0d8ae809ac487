package classes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a classes.txt definition. Two line forms are accepted
// and may be mixed:
//
//	person          plain name, id assigned sequentially
//	[7] truck       explicit id in brackets
//
// Blank lines and lines starting with # are skipped. A plain line
// after an explicit id continues from the highest id seen so far.
func Parse(r io.Reader) (*Registry, error) {
	reg := NewRegistry()
	next := 0
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id := next
		name := line
		if strings.HasPrefix(line, "[") {
			end := strings.Index(line, "]")
			if end < 0 {
				return nil, fmt.Errorf("line %d: unclosed id bracket", n)
			}
			v, err := strconv.Atoi(strings.TrimSpace(line[1:end]))
			if err != nil || v < 0 {
				return nil, fmt.Errorf("line %d: bad class id %q", n, line[1:end])
			}
			id = v
			name = strings.TrimSpace(line[end+1:])
		}
		if name == "" {
			return nil, fmt.Errorf("line %d: empty class name", n)
		}
		reg.SetName(id, name)
		if id >= next {
			next = id + 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Load reads the classes file at path. A missing file yields an empty
// registry so unlabeled datasets still open; unknown ids fall back to
// generated names.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	reg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return reg, nil
}
