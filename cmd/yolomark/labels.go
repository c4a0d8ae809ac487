package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/example/yolomark/internal/imageio"
	"github.com/example/yolomark/internal/session"
	"github.com/example/yolomark/internal/yolo"
)

type labelsCmd struct {
	*root
	fs  *flag.FlagSet
	dir string
}

func parseLabelsCmd(args []string, r *root) (*labelsCmd, error) {
	fs := flag.NewFlagSet("labels", flag.ExitOnError)
	cmd := &labelsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: cmd}
	}
	cmd.dir = fs.Arg(0)
	return cmd, nil
}

func (c *labelsCmd) Run() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.dir, err)
	}

	labelsDir := c.dir
	if c.config.LabelsDir != "" {
		if filepath.IsAbs(c.config.LabelsDir) {
			labelsDir = c.config.LabelsDir
		} else {
			labelsDir = filepath.Join(c.dir, c.config.LabelsDir)
		}
	}

	images := 0
	labeled := 0
	boxes := 0
	problems := 0
	for _, e := range entries {
		if e.IsDir() || !imageio.IsImage(e.Name()) {
			continue
		}
		images++
		labelPath := session.LabelPath(labelsDir, e.Name())
		if _, err := os.Stat(labelPath); err != nil {
			continue
		}
		labeled++
		w, h, err := imageSize(filepath.Join(c.dir, e.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", e.Name(), err)
			problems++
			continue
		}
		set, parseErrs, err := yolo.LoadFile(labelPath, w, h)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", labelPath, err)
			problems++
			continue
		}
		for _, pe := range parseErrs {
			fmt.Fprintf(os.Stderr, "%s:%d: %s: %q\n", labelPath, pe.Line, pe.Msg, pe.Text)
			problems++
		}
		boxes += set.Len()
	}

	fmt.Fprintf(os.Stdout, "%d images, %d labeled, %d boxes\n", images, labeled, boxes)
	if problems > 0 {
		return fmt.Errorf("%d problems found", problems)
	}
	return nil
}

func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

func (c *labelsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
