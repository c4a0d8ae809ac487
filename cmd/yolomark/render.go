package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/yolomark/internal/classes"
	"github.com/example/yolomark/internal/imageio"
	"github.com/example/yolomark/internal/render"
	"github.com/example/yolomark/internal/session"
	"github.com/example/yolomark/internal/yolo"
)

type renderCmd struct {
	*root
	fs        *flag.FlagSet
	image     string
	output    string
	scale     float64
	hideLabel bool
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cmd := &renderCmd{root: r, fs: fs}
	fs.StringVar(&cmd.output, "o", "", "output file (default <image>.annotated.png)")
	fs.Float64Var(&cmd.scale, "scale", 1, "resize factor for the output image")
	fs.BoolVar(&cmd.hideLabel, "no-labels", false, "draw boxes without class name tags")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: cmd}
	}
	cmd.image = fs.Arg(0)
	if cmd.output == "" {
		ext := filepath.Ext(cmd.image)
		cmd.output = strings.TrimSuffix(cmd.image, ext) + ".annotated.png"
	}
	return cmd, nil
}

func (c *renderCmd) Run() error {
	img, err := imageio.Load(c.image)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	b := img.Bounds()

	dir := filepath.Dir(c.image)
	labelsDir := dir
	if c.config.LabelsDir != "" {
		if filepath.IsAbs(c.config.LabelsDir) {
			labelsDir = c.config.LabelsDir
		} else {
			labelsDir = filepath.Join(dir, c.config.LabelsDir)
		}
	}
	labelPath := session.LabelPath(labelsDir, filepath.Base(c.image))
	set, parseErrs, err := yolo.LoadFile(labelPath, b.Dx(), b.Dy())
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}
	for _, pe := range parseErrs {
		fmt.Fprintf(os.Stderr, "%s: %v\n", labelPath, pe)
	}

	reg, err := classes.Load(session.ClassesPath(dir, c.config))
	if err != nil {
		return fmt.Errorf("failed to load classes: %w", err)
	}
	for id, col := range c.config.ClassColors {
		reg.SetColor(id, col)
	}

	out, err := render.Annotated(img, set, reg, render.Options{
		HideLabels: c.hideLabel,
		Scale:      c.scale,
	})
	if err != nil {
		return err
	}
	if err := imaging.Save(out, c.output); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.output, err)
	}
	if c.notifier != nil {
		c.notifier.Export(c.output, out)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d boxes)\n", c.output, set.Len())
	return nil
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
