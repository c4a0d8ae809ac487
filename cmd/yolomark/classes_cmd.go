package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/yolomark/internal/classes"
	"github.com/example/yolomark/internal/session"
)

type classesCmd struct {
	*root
	fs  *flag.FlagSet
	dir string
}

func parseClassesCmd(args []string, r *root) (*classesCmd, error) {
	fs := flag.NewFlagSet("classes", flag.ExitOnError)
	cmd := &classesCmd{root: r, fs: fs}
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

func (c *classesCmd) Run() error {
	path := session.ClassesPath(c.dir, c.config)
	reg, err := classes.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	for id, col := range c.config.ClassColors {
		reg.SetColor(id, col)
	}
	if reg.Len() == 0 {
		fmt.Fprintf(os.Stdout, "no classes defined in %s\n", path)
		return nil
	}
	for _, id := range reg.IDs() {
		col := reg.Color(id)
		fmt.Fprintf(os.Stdout, "%3d  %-20s #%02X%02X%02X\n", id, reg.Name(id), col.R, col.G, col.B)
	}
	return nil
}

func (c *classesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
