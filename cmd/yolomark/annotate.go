package main

import (
	"flag"
	"fmt"

	"github.com/example/yolomark/internal/classes"
	"github.com/example/yolomark/internal/editor"
	"github.com/example/yolomark/internal/session"
)

type annotateCmd struct {
	*root
	fs  *flag.FlagSet
	dir string
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	cmd := &annotateCmd{root: r, fs: fs}
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

func (c *annotateCmd) Run() error {
	sess, err := session.Open(c.dir, c.config)
	if err != nil {
		return err
	}
	reg, err := classes.Load(session.ClassesPath(c.dir, c.config))
	if err != nil {
		return fmt.Errorf("failed to load classes: %w", err)
	}
	for id, col := range c.config.ClassColors {
		reg.SetColor(id, col)
	}
	ui := &editor.UI{
		Sess:     sess,
		Reg:      reg,
		Cfg:      c.config,
		Notifier: c.notifier,
	}
	ui.Run()
	return nil
}

func (c *annotateCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
