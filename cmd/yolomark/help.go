package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"
)

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

var helpTexts = map[string]string{
	"root": `{{.Program}} - YOLO bounding box annotation tool

Usage:
  {{.Program}} [flags] <command> [command flags] [args]

Commands:
  annotate   open the interactive editor on an image directory
  render     draw labels onto an image and write the result
  labels     lint the label files of a dataset
  classes    list the class names and colors of a dataset
  config     print or save the effective configuration
  version    print the program version

Flags:
{{range flags .FlagSet}}  -{{.Name}} (default {{.DefValue}})
        {{.Usage}}
{{end}}
Run "{{.Program}} <command>" with no arguments for command help.
`,
	"annotate": `{{.Program}} - open the interactive editor

Usage:
  {{.Program}} [flags] <image-dir>

Opens a window on the images in <image-dir>. Labels are read and
written as YOLO text files next to the images, or in the directory
named by the labels_dir config key.

Flags:
{{range flags .FlagSet}}  -{{.Name}} (default {{.DefValue}})
        {{.Usage}}
{{end}}`,
	"render": `{{.Program}} - render labels onto an image

Usage:
  {{.Program}} [flags] <image>

Draws the boxes from the image's label file over the image and writes
the result to the -o path.

Flags:
{{range flags .FlagSet}}  -{{.Name}} (default {{.DefValue}})
        {{.Usage}}
{{end}}`,
	"labels": `{{.Program}} - lint the label files of a dataset

Usage:
  {{.Program}} <image-dir>

Parses every label file that pairs with an image in <image-dir> and
reports malformed lines. Exits nonzero when problems are found.
`,
	"classes": `{{.Program}} - list the classes of a dataset

Usage:
  {{.Program}} <image-dir>

Reads the dataset's classes.txt (or the classes_file config key) and
prints each class id, name and box color.
`,
	"config": `{{.Program}} - print or save the configuration

Usage:
  {{.Program}} print
  {{.Program}} save

"print" writes the effective configuration to stdout. "save" writes
it back to the active config file, creating one if none exists.
`,
	"version": `{{.Program}} - print the program version
`,
}

func parseHelpTemplates() {
	helpTmpl = template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	})
	for name, text := range helpTexts {
		template.Must(helpTmpl.New(name).Parse(text))
	}
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of)
	if err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func usageFunc(h HelpData) func() {
	return func() {
		uerr := &UsageError{of: h}
		fmt.Fprintln(os.Stderr, uerr.Error())
	}
}

func (r *root) Template() string {
	return "root"
}

func (a *annotateCmd) Template() string {
	return "annotate"
}

func (c *renderCmd) Template() string {
	return "render"
}

func (c *labelsCmd) Template() string {
	return "labels"
}

func (c *classesCmd) Template() string {
	return "classes"
}

func (c *configCmd) Template() string {
	return "config"
}

func (v *versionCmd) Template() string {
	return "version"
}
