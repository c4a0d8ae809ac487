package main

import (
	"errors"
	"flag"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/yolomark/internal/config"
)

func testRoot() *root {
	return &root{program: "yolomark", config: config.New()}
}

func TestParseAnnotateRequiresDir(t *testing.T) {
	_, err := parseAnnotateCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseRenderRequiresImage(t *testing.T) {
	_, err := parseRenderCmd([]string{"-scale", "2"}, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseRenderDefaultOutput(t *testing.T) {
	cmd, err := parseRenderCmd([]string{filepath.Join("shots", "img.png")}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if want := filepath.Join("shots", "img.annotated.png"); cmd.output != want {
		t.Fatalf("expected output %q, got %q", want, cmd.output)
	}
}

func TestRootUnknownCommand(t *testing.T) {
	r := testRoot()
	r.fs = flag.NewFlagSet("yolomark", flag.ContinueOnError)
	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "annotate") {
		t.Fatalf("expected help text to list commands, got %q", uerr.Error())
	}
}

func TestConfigUnknownSubcommand(t *testing.T) {
	cmd, err := parseConfigCmd([]string{"bogus"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "unknown config command"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestLabelsLintReportsMalformed(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	f, err := os.Create(filepath.Join(dir, "img.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	labels := "0 0.5 0.5 0.25 0.25\nnot a label\n"
	if err := os.WriteFile(filepath.Join(dir, "img.txt"), []byte(labels), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &labelsCmd{root: testRoot(), dir: dir}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected lint failure")
	} else if want := "1 problems found"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestLabelsLintCleanDataset(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	f, err := os.Create(filepath.Join(dir, "img.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	labels := "0 0.5 0.5 0.25 0.25\n"
	if err := os.WriteFile(filepath.Join(dir, "img.txt"), []byte(labels), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &labelsCmd{root: testRoot(), dir: dir}
	if err := cmd.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
