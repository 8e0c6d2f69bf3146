package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/radialtext/config"
)

func TestRunWritesDefaultFileNames(t *testing.T) {
	dir := t.TempDir()
	settings := config.Defaults()
	for _, f := range []config.Format{config.FormatOutlines, config.FormatLive, config.FormatPDF} {
		settings.Format = f
		path, err := run(context.Background(), settings, ".", dir, "")
		if err != nil {
			t.Fatalf("run(%s): %v", f, err)
		}
		if path != filepath.Join(dir, f.DefaultFileName()) {
			t.Fatalf("path = %s", path)
		}
		data, err := os.ReadFile(path)
		if err != nil || len(data) == 0 {
			t.Fatalf("read %s: %v", path, err)
		}
	}
}

func TestRunWritesDebugJSON(t *testing.T) {
	dir := t.TempDir()
	settings := config.Defaults()
	settings.Words = "A,B"
	debugPath := filepath.Join(dir, "debug", "layout.json")
	out := filepath.Join(dir, "out.svg")
	if _, err := run(context.Background(), settings, ".", out, debugPath); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(debugPath)
	if err != nil {
		t.Fatalf("read debug: %v", err)
	}
	var payload struct {
		Spokes []struct {
			Angle float64 `json:"angle"`
		} `json:"spokes"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode debug: %v", err)
	}
	if len(payload.Spokes) != 2 || payload.Spokes[1].Angle != 180 {
		t.Fatalf("unexpected debug payload: %s", data)
	}
	svg, _ := os.ReadFile(out)
	if !bytes.Contains(svg, []byte(`viewBox="-600 -600 1200 1200"`)) {
		t.Fatalf("unexpected SVG output")
	}
}

func TestRunUnknownFont(t *testing.T) {
	settings := config.Defaults()
	settings.Font = "builtin:missing"
	if _, err := run(context.Background(), settings, ".", t.TempDir(), ""); err == nil {
		t.Fatalf("expected font error for outline export")
	}
	settings.Format = config.FormatLive
	if _, err := run(context.Background(), settings, ".", t.TempDir(), ""); err != nil {
		t.Fatalf("live export should not need outlines: %v", err)
	}
}

func TestLoadSettingsAppliesFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.radial")
	src := `radial Demo v1 { layout { words: "X, Y" radius: 90px } }`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("radialtext", flag.ContinueOnError)
	overrides := config.BindFlags(fs)
	if err := fs.Parse([]string{"-radius", "30"}); err != nil {
		t.Fatal(err)
	}
	s, baseDir, err := loadSettings(path, overrides)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Words != "X, Y" || s.Radius != 30 || baseDir != dir || s.Title != "Demo" {
		t.Fatalf("unexpected settings %+v (baseDir %s)", s, baseDir)
	}
}
