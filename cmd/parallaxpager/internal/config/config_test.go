package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const yamlScenario = `
scenario:
  name: feed
  width: 400
options:
  clipsContent: true
pages:
  - title: Feed
    contentHeight: 2000
  - title: About
    static: true
decorations:
  header:
    name: banner
    height: 120
  content:
    text: Hello parallax
steps:
  - select: 1
    animated: true
  - settle: true
  - offset: [0, 60]
`

const tomlScenario = `
[scenario]
name = "feed"
height = 600.0

[[pages]]
title = "Feed"
contentHeight = 2000.0

[decorations.footer]
name = "tabs"
height = 44.0

[[steps]]
swipe = 320.0

[[steps]]
frames = 3
`

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), YAMLFile, yamlScenario)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Scenario.Name != "feed" || cfg.Scenario.Width != 400 {
		t.Errorf("scenario = %+v", cfg.Scenario)
	}
	if !cfg.Options.ClipsContent {
		t.Error("clipsContent not decoded")
	}
	if len(cfg.Pages) != 2 || !cfg.Pages[1].Static || cfg.Pages[0].ContentHeight != 2000 {
		t.Errorf("pages = %+v", cfg.Pages)
	}
	if cfg.Decorations.Header == nil || cfg.Decorations.Header.Height != 120 {
		t.Errorf("header = %+v", cfg.Decorations.Header)
	}
	if cfg.Decorations.Content == nil || cfg.Decorations.Content.Text != "Hello parallax" {
		t.Errorf("content = %+v", cfg.Decorations.Content)
	}
	if len(cfg.Steps) != 3 {
		t.Fatalf("steps = %+v", cfg.Steps)
	}
	if cfg.Steps[0].Action() != "select" || *cfg.Steps[0].Select != 1 || !cfg.Steps[0].Animated {
		t.Errorf("step 0 = %+v", cfg.Steps[0])
	}
	if cfg.Steps[2].Action() != "offset" || cfg.Steps[2].Offset[1] != 60 {
		t.Errorf("step 2 = %+v", cfg.Steps[2])
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), TOMLFile, tomlScenario)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Scenario.Height != 600 {
		t.Errorf("height = %v, want 600", cfg.Scenario.Height)
	}
	if cfg.Decorations.Footer == nil || cfg.Decorations.Footer.Name != "tabs" {
		t.Errorf("footer = %+v", cfg.Decorations.Footer)
	}
	if len(cfg.Steps) != 2 || cfg.Steps[0].Action() != "swipe" || cfg.Steps[1].Frames != 3 {
		t.Errorf("steps = %+v", cfg.Steps)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	bad := writeFile(t, dir, "bad.toml", "[[pages]\ntitle =")
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "failed to parse bad.toml") {
		t.Errorf("err = %v, want a wrapped parse error", err)
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		t.Fatal(err)
	}
	if source != "" || len(cfg.Pages) != 0 {
		t.Errorf("empty dir gave source %q and %+v", source, cfg)
	}

	want := writeFile(t, dir, TOMLFile, tomlScenario)
	_, source, err = LoadOptional(dir)
	if err != nil {
		t.Fatal(err)
	}
	if source != want {
		t.Errorf("source = %q, want %q", source, want)
	}

	want = writeFile(t, dir, YAMLFile, yamlScenario)
	_, source, err = LoadOptional(dir)
	if err != nil {
		t.Fatal(err)
	}
	if source != want {
		t.Errorf("yaml should win over toml, source = %q", source)
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/demos/carousel/v2\n\ngo 1.24\n")

	resolved, err := Resolve(&Config{}, dir)
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Name != "carousel" {
		t.Errorf("name = %q, want carousel", resolved.Name)
	}
	if resolved.ModulePath != "example.com/demos/carousel/v2" {
		t.Errorf("module path = %q", resolved.ModulePath)
	}
	if resolved.Width != DefaultWidth || resolved.Height != DefaultHeight {
		t.Errorf("size = %vx%v", resolved.Width, resolved.Height)
	}
}

func TestResolve_WithoutGoMod(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gallery")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	resolved, err := Resolve(nil, dir)
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Name != "gallery" || resolved.ModulePath != "" {
		t.Errorf("resolved = %+v", resolved)
	}
}

func TestResolve_CarriesOptions(t *testing.T) {
	cfg := &Config{Options: OptionsConfig{HeightPrecision: 0.5, ClipsContent: true, FixedOffsetOnInsetChange: true}}
	resolved, err := Resolve(cfg, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := resolved.Options
	if opts.HeightPrecision != 0.5 || !opts.ClipsContent || !opts.FixedOffsetOnInsetChange {
		t.Errorf("options = %+v", opts)
	}
}

func TestResolve_Validation(t *testing.T) {
	one := 1
	dy := 10.0
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"negative size", Config{Scenario: ScenarioConfig{Width: -1}}, "must not be negative"},
		{"untitled page", Config{Pages: []PageConfig{{ContentHeight: 10}}}, "title is required"},
		{"negative content", Config{Pages: []PageConfig{{Title: "a", ContentHeight: -5}}}, "contentHeight"},
		{"static with content", Config{Pages: []PageConfig{{Title: "a", Static: true, ContentHeight: 5}}}, "static page"},
		{"empty step", Config{Steps: []Step{{Animated: true}}}, "no action"},
		{"two actions", Config{Steps: []Step{{Select: &one, Scroll: &dy}}}, "select, scroll"},
		{"short offset", Config{Steps: []Step{{Offset: []float64{1}}}}, "offset needs"},
		{"short resize", Config{Steps: []Step{{Resize: []float64{1, 2, 3}}}}, "resize needs"},
		{"negative frames", Config{Steps: []Step{{Frames: -2}}}, "frames"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(&tt.cfg, t.TempDir())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
