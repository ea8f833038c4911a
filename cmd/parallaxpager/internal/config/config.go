// Package config loads parallaxpager scenario files.
//
// A scenario is read from parallaxpager.yaml or parallaxpager.toml in the
// project root, or from an explicit path. Values left empty are resolved
// from defaults and from the enclosing go.mod.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/parallaxpager/pkg/pageview"
)

// File names searched by LoadOptional, in order.
const (
	YAMLFile = "parallaxpager.yaml"
	TOMLFile = "parallaxpager.toml"
)

// Default pager frame when the scenario does not set one.
const (
	DefaultWidth  = 320
	DefaultHeight = 480
)

// Config represents a scenario file.
type Config struct {
	Scenario    ScenarioConfig    `yaml:"scenario" toml:"scenario"`
	Options     OptionsConfig     `yaml:"options" toml:"options"`
	Pages       []PageConfig      `yaml:"pages" toml:"pages"`
	Decorations DecorationsConfig `yaml:"decorations" toml:"decorations"`
	Steps       []Step            `yaml:"steps" toml:"steps"`
}

// ScenarioConfig names the scenario and sizes the pager frame.
type ScenarioConfig struct {
	Name   string  `yaml:"name,omitempty" toml:"name,omitempty"`
	Width  float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" toml:"height,omitempty"`
}

// OptionsConfig mirrors pageview.Options.
type OptionsConfig struct {
	HeightPrecision          float64 `yaml:"heightPrecision,omitempty" toml:"heightPrecision,omitempty"`
	ClipsContent             bool    `yaml:"clipsContent,omitempty" toml:"clipsContent,omitempty"`
	FixedOffsetOnInsetChange bool    `yaml:"fixedOffsetOnInsetChange,omitempty" toml:"fixedOffsetOnInsetChange,omitempty"`
}

// PageConfig describes one page. A static page has no scroll surface.
type PageConfig struct {
	Title         string  `yaml:"title" toml:"title"`
	ContentHeight float64 `yaml:"contentHeight,omitempty" toml:"contentHeight,omitempty"`
	Static        bool    `yaml:"static,omitempty" toml:"static,omitempty"`
}

// DecorationsConfig describes the parallax region.
type DecorationsConfig struct {
	Header  *ViewConfig `yaml:"header,omitempty" toml:"header,omitempty"`
	Content *ViewConfig `yaml:"content,omitempty" toml:"content,omitempty"`
	Footer  *ViewConfig `yaml:"footer,omitempty" toml:"footer,omitempty"`
}

// ViewConfig describes a decoration view. Text makes it a label whose
// height is measured from the font; otherwise Height is used.
type ViewConfig struct {
	Name    string  `yaml:"name,omitempty" toml:"name,omitempty"`
	Height  float64 `yaml:"height,omitempty" toml:"height,omitempty"`
	Text    string  `yaml:"text,omitempty" toml:"text,omitempty"`
	Padding float64 `yaml:"padding,omitempty" toml:"padding,omitempty"`
}

// Step is one scripted action. Exactly one action field must be set;
// Animated modifies select and offset.
type Step struct {
	Select   *int      `yaml:"select,omitempty" toml:"select,omitempty"`
	Offset   []float64 `yaml:"offset,omitempty" toml:"offset,omitempty"`
	Scroll   *float64  `yaml:"scroll,omitempty" toml:"scroll,omitempty"`
	Drag     *float64  `yaml:"drag,omitempty" toml:"drag,omitempty"`
	Swipe    *float64  `yaml:"swipe,omitempty" toml:"swipe,omitempty"`
	Release  bool      `yaml:"release,omitempty" toml:"release,omitempty"`
	Resize   []float64 `yaml:"resize,omitempty" toml:"resize,omitempty"`
	Frames   int       `yaml:"frames,omitempty" toml:"frames,omitempty"`
	Settle   bool      `yaml:"settle,omitempty" toml:"settle,omitempty"`
	Animated bool      `yaml:"animated,omitempty" toml:"animated,omitempty"`
}

// Action returns the name of the step's action, or "" when none is set.
func (s Step) Action() string {
	actions := s.actions()
	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

func (s Step) actions() []string {
	var names []string
	if s.Select != nil {
		names = append(names, "select")
	}
	if s.Offset != nil {
		names = append(names, "offset")
	}
	if s.Scroll != nil {
		names = append(names, "scroll")
	}
	if s.Drag != nil {
		names = append(names, "drag")
	}
	if s.Swipe != nil {
		names = append(names, "swipe")
	}
	if s.Release {
		names = append(names, "release")
	}
	if s.Resize != nil {
		names = append(names, "resize")
	}
	if s.Frames != 0 {
		names = append(names, "frames")
	}
	if s.Settle {
		names = append(names, "settle")
	}
	return names
}

// Resolved contains a validated scenario with defaults applied.
type Resolved struct {
	Root        string
	Source      string
	ModulePath  string
	Name        string
	Width       float64
	Height      float64
	Options     pageview.Options
	Pages       []PageConfig
	Decorations DecorationsConfig
	Steps       []Step
}

// Load reads the scenario at path. Files ending in .toml are decoded as
// TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	cfg, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

func decode(path string, data []byte) (*Config, error) {
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional reads parallaxpager.yaml or parallaxpager.toml from dir if
// either is present. It returns the config and the file it came from, or an
// empty config and "" when neither exists.
func LoadOptional(dir string) (*Config, string, error) {
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to stat %s: %w", name, err)
		}
		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return &Config{}, "", nil
}

// Resolve applies defaults to cfg and validates it. dir is the project
// root used to derive the scenario name; it need not contain a go.mod.
func Resolve(cfg *Config, dir string) (*Resolved, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	modPath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	name := strings.TrimSpace(cfg.Scenario.Name)
	if name == "" {
		name = defaultName(modPath, dir)
	}

	width := cfg.Scenario.Width
	if width == 0 {
		width = DefaultWidth
	}
	height := cfg.Scenario.Height
	if height == 0 {
		height = DefaultHeight
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("scenario size must not be negative (got %gx%g)", width, height)
	}

	if err := validatePages(cfg.Pages); err != nil {
		return nil, err
	}
	if err := validateSteps(cfg.Steps); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modPath,
		Name:       name,
		Width:      width,
		Height:     height,
		Options: pageview.Options{
			HeightPrecision:          cfg.Options.HeightPrecision,
			ClipsContent:             cfg.Options.ClipsContent,
			FixedOffsetOnInsetChange: cfg.Options.FixedOffsetOnInsetChange,
		},
		Pages:       cfg.Pages,
		Decorations: cfg.Decorations,
		Steps:       cfg.Steps,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultName(modPath, dir string) string {
	base := filepath.Base(dir)
	if modPath != "" {
		prefix, _, ok := module.SplitPathVersion(modPath)
		if ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "scenario"
	}
	return base
}

func validatePages(pages []PageConfig) error {
	for i, page := range pages {
		if strings.TrimSpace(page.Title) == "" {
			return fmt.Errorf("pages[%d]: title is required", i)
		}
		if page.ContentHeight < 0 {
			return fmt.Errorf("pages[%d] (%s): contentHeight must not be negative", i, page.Title)
		}
		if page.Static && page.ContentHeight != 0 {
			return fmt.Errorf("pages[%d] (%s): a static page has no scrollable content", i, page.Title)
		}
	}
	return nil
}

func validateSteps(steps []Step) error {
	for i, step := range steps {
		actions := step.actions()
		switch len(actions) {
		case 0:
			return fmt.Errorf("steps[%d]: no action set", i)
		case 1:
		default:
			return fmt.Errorf("steps[%d]: more than one action set (%s)", i, strings.Join(actions, ", "))
		}
		if step.Offset != nil && len(step.Offset) != 2 {
			return fmt.Errorf("steps[%d]: offset needs [x, y] (got %v)", i, step.Offset)
		}
		if step.Resize != nil && len(step.Resize) != 2 {
			return fmt.Errorf("steps[%d]: resize needs [width, height] (got %v)", i, step.Resize)
		}
		if step.Frames < 0 {
			return fmt.Errorf("steps[%d]: frames must not be negative", i)
		}
	}
	return nil
}
