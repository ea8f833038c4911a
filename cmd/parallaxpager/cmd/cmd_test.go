package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/config"
	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/scenario"
	"github.com/go-drift/parallaxpager/pkg/errors"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "view", "status"} {
		if _, ok := commands[name]; !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	defer errors.SetHandler(nil)
	err := execute([]string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: bogus") {
		t.Errorf("err = %v", err)
	}
}

func TestExecute_Help(t *testing.T) {
	defer errors.SetHandler(nil)
	if err := execute([]string{"run", "--help"}); err != nil {
		t.Errorf("help should not fail: %v", err)
	}
	if err := execute(nil); err != nil {
		t.Errorf("no arguments should print help: %v", err)
	}
}

func TestLoadScenario_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	content := "[scenario]\nname = \"demo\"\n\n[[pages]]\ntitle = \"Feed\"\ncontentHeight = 900.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadScenario([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source != path || cfg.Name != "demo" || len(cfg.Pages) != 1 {
		t.Errorf("resolved = %+v", cfg)
	}
	if cfg.Width != config.DefaultWidth {
		t.Errorf("width = %v, want default", cfg.Width)
	}

	if _, err := loadScenario([]string{path, path}); err == nil {
		t.Error("two scenario files should be rejected")
	}
}

func TestProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "scenarios", "paging")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := projectRoot(nested); got != root {
		t.Errorf("projectRoot = %q, want %q", got, root)
	}
}

func TestCollapseBar(t *testing.T) {
	tests := []struct {
		offset, limit float64
		want          string
	}{
		{0, 100, "[..........] 0/100"},
		{50, 100, "[#####.....] 50/100"},
		{150, 100, "[##########] 150/100"},
		{-20, 100, "[..........] -20/100"},
		{10, 0, "[          ] n/a"},
	}
	for _, tt := range tests {
		if got := collapseBar(tt.offset, tt.limit, 10); got != tt.want {
			t.Errorf("collapseBar(%v, %v) = %q, want %q", tt.offset, tt.limit, got, tt.want)
		}
	}
}

func TestViewModel_KeysDriveTheCoordinator(t *testing.T) {
	cfg, err := config.Resolve(&config.Config{Pages: demoPages()}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w := scenario.New(cfg)
	defer w.Close()
	m := newViewModel(w)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.status != "select 1 animated" {
		t.Errorf("status = %q", m.status)
	}
	for range int(time.Second / (16 * time.Millisecond)) {
		m.Update(frameMsg(time.Time{}))
	}
	if got := w.Coordinator().SelectedIndex(); got != 1 {
		t.Fatalf("selected = %d, want 1", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := w.Coordinator().Pager().Items()[1].ScrollSurface().ContentOffset().Y; got != 24 {
		t.Errorf("inner offset = %v, want 24", got)
	}

	if !strings.Contains(m.View(), "selected=1") {
		t.Errorf("view does not show the selection:\n%s", m.View())
	}

	_, quit := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if quit == nil {
		t.Error("q should quit")
	}
}

func TestRun_WritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.yaml")
	content := "scenario:\n  name: demo\npages:\n  - title: Feed\n    contentHeight: 900\n  - title: About\n    static: true\nsteps:\n  - select: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "snap.yaml")
	if err := runRun([]string{path, "--snapshot", out}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var snap scenario.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Scenario != "demo" || snap.SelectedIndex != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}
