package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/config"
	"github.com/go-drift/parallaxpager/pkg/animation"
	"github.com/go-drift/parallaxpager/pkg/host"
	"github.com/go-drift/parallaxpager/pkg/pageview"
)

func ptr[T any](v T) *T { return &v }

func resolve(t *testing.T, cfg *config.Config) *config.Resolved {
	t.Helper()
	resolved, err := config.Resolve(cfg, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func threePages() []config.PageConfig {
	return []config.PageConfig{
		{Title: "one", ContentHeight: 1000},
		{Title: "two", ContentHeight: 1000},
		{Title: "three", ContentHeight: 1000},
	}
}

func TestRun_SwipeLog(t *testing.T) {
	cfg := resolve(t, &config.Config{
		Scenario: config.ScenarioConfig{Name: "swipe"},
		Pages:    threePages(),
		Steps:    []config.Step{{Swipe: ptr(320.0)}},
	})

	var out bytes.Buffer
	if err := Run(cfg, &out, false); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"scenario swipe (320x480, 3 pages)",
		"setup",
		"  contentSize(960x0)",
		"step 1: swipe 320",
		"  contentOffset(320,0)",
		"  selectedIndex(1)",
		"state: selected=1 offset=(320,0) size=960x0 visible=1..1",
		"",
	}, "\n")
	if out.String() != want {
		t.Errorf("log =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestRun_AnimatedSelectSettles(t *testing.T) {
	cfg := resolve(t, &config.Config{
		Pages: threePages(),
		Steps: []config.Step{
			{Select: ptr(2), Animated: true},
			{Settle: true},
		},
	})

	var out bytes.Buffer
	if err := Run(cfg, &out, false); err != nil {
		t.Fatal(err)
	}
	log := out.String()
	if !strings.Contains(log, "step 1: select 2 animated") {
		t.Errorf("missing step header in\n%s", log)
	}
	if !strings.Contains(log, "selectedIndex(2)") {
		t.Errorf("selection never reported in\n%s", log)
	}
	if !strings.HasSuffix(log, "state: selected=2 offset=(640,0) size=960x0 visible=2..2\n") {
		t.Errorf("unexpected final state in\n%s", log)
	}
}

func TestRun_ParallaxScroll(t *testing.T) {
	cfg := resolve(t, &config.Config{
		Pages: []config.PageConfig{{Title: "feed", ContentHeight: 1000}},
		Decorations: config.DecorationsConfig{
			Content: &config.ViewConfig{Name: "hero", Height: 100},
		},
		Steps: []config.Step{{Scroll: ptr(60.0)}},
	})

	var out bytes.Buffer
	if err := Run(cfg, &out, false); err != nil {
		t.Fatal(err)
	}
	log := out.String()
	for _, want := range []string{"contentSize(320x100)", "step 1: scroll 60", "contentOffset(0,60)"} {
		if !strings.Contains(log, want) {
			t.Errorf("log is missing %q:\n%s", want, log)
		}
	}
}

func TestRun_StepErrorStops(t *testing.T) {
	cfg := resolve(t, &config.Config{
		Pages: []config.PageConfig{{Title: "about", Static: true}},
		Steps: []config.Step{{Scroll: ptr(10.0)}, {Swipe: ptr(320.0)}},
	})

	var out bytes.Buffer
	err := Run(cfg, &out, false)
	if err == nil || !strings.Contains(err.Error(), "step 1 (scroll 10)") {
		t.Fatalf("err = %v, want a step 1 failure", err)
	}
	if strings.Contains(out.String(), "step 2") {
		t.Error("run should stop at the failing step")
	}
}

func TestWorld_LabelDecoration(t *testing.T) {
	cfg := resolve(t, &config.Config{
		Pages: []config.PageConfig{{Title: "feed", ContentHeight: 1000}},
		Decorations: config.DecorationsConfig{
			Content: &config.ViewConfig{Text: "Hello parallax", Padding: 4},
		},
	})
	w := New(cfg)
	defer w.Close()

	if got := w.Coordinator().ContentSize().Height; got != 21 {
		t.Errorf("content height = %v, want 21", got)
	}
	if got := w.Coordinator().Parallax().Decoration(pageview.SlotContent); got == nil {
		t.Fatal("content slot is empty")
	}
}

func TestWorld_ResizeAndFrames(t *testing.T) {
	cfg := resolve(t, &config.Config{Pages: threePages()})
	w := New(cfg)
	defer w.Close()

	steps := []config.Step{
		{Select: ptr(1)},
		{Resize: []float64{200, 300}},
		{Offset: []float64{400, 0}, Animated: true},
		{Frames: 100},
	}
	for _, step := range steps {
		if err := w.Apply(step); err != nil {
			t.Fatal(err)
		}
	}
	if got := w.Coordinator().SelectedIndex(); got != 2 {
		t.Errorf("selected = %d, want 2", got)
	}
	if got := Summary(w); got != "state: selected=2 offset=(400,0) size=600x0 visible=2..2" {
		t.Errorf("summary = %q", got)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		step config.Step
		want string
	}{
		{config.Step{Select: ptr(1), Animated: true}, "select 1 animated"},
		{config.Step{Offset: []float64{0, 30}}, "offset (0,30)"},
		{config.Step{Drag: ptr(-40.0)}, "drag -40"},
		{config.Step{Release: true}, "release"},
		{config.Step{Resize: []float64{200, 300}}, "resize 200x300"},
		{config.Step{Frames: 4}, "frames 4"},
		{config.Step{Settle: true, Animated: true}, "settle"},
		{config.Step{}, "invalid step"},
	}
	for _, tt := range tests {
		if got := Describe(tt.step); got != tt.want {
			t.Errorf("Describe(%+v) = %q, want %q", tt.step, got, tt.want)
		}
	}
}

func TestRun_FeedScenario(t *testing.T) {
	for _, file := range []string{"testdata/feed.yaml", "testdata/feed.toml"} {
		t.Run(file, func(t *testing.T) {
			cfg, err := config.Load(file)
			if err != nil {
				t.Fatal(err)
			}
			resolved := resolve(t, cfg)

			var out bytes.Buffer
			if err := Run(resolved, &out, false); err != nil {
				t.Fatal(err)
			}
			blocks := splitSteps(out.String())

			expect := func(block string, lines ...string) {
				t.Helper()
				for _, line := range lines {
					if !strings.Contains(blocks[block], "  "+line+"\n") {
						t.Errorf("%s is missing %s:\n%s", block, line, blocks[block])
					}
				}
			}
			expect("step 1: scroll 60", "contentOffset(0,60)")
			expect("step 2: swipe 320", "contentOffset(320,60)", "selectedIndex(1)")
			if strings.HasSuffix(file, ".toml") {
				expect("setup", "contentSize(640x100)")
				return
			}
			expect("setup", "contentSize(960x100)")
			expect("step 3: scroll 100", "contentOffset(320,100)")
			expect("step 5: settle", "contentOffset(0,100)", "selectedIndex(0)")
			expect("step 6: offset (0,0)", "contentOffset(0,0)")
			expect("step 7: select 2", "contentOffset(640,0)", "selectedIndex(2)")
			if !strings.HasSuffix(out.String(), "state: selected=2 offset=(640,0) size=960x100 visible=2..2\n") {
				t.Errorf("unexpected final state:\n%s", out.String())
			}
		})
	}
}

// splitSteps groups the log lines under each step header.
func splitSteps(log string) map[string]string {
	blocks := make(map[string]string)
	var current string
	for _, line := range strings.SplitAfter(log, "\n") {
		if strings.HasPrefix(line, "  ") {
			blocks[current] += line
			continue
		}
		current = strings.TrimSuffix(line, "\n")
	}
	return blocks
}

func TestWorld_SnapshotFile(t *testing.T) {
	cfg := resolve(t, &config.Config{
		Scenario: config.ScenarioConfig{Name: "snap"},
		Pages:    threePages(),
		Steps:    []config.Step{{Select: ptr(1)}},
	})
	w := New(cfg)
	defer w.Close()
	if err := Play(w, &bytes.Buffer{}, false); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out", "snap.yaml")
	if err := w.Snapshot().WriteFile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Snapshot
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("snapshot is not YAML: %v\n%s", err, data)
	}
	if got.Scenario != "snap" || got.SelectedIndex != 1 {
		t.Errorf("snapshot = %+v", got)
	}
	if len(got.ContentOffset) != 2 || got.ContentOffset[0] != 320 {
		t.Errorf("contentOffset = %v, want [320 0]", got.ContentOffset)
	}
	if len(got.Visible) != 2 || got.Visible[0] != 1 || got.Visible[1] != 1 {
		t.Errorf("visible = %v, want [1 1]", got.Visible)
	}
	if got.Tree == nil || got.Tree.Name == "" || len(got.Tree.Children) == 0 {
		t.Errorf("tree = %+v, want a named root with children", got.Tree)
	}
}

func TestWorld_SteppedClock(t *testing.T) {
	before := animation.Now()
	w := New(resolve(t, &config.Config{Pages: threePages()}))

	if got := animation.Now(); !got.Equal(epoch) {
		t.Errorf("clock = %v, want %v", got, epoch)
	}
	w.Tick()
	if got := animation.Now().Sub(epoch); got != FrameDuration {
		t.Errorf("one frame moved the clock by %v", got)
	}

	w.Close()
	if animation.Now().Before(before) {
		t.Error("Close should restore the wall clock")
	}
}

func TestWorld_LiveClock(t *testing.T) {
	w := NewLive(resolve(t, &config.Config{Pages: threePages()}))
	defer w.Close()

	if since := time.Since(animation.Now()); since < 0 || since > time.Minute {
		t.Errorf("live world clock is %v off wall time", since)
	}
	w.Coordinator().SetSelectedIndex(1, true)
	deadline := time.Now().Add(5 * time.Second)
	for w.Coordinator().Pager().IsSelectionLocked() && time.Now().Before(deadline) {
		w.Tick()
	}
	if got := w.Coordinator().SelectedIndex(); got != 1 {
		t.Errorf("selected = %d, want 1 once the animation ends", got)
	}
}

func TestWorld_RecordsPreconditionReports(t *testing.T) {
	w := New(resolve(t, &config.Config{Pages: threePages()}))
	defer w.Close()

	page := w.Pages()[0]
	w.Coordinator().SetViewControllers([]host.ViewController{page, page})
	if len(w.Errors()) != 1 {
		t.Errorf("errors = %v, want one duplicate-controller report", w.Errors())
	}
}
