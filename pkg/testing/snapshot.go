package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/parallaxpager/pkg/host"
)

// UpdateSnapshotsEnv names the environment variable that rewrites golden
// files instead of comparing against them.
const UpdateSnapshotsEnv = "PARALLAXPAGER_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the view tree and the coordinator's public state.
type Snapshot struct {
	SelectedIndex int        `json:"selectedIndex"`
	ContentSize   [2]float64 `json:"contentSize"`
	ContentOffset [2]float64 `json:"contentOffset"`
	Visible       [2]int     `json:"visible"`
	Tree          *ViewNode  `json:"tree"`
}

// ViewNode represents a node in the serialized view tree.
type ViewNode struct {
	Name     string      `json:"name"`
	Frame    [4]float64  `json:"frame"`
	Clips    bool        `json:"clips,omitempty"`
	Offset   *[2]float64 `json:"offset,omitempty"`
	InsetTop float64     `json:"insetTop,omitempty"`
	Children []*ViewNode `json:"children,omitempty"`
}

type clipper interface {
	ClipsToBounds() bool
}

// CaptureSnapshot captures the current view tree and coordinator state.
func (t *PagerTester) CaptureSnapshot() *Snapshot {
	c := t.coordinator
	size := c.ContentSize()
	offset := c.ContentOffset()
	visible := c.Pager().VisibleRange()
	return &Snapshot{
		SelectedIndex: c.SelectedIndex(),
		ContentSize:   [2]float64{round2(size.Width), round2(size.Height)},
		ContentOffset: [2]float64{round2(offset.X), round2(offset.Y)},
		Visible:       [2]int{visible.First, visible.Last},
		Tree:          captureViewNode(c.View()),
	}
}

func captureViewNode(v host.View) *ViewNode {
	frame := v.Frame()
	node := &ViewNode{
		Name:  ViewName(v),
		Frame: [4]float64{round2(frame.Left), round2(frame.Top), round2(frame.Width()), round2(frame.Height())},
	}
	if c, ok := v.(clipper); ok {
		node.Clips = c.ClipsToBounds()
	}
	if s, ok := v.(host.ScrollSurface); ok {
		o := s.ContentOffset()
		node.Offset = &[2]float64{round2(o.X), round2(o.Y)}
		node.InsetTop = round2(s.ContentInset().Top)
	}
	for _, child := range v.Subviews() {
		node.Children = append(node.Children, captureViewNode(child))
	}
	return node
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When the update variable is
// set to 1, the file is silently rewritten instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to path, creating directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other (expected) and this snapshot, or
// the empty string when they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")
	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
