package scenario

import (
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/parallaxpager/pkg/host"
	"github.com/go-drift/parallaxpager/pkg/memhost"
)

// Snapshot is the view tree and coordinator state at the end of a run.
type Snapshot struct {
	Scenario      string    `yaml:"scenario"`
	SelectedIndex int       `yaml:"selectedIndex"`
	ContentSize   []float64 `yaml:"contentSize,flow"`
	ContentOffset []float64 `yaml:"contentOffset,flow"`
	Visible       []int     `yaml:"visible,flow,omitempty"`
	Tree          *ViewNode `yaml:"tree"`
}

// ViewNode is one view of a snapshot's tree. Scroll surfaces carry their
// offset and top inset.
type ViewNode struct {
	Name     string      `yaml:"name"`
	Frame    []float64   `yaml:"frame,flow"`
	Clips    bool        `yaml:"clips,omitempty"`
	Offset   []float64   `yaml:"offset,flow,omitempty"`
	InsetTop float64     `yaml:"insetTop,omitempty"`
	Children []*ViewNode `yaml:"children,omitempty"`
}

// Snapshot captures the world's current state.
func (w *World) Snapshot() *Snapshot {
	c := w.coordinator
	size := c.ContentSize()
	offset := c.ContentOffset()
	snap := &Snapshot{
		Scenario:      w.cfg.Name,
		SelectedIndex: c.SelectedIndex(),
		ContentSize:   []float64{round2(size.Width), round2(size.Height)},
		ContentOffset: []float64{round2(offset.X), round2(offset.Y)},
		Tree:          captureView(c.View()),
	}
	if visible := c.Pager().VisibleRange(); !visible.IsEmpty() {
		snap.Visible = []int{visible.First, visible.Last}
	}
	return snap
}

type clipper interface {
	ClipsToBounds() bool
}

func captureView(v host.View) *ViewNode {
	frame := v.Frame()
	node := &ViewNode{
		Name:  memhost.NameOf(v),
		Frame: []float64{round2(frame.Left), round2(frame.Top), round2(frame.Width()), round2(frame.Height())},
	}
	if c, ok := v.(clipper); ok {
		node.Clips = c.ClipsToBounds()
	}
	if s, ok := v.(host.ScrollSurface); ok {
		o := s.ContentOffset()
		node.Offset = []float64{round2(o.X), round2(o.Y)}
		node.InsetTop = round2(s.ContentInset().Top)
	}
	for _, child := range v.Subviews() {
		node.Children = append(node.Children, captureView(child))
	}
	return node
}

// WriteFile writes the snapshot to path as YAML, creating directories as
// needed.
func (s *Snapshot) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
