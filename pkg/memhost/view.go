// Package memhost is an in-memory implementation of the host toolkit contract.
//
// It keeps a real view tree with frames and parent links, scroll views that
// notify listeners and animate through the animation ticker, and view
// controllers that record every lifecycle callback. Tests and the command
// line demo drive the paging engine through it.
package memhost

import (
	"slices"

	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
)

// node is implemented by every view type in this package.
type node interface {
	base() *View
}

// View is a plain view with an explicit intrinsic height.
type View struct {
	Name string

	self      host.View
	superview host.View
	subviews  []host.View
	frame     graphics.Rect
	clips     bool
	intrinsic float64
}

// NewView returns a detached view.
func NewView(name string) *View {
	v := &View{Name: name}
	v.self = v
	return v
}

// NewSizedView returns a detached view with the given intrinsic height.
func NewSizedView(name string, height float64) *View {
	v := NewView(name)
	v.intrinsic = height
	return v
}

func (v *View) base() *View {
	return v
}

// NameOf returns the name of a view created by this package, or the empty
// string for any other view.
func NameOf(v host.View) string {
	if n, ok := v.(node); ok {
		return n.base().Name
	}
	return ""
}

// Superview returns the parent view, or nil when detached.
func (v *View) Superview() host.View {
	return v.superview
}

// Subviews returns a copy of the children in back-to-front order.
func (v *View) Subviews() []host.View {
	return slices.Clone(v.subviews)
}

// AddSubview appends child, detaching it from any previous parent.
func (v *View) AddSubview(child host.View) {
	v.InsertSubviewAt(child, len(v.subviews)+1)
}

// InsertSubviewAt inserts child at index, clamped to the children count.
func (v *View) InsertSubviewAt(child host.View, index int) {
	n, ok := child.(node)
	if !ok {
		panic("memhost: cannot adopt a view from another toolkit")
	}
	child.RemoveFromSuperview()
	index = max(0, min(index, len(v.subviews)))
	v.subviews = slices.Insert(v.subviews, index, child)
	n.base().superview = v.self
}

// RemoveFromSuperview detaches the view from its parent.
func (v *View) RemoveFromSuperview() {
	if v.superview == nil {
		return
	}
	parent := v.superview.(node).base()
	if i := slices.Index(parent.subviews, v.self); i >= 0 {
		parent.subviews = slices.Delete(parent.subviews, i, i+1)
	}
	v.superview = nil
}

// Frame returns the frame in the parent's coordinate space.
func (v *View) Frame() graphics.Rect {
	return v.frame
}

// SetFrame updates the frame.
func (v *View) SetFrame(frame graphics.Rect) {
	v.frame = frame
}

// ClipsToBounds reports whether the clipping mask is enabled.
func (v *View) ClipsToBounds() bool {
	return v.clips
}

// SetClipsToBounds toggles the clipping mask.
func (v *View) SetClipsToBounds(clips bool) {
	v.clips = clips
}

// IntrinsicHeight returns the height set with SetIntrinsicHeight.
func (v *View) IntrinsicHeight() float64 {
	return v.intrinsic
}

// SetIntrinsicHeight changes the natural height. Hosts re-run layout
// afterwards.
func (v *View) SetIntrinsicHeight(height float64) {
	v.intrinsic = height
}
