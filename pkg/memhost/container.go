package memhost

import (
	"slices"

	"github.com/go-drift/parallaxpager/pkg/host"
)

// Container is a parent controller that tracks its children.
type Container struct {
	Children []host.ViewController
	// StatusBarUpdates counts SetNeedsStatusBarAppearanceUpdate calls.
	StatusBarUpdates int
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{}
}

// AddChild adopts child and sends it WillMoveToParent. The caller finishes
// the move with DidMoveToParent once the child's view is in place.
func (c *Container) AddChild(child host.ViewController) {
	if slices.Contains(c.Children, child) {
		return
	}
	child.WillMoveToParent(c)
	c.Children = append(c.Children, child)
}

// RemoveChild drops child and sends it DidMoveToParent(nil). The caller is
// expected to have sent WillMoveToParent(nil) first.
func (c *Container) RemoveChild(child host.ViewController) {
	i := slices.Index(c.Children, child)
	if i < 0 {
		return
	}
	c.Children = slices.Delete(c.Children, i, i+1)
	child.DidMoveToParent(nil)
}

// SetNeedsStatusBarAppearanceUpdate records the request.
func (c *Container) SetNeedsStatusBarAppearanceUpdate() {
	c.StatusBarUpdates++
}

// HasChild reports whether child is currently adopted.
func (c *Container) HasChild(child host.ViewController) bool {
	return slices.Contains(c.Children, child)
}
