// Package host defines the contract between the paging engine and the UI
// toolkit that embeds it.
//
// The engine never creates platform views on its own behalf except through a
// [Toolkit], and never drives appearance callbacks except through a
// [Container]. Everything here is consumed as a black box: constraint solving,
// rendering and gesture handling stay on the host side.
//
// All methods are expected to be called on the host's main loop.
package host

import "github.com/go-drift/parallaxpager/pkg/graphics"

// View is a node in the host's view hierarchy.
type View interface {
	// Superview returns the parent view, or nil when detached.
	Superview() View
	// Subviews returns the children in back-to-front order.
	Subviews() []View
	// AddSubview appends child on top of the existing children, removing it
	// from any previous parent first.
	AddSubview(child View)
	// InsertSubviewAt inserts child at index in the children list.
	InsertSubviewAt(child View, index int)
	// RemoveFromSuperview detaches the view from its parent.
	RemoveFromSuperview()

	Frame() graphics.Rect
	SetFrame(frame graphics.Rect)

	// SetClipsToBounds toggles the clipping mask of the view.
	SetClipsToBounds(clips bool)
	// IntrinsicHeight returns the natural height of the view's content.
	IntrinsicHeight() float64
}

// ScrollListener receives scroll events from a [ScrollSurface].
// Either callback may be nil.
type ScrollListener struct {
	// OnScroll fires whenever the content offset changes.
	OnScroll func()
	// OnScrollEnd fires when a programmatic animation or a deceleration
	// completes.
	OnScrollEnd func()
}

// ScrollSurface is a view whose content can be scrolled.
type ScrollSurface interface {
	View

	ContentOffset() graphics.Offset
	// SetContentOffset moves the visible region. When animated is true the
	// host may apply the change over several frames, firing OnScroll per frame
	// and OnScrollEnd once it settles.
	SetContentOffset(offset graphics.Offset, animated bool)

	ContentInset() graphics.EdgeInsets
	SetContentInset(inset graphics.EdgeInsets)

	ContentSize() graphics.Size
	SetContentSize(size graphics.Size)

	// AddScrollListener registers a listener and returns a function that
	// removes it.
	AddScrollListener(listener ScrollListener) func()
}

// ViewController owns a page of content.
type ViewController interface {
	// View returns the root view, loading it on first access.
	View() View
	// IsViewLoaded reports whether View has been loaded.
	IsViewLoaded() bool

	// BeginAppearanceTransition starts an appear or disappear transition.
	BeginAppearanceTransition(appearing, animated bool)
	// EndAppearanceTransition completes the transition started last.
	EndAppearanceTransition()

	// WillMoveToParent is called before the controller is added to or
	// removed from a container. parent is nil on removal.
	WillMoveToParent(parent Container)
	// DidMoveToParent is called after the move completed.
	DidMoveToParent(parent Container)
}

// ContentSurfaceProvider is implemented by view controllers that know which
// of their scroll surfaces should host the parallax region.
type ContentSurfaceProvider interface {
	ContentScrollSurface() ScrollSurface
}

// Container is the parent side of view controller containment.
type Container interface {
	AddChild(child ViewController)
	RemoveChild(child ViewController)
	// SetNeedsStatusBarAppearanceUpdate asks the host to re-evaluate which
	// child controls the status bar.
	SetNeedsStatusBarAppearanceUpdate()
}

// Toolkit creates the views owned by the engine.
type Toolkit interface {
	NewView() View
	// NewScrollSurface creates a scroll surface. paging requests snapping to
	// viewport-sized pages.
	NewScrollSurface(paging bool) ScrollSurface
}

// FindScrollSurface returns the scroll surface that should host the parallax
// region for vc, or nil when the controller has none. Controllers that
// implement [ContentSurfaceProvider] decide for themselves; otherwise the view
// tree is searched breadth-first and the first surface wins.
func FindScrollSurface(vc ViewController) ScrollSurface {
	if vc == nil || !vc.IsViewLoaded() {
		return nil
	}
	if provider, ok := vc.(ContentSurfaceProvider); ok {
		return provider.ContentScrollSurface()
	}
	queue := []View{vc.View()}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if v == nil {
			continue
		}
		if surface, ok := v.(ScrollSurface); ok {
			return surface
		}
		queue = append(queue, v.Subviews()...)
	}
	return nil
}

// Contains reports whether descendant is ancestor or lives below it.
func Contains(ancestor, descendant View) bool {
	for v := descendant; v != nil; v = v.Superview() {
		if v == ancestor {
			return true
		}
	}
	return false
}
