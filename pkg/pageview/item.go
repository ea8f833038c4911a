package pageview

import (
	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
)

// itemObserver receives scroll events from an item's inner surface.
// Items hold it as a non-owning back reference to their coordinator.
type itemObserver interface {
	itemDidScroll(item *Item)
}

// Item is the managed state of one page.
//
// The controller is owned by the host; the item only positions its view and
// tracks the inner scroll surface while the view is attached to the pager.
type Item struct {
	controller host.ViewController
	observer   itemObserver
	fixedInset bool

	frame graphics.Rect

	// surface is valid only while the view is attached. It is re-resolved on
	// every attach and cleared on detach.
	surface       host.ScrollSurface
	stopListening func()

	// parallaxInset is the top inset the presenter wants on this page;
	// appliedInset is how much of it currently sits on surface.
	parallaxInset float64
	appliedInset  float64
}

func newItem(controller host.ViewController, observer itemObserver, fixedInset bool) *Item {
	return &Item{
		controller: controller,
		observer:   observer,
		fixedInset: fixedInset,
	}
}

// Controller returns the page's view controller.
func (it *Item) Controller() host.ViewController {
	return it.controller
}

// IsViewLoaded reports whether the controller's view has been loaded.
func (it *Item) IsViewLoaded() bool {
	return it.controller.IsViewLoaded()
}

// Frame returns the frame assigned by the pager's last layout pass.
func (it *Item) Frame() graphics.Rect {
	return it.frame
}

// ScrollSurface returns the inner scroll surface, or nil when the page is not
// attached or has no scrollable content.
func (it *Item) ScrollSurface() host.ScrollSurface {
	return it.surface
}

// ParallaxInset returns the top inset currently applied to the inner surface.
func (it *Item) ParallaxInset() float64 {
	return it.appliedInset
}

// IsAttached reports whether the page's view is in a view hierarchy.
func (it *Item) IsAttached() bool {
	return it.controller.IsViewLoaded() && it.controller.View().Superview() != nil
}

func (it *Item) setFrame(frame graphics.Rect) {
	it.frame = frame
	if it.controller.IsViewLoaded() {
		it.controller.View().SetFrame(frame)
	}
}

func (it *Item) attach(container host.View) {
	view := it.controller.View()
	if view.Superview() != container {
		container.AddSubview(view)
	}
	view.SetFrame(it.frame)
	it.resolveSurface()
}

func (it *Item) detach() {
	it.releaseSurface()
	if it.controller.IsViewLoaded() {
		it.controller.View().RemoveFromSuperview()
	}
}

func (it *Item) resolveSurface() {
	surface := host.FindScrollSurface(it.controller)
	if surface != nil && surface == it.surface {
		it.applyInset()
		return
	}
	it.releaseSurface()
	if surface == nil {
		return
	}
	it.surface = surface
	it.stopListening = surface.AddScrollListener(host.ScrollListener{
		OnScroll: func() {
			it.observer.itemDidScroll(it)
		},
	})
	it.applyInset()
}

func (it *Item) releaseSurface() {
	if it.stopListening != nil {
		it.stopListening()
		it.stopListening = nil
	}
	if it.surface != nil {
		it.setSurfaceInset(0)
	}
	it.surface = nil
	it.appliedInset = 0
}

func (it *Item) setParallaxInset(top float64) {
	it.parallaxInset = top
	it.applyInset()
}

func (it *Item) applyInset() {
	if it.surface == nil {
		return
	}
	it.setSurfaceInset(it.parallaxInset)
}

// setSurfaceInset replaces the applied parallax inset on the surface without
// touching any inset the page configured itself.
func (it *Item) setSurfaceInset(top float64) {
	delta := top - it.appliedInset
	if delta == 0 {
		return
	}
	offset := it.surface.ContentOffset()
	inset := it.surface.ContentInset()
	inset.Top += delta
	it.appliedInset = top
	it.surface.SetContentInset(inset)
	if !it.fixedInset {
		it.surface.SetContentOffset(graphics.Offset{X: offset.X, Y: offset.Y - delta}, false)
	}
}

// contentOffsetY returns the vertical offset measured from the top of the
// parallax region.
func (it *Item) contentOffsetY() float64 {
	if it.surface == nil {
		return 0
	}
	return it.surface.ContentOffset().Y + it.surface.ContentInset().Top
}

func (it *Item) setContentOffsetY(y float64, animated bool) {
	if it.surface == nil {
		return
	}
	current := it.surface.ContentOffset()
	it.surface.SetContentOffset(graphics.Offset{
		X: current.X,
		Y: y - it.surface.ContentInset().Top,
	}, animated)
}
