package pageview

import (
	"slices"

	"github.com/go-drift/parallaxpager/pkg/errors"
	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
)

// Coordinator reconciles the pager's horizontal offset and the presenter's
// vertical offset into one content offset and content size, and is the only
// component that notifies the host.
//
// View controllers are matched by identity, so they must be comparable
// (pointer types in practice).
type Coordinator struct {
	parent host.Container
	opts   Options

	root         host.View
	background   host.View
	overlay      host.View
	pagerSurface host.ScrollSurface

	pager    *Pager
	parallax *Presenter

	controllers []host.ViewController
	items       map[host.ViewController]*Item

	pending         changeSet
	mergeDepth      int
	applyingChanges bool
	needsOffsetSync bool
	inLayout        bool

	notifiedIndex  int
	notifiedSize   graphics.Size
	notifiedOffset graphics.Offset

	listeners      map[int]Listener
	nextListenerID int
}

// New creates a coordinator whose pages become children of parent. Views
// owned by the coordinator are created through toolkit.
func New(parent host.Container, toolkit host.Toolkit, opts Options) *Coordinator {
	c := &Coordinator{
		parent: parent,
		opts:   opts,
		root:   toolkit.NewView(),
		items:  make(map[host.ViewController]*Item),
	}
	c.pagerSurface = toolkit.NewScrollSurface(true)
	c.root.AddSubview(c.pagerSurface)
	c.pager = newPager(c.pagerSurface, parent, c)
	c.parallax = newPresenter(toolkit, c.pagerSurface, c, opts)
	return c
}

// View returns the root view to embed in the host hierarchy.
func (c *Coordinator) View() host.View {
	return c.root
}

// Pager returns the horizontal pager.
func (c *Coordinator) Pager() *Pager {
	return c.pager
}

// Parallax returns the parallax presenter.
func (c *Coordinator) Parallax() *Presenter {
	return c.parallax
}

// ViewControllers returns the current page list.
func (c *Coordinator) ViewControllers() []host.ViewController {
	return slices.Clone(c.controllers)
}

// Item returns the managed item for vc, or nil when vc is not a page.
func (c *Coordinator) Item(vc host.ViewController) *Item {
	return c.items[vc]
}

// SetViewControllers replaces the page list. Items of controllers that were
// already pages are reused, preserving their scroll position; dropped
// controllers are detached and removed from the parent.
func (c *Coordinator) SetViewControllers(controllers []host.ViewController) {
	c.performWithoutContentChanges(func() {
		items := make([]*Item, 0, len(controllers))
		next := make(map[host.ViewController]*Item, len(controllers))
		c.controllers = c.controllers[:0:0]
		for _, vc := range controllers {
			if vc == nil {
				continue
			}
			if _, dup := next[vc]; dup {
				errors.Precondition("pageview.SetViewControllers", errors.ErrDuplicateController)
				continue
			}
			item := c.items[vc]
			if item == nil {
				item = newItem(vc, c, c.opts.FixedOffsetOnInsetChange)
			}
			next[vc] = item
			items = append(items, item)
			c.controllers = append(c.controllers, vc)
		}
		c.items = next
		c.pager.setItems(items)
		c.parallax.setItems(items)
		c.updateActiveItem()
	})
}

// SelectedIndex returns the index of the selected page.
func (c *Coordinator) SelectedIndex() int {
	return c.pager.SelectedIndex()
}

// SetSelectedIndex scrolls to the page at index. Out-of-range indices are
// ignored. An animated change is reported once the scroll settles.
func (c *Coordinator) SetSelectedIndex(index int, animated bool) {
	c.performWithoutContentChanges(func() {
		c.pager.setSelectedIndex(index, animated)
		c.updateActiveItem()
	})
}

// ContentOffset returns the unified offset: x from the pager, y from the
// parallax presenter.
func (c *Coordinator) ContentOffset() graphics.Offset {
	return graphics.Offset{
		X: c.pager.ContentOffset().X,
		Y: c.parallax.ContentOffset(),
	}
}

// ContentSize returns the unified size: the pager's content width and the
// parallax content height. It is zero while there are no pages.
func (c *Coordinator) ContentSize() graphics.Size {
	if len(c.controllers) == 0 {
		return graphics.Size{}
	}
	return graphics.Size{
		Width:  c.pager.ContentSize().Width,
		Height: c.parallax.ContentSize().Height,
	}
}

// SetContentOffset applies x to the pager and y to the active page's inner
// surface. y is clamped to the parallax content height. An animated selection
// still in flight is cancelled.
func (c *Coordinator) SetContentOffset(offset graphics.Offset, animated bool) {
	c.performWithoutContentChanges(func() {
		if offset.X != c.pager.ContentOffset().X || c.pager.IsSelectionLocked() {
			c.pager.setContentOffsetX(offset.X, animated)
			c.markDirty(changeContentOffset)
			c.updateActiveItem()
		}
		item := c.parallax.ActiveItem()
		if item == nil || item.ScrollSurface() == nil {
			return
		}
		y := graphics.Clamp(offset.Y, 0, c.parallax.ContentSize().Height)
		if y != c.parallax.ContentOffset() {
			item.setContentOffsetY(y, animated)
			c.needsOffsetSync = true
		}
	})
}

// SetFrame positions the root view and runs a layout pass.
func (c *Coordinator) SetFrame(frame graphics.Rect) {
	c.performWithoutContentChanges(func() {
		c.root.SetFrame(frame)
		c.layoutSubviews()
	})
}

// LayoutSubviews runs a layout pass with the current root frame.
func (c *Coordinator) LayoutSubviews() {
	c.performWithoutContentChanges(c.layoutSubviews)
}

func (c *Coordinator) layoutSubviews() {
	c.inLayout = true
	defer func() { c.inLayout = false }()

	size := c.root.Frame().Size()
	bounds := graphics.RectFromLTWH(0, 0, size.Width, size.Height)
	c.pagerSurface.SetFrame(bounds)
	if c.background != nil {
		c.background.SetFrame(bounds)
	}
	if c.overlay != nil {
		c.overlay.SetFrame(bounds)
	}
	c.pager.layoutSubviews()
	c.parallax.layoutSubviews(size.Width)
	c.updateActiveItem()
}

// SetHeader replaces the header decoration. Passing nil clears it.
func (c *Coordinator) SetHeader(view host.View) {
	c.setDecoration("pageview.SetHeader", SlotHeader, view)
}

// SetContent replaces the collapsible content decoration.
func (c *Coordinator) SetContent(view host.View) {
	c.setDecoration("pageview.SetContent", SlotContent, view)
}

// SetFooter replaces the footer decoration.
func (c *Coordinator) SetFooter(view host.View) {
	c.setDecoration("pageview.SetFooter", SlotFooter, view)
}

// SetClipsContent toggles the clipping mask of the content slot.
func (c *Coordinator) SetClipsContent(clips bool) {
	c.parallax.setClipsContent(clips)
}

func (c *Coordinator) setDecoration(op string, slot Slot, view host.View) {
	// Decorations must not change while a layout pass is running.
	if c.inLayout {
		errors.Precondition(op, errors.ErrLayoutInProgress)
		return
	}
	c.performWithoutContentChanges(func() {
		c.parallax.setDecoration(slot, view)
		c.parallax.layoutSubviews(c.root.Frame().Width())
		c.updateActiveItem()
	})
}

// SetOverlay places view above the pages, filling the root view.
func (c *Coordinator) SetOverlay(view host.View) {
	if c.overlay != nil {
		c.overlay.RemoveFromSuperview()
	}
	c.overlay = view
	if view != nil {
		c.root.AddSubview(view)
		view.SetFrame(graphics.RectFromLTWH(0, 0, c.root.Frame().Width(), c.root.Frame().Height()))
	}
}

// SetBackground places view below the pages, filling the root view.
func (c *Coordinator) SetBackground(view host.View) {
	if c.background != nil {
		c.background.RemoveFromSuperview()
	}
	c.background = view
	if view != nil {
		c.root.InsertSubviewAt(view, 0)
		view.SetFrame(graphics.RectFromLTWH(0, 0, c.root.Frame().Width(), c.root.Frame().Height()))
	}
}

// updateActiveItem makes the selected page host the parallax region.
func (c *Coordinator) updateActiveItem() {
	item := c.pager.selectedItem()
	previous := c.parallax.ActiveItem()
	c.parallax.move(item)
	if item != nil && item != previous && previous != nil {
		c.alignOffset(item)
	}
	c.parallax.setContentOffset(item)
}

// alignOffset scrolls a newly active page so the parallax region keeps its
// collapse state instead of jumping to the page's own position.
func (c *Coordinator) alignOffset(item *Item) {
	if item.ScrollSurface() == nil || !c.parallax.hasDecorations() {
		return
	}
	current := c.parallax.ContentOffset()
	limit := c.parallax.ContentSize().Height
	y := item.contentOffsetY()
	if y == current || (y >= limit && current >= limit) {
		return
	}
	item.setContentOffsetY(current, false)
}

func (c *Coordinator) itemDidScroll(item *Item) {
	if item != c.parallax.ActiveItem() {
		return
	}
	if c.applyingChanges {
		c.needsOffsetSync = true
		return
	}
	c.performWithoutContentChanges(func() {
		c.parallax.setContentOffset(item)
	})
}

func (c *Coordinator) pagerDidScroll() {
	c.performWithoutContentChanges(func() {
		c.pager.updateWindow(c.pager.ContentOffset())
		c.markDirty(changeContentOffset)
		c.updateActiveItem()
	})
}

func (c *Coordinator) pagerDidEndScrolling() {
	c.performWithoutContentChanges(func() {
		c.pager.scrollDidEnd()
		c.markDirty(changeSelectedIndex)
		c.updateActiveItem()
	})
}

func (c *Coordinator) pagerDidChangeContentSize() {
	c.markDirty(changeContentSize)
}

func (c *Coordinator) pagerDidChangeSelectedIndex() {
	c.markDirty(changeSelectedIndex)
}

func (c *Coordinator) presenterDidChangeContentSize() {
	c.markDirty(changeContentSize)
}

func (c *Coordinator) presenterDidChangeContentOffset() {
	c.markDirty(changeContentOffset)
}
