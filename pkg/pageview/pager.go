package pageview

import (
	"math"
	"slices"

	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
)

// pagerObserver is implemented by the coordinator.
type pagerObserver interface {
	pagerDidScroll()
	pagerDidEndScrolling()
	pagerDidChangeContentSize()
	pagerDidChangeSelectedIndex()
}

// IndexRange is a closed interval of page indices. It is empty when Last is
// smaller than First.
type IndexRange struct {
	First int
	Last  int
}

var emptyRange = IndexRange{First: 0, Last: -1}

// IsEmpty reports whether the range holds no index.
func (r IndexRange) IsEmpty() bool {
	return r.Last < r.First
}

// Contains reports whether index lies within the range.
func (r IndexRange) Contains(index int) bool {
	return index >= r.First && index <= r.Last
}

// Len returns the number of indices in the range.
func (r IndexRange) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Last - r.First + 1
}

// Pager lays pages out side by side on a paging scroll surface and keeps the
// pages inside the visible window attached and appeared.
type Pager struct {
	surface  host.ScrollSurface
	parent   host.Container
	observer pagerObserver

	items        []*Item
	visible      IndexRange
	visibleItems []*Item

	// An item is in at most one of these while its transition is in flight.
	appearing    map[*Item]struct{}
	disappearing map[*Item]struct{}

	selectedIndex int
	locked        bool

	cachedSize    graphics.Size
	lastOffsetX   float64
	hasLastOffset bool
	contentSize   graphics.Size
}

func newPager(surface host.ScrollSurface, parent host.Container, observer pagerObserver) *Pager {
	p := &Pager{
		surface:      surface,
		parent:       parent,
		observer:     observer,
		visible:      emptyRange,
		appearing:    make(map[*Item]struct{}),
		disappearing: make(map[*Item]struct{}),
		cachedSize:   graphics.Size{Width: -1, Height: -1},
	}
	surface.AddScrollListener(host.ScrollListener{
		OnScroll:    observer.pagerDidScroll,
		OnScrollEnd: observer.pagerDidEndScrolling,
	})
	return p
}

// Surface returns the paging scroll surface.
func (p *Pager) Surface() host.ScrollSurface {
	return p.surface
}

// Items returns the managed pages in order.
func (p *Pager) Items() []*Item {
	return slices.Clone(p.items)
}

// SelectedIndex returns the index of the page nearest to the current offset.
func (p *Pager) SelectedIndex() int {
	return p.selectedIndex
}

// VisibleRange returns the window of pages currently attached.
func (p *Pager) VisibleRange() IndexRange {
	return p.visible
}

// ContentSize returns the size of the paging surface's content.
func (p *Pager) ContentSize() graphics.Size {
	return p.contentSize
}

// ContentOffset returns the paging surface's offset.
func (p *Pager) ContentOffset() graphics.Offset {
	return p.surface.ContentOffset()
}

// IsSelectionLocked reports whether an animated selection is in flight.
func (p *Pager) IsSelectionLocked() bool {
	return p.locked
}

// IsAppearing reports whether item has an appear transition in flight.
func (p *Pager) IsAppearing(item *Item) bool {
	_, ok := p.appearing[item]
	return ok
}

// IsDisappearing reports whether item has a disappear transition in flight.
func (p *Pager) IsDisappearing(item *Item) bool {
	_, ok := p.disappearing[item]
	return ok
}

func (p *Pager) selectedItem() *Item {
	if p.selectedIndex < 0 || p.selectedIndex >= len(p.items) {
		return nil
	}
	return p.items[p.selectedIndex]
}

func (p *Pager) pageWidth() float64 {
	return p.cachedSize.Width
}

func (p *Pager) setItems(items []*Item) {
	selected := p.selectedItem()

	kept := make(map[*Item]struct{}, len(items))
	for _, item := range items {
		kept[item] = struct{}{}
	}
	visible := p.visibleItems[:0:0]
	for _, item := range p.visibleItems {
		if _, ok := kept[item]; ok {
			visible = append(visible, item)
			continue
		}
		p.hide(item)
	}
	p.visibleItems = visible
	p.items = slices.Clone(items)

	index := slices.Index(p.items, selected)
	if selected == nil || index < 0 {
		index = min(p.selectedIndex, len(p.items)-1)
	}
	p.setSelected(max(index, 0))

	p.cachedSize = graphics.Size{Width: -1, Height: -1}
	p.layoutSubviews()
}

// layoutSubviews frames the pages for the surface's size. Only a width change
// moves the surface back onto the selected page; a height change reframes the
// pages in place.
func (p *Pager) layoutSubviews() {
	size := p.surface.Frame().Size()
	if size == p.cachedSize {
		return
	}
	widthChanged := size.Width != p.cachedSize.Width
	p.cachedSize = size

	for i, item := range p.items {
		item.setFrame(graphics.RectFromLTWH(float64(i)*size.Width, 0, size.Width, size.Height))
	}
	if !widthChanged {
		return
	}

	contentSize := graphics.Size{Width: size.Width * float64(len(p.items))}
	if contentSize != p.contentSize {
		p.contentSize = contentSize
		p.surface.SetContentSize(contentSize)
		p.observer.pagerDidChangeContentSize()
	}
	p.applySelection()
}

// applySelection moves the surface onto the selected page and re-derives the
// visible window from wherever the surface ended up.
func (p *Pager) applySelection() {
	p.locked = false
	p.hasLastOffset = false
	current := p.surface.ContentOffset()
	if len(p.items) == 0 {
		p.surface.SetContentOffset(graphics.Offset{Y: current.Y}, false)
		p.applyWindow(emptyRange)
		return
	}
	if p.pageWidth() <= 0 {
		p.applyWindow(emptyRange)
		return
	}
	p.surface.SetContentOffset(graphics.Offset{
		X: p.pageWidth() * float64(p.selectedIndex),
		Y: current.Y,
	}, false)
	p.updateWindow(p.surface.ContentOffset())
}

// setSelectedIndex scrolls to the page at index. A call made while an
// animated selection is in flight replaces it, even when index is the page
// the offset currently rounds to.
func (p *Pager) setSelectedIndex(index int, animated bool) {
	if index < 0 || index >= len(p.items) {
		return
	}
	if index == p.selectedIndex && !p.locked {
		return
	}
	if p.pageWidth() <= 0 {
		// Not laid out yet; the first layout pass scrolls to it.
		p.setSelected(index)
		return
	}
	current := p.surface.ContentOffset()
	target := graphics.Offset{X: p.pageWidth() * float64(index), Y: current.Y}
	animated = animated && target != current
	// A cancelled animation never reports a scroll end.
	p.locked = animated
	p.surface.SetContentOffset(target, animated)
	p.updateWindow(p.surface.ContentOffset())
}

func (p *Pager) setContentOffsetX(x float64, animated bool) {
	maxX := math.Max(0, p.contentSize.Width-p.pageWidth())
	current := p.surface.ContentOffset()
	target := graphics.Offset{X: graphics.Clamp(x, 0, maxX), Y: current.Y}
	if target == current && !p.locked {
		return
	}
	p.locked = false
	p.surface.SetContentOffset(target, animated && target != current)
	p.updateWindow(p.surface.ContentOffset())
}

func (p *Pager) scrollDidEnd() {
	p.locked = false
	p.hasLastOffset = false
	p.updateWindow(p.surface.ContentOffset())
}

// updateWindow re-derives the visible window and selection from a horizontal
// offset. Calls with an unchanged x are ignored.
func (p *Pager) updateWindow(offset graphics.Offset) {
	if p.hasLastOffset && offset.X == p.lastOffsetX {
		return
	}
	p.lastOffsetX = offset.X
	p.hasLastOffset = true

	window := p.windowFor(offset.X)
	p.applyWindow(window)
	if !window.IsEmpty() {
		p.setSelected(p.nearestIndex(offset.X))
	}
}

func (p *Pager) windowFor(x float64) IndexRange {
	count := len(p.items)
	width := p.pageWidth()
	if count == 0 || width <= 0 {
		return emptyRange
	}
	position := snapToPage(x / width)
	return IndexRange{
		First: clampIndex(int(math.Floor(position)), count),
		Last:  clampIndex(int(math.Ceil(position)), count),
	}
}

func (p *Pager) nearestIndex(x float64) int {
	return clampIndex(int(math.Round(snapToPage(x/p.pageWidth()))), len(p.items))
}

func (p *Pager) applyWindow(window IndexRange) {
	var next []*Item
	for i := window.First; i <= window.Last; i++ {
		next = append(next, p.items[i])
	}
	previous := p.visibleItems

	for _, item := range previous {
		if !slices.Contains(next, item) {
			p.hide(item)
		}
	}
	for _, item := range next {
		if !slices.Contains(previous, item) {
			p.show(item)
		}
	}
	if len(next) > 1 {
		// The page the user is leaving starts to disappear as soon as its
		// neighbour becomes visible.
		for _, item := range next {
			if slices.Contains(previous, item) && !p.inTransition(item) {
				p.disappearing[item] = struct{}{}
				item.controller.BeginAppearanceTransition(false, false)
			}
		}
	}
	if len(next) == 1 {
		p.settle(next[0])
	}

	p.visible = window
	p.visibleItems = next
}

func (p *Pager) inTransition(item *Item) bool {
	return p.IsAppearing(item) || p.IsDisappearing(item)
}

func (p *Pager) show(item *Item) {
	vc := item.controller
	p.parent.AddChild(vc)
	item.attach(p.surface)
	vc.DidMoveToParent(p.parent)

	delete(p.disappearing, item)
	p.appearing[item] = struct{}{}
	vc.BeginAppearanceTransition(true, false)
}

func (p *Pager) hide(item *Item) {
	vc := item.controller
	switch {
	case p.IsAppearing(item):
		delete(p.appearing, item)
		vc.BeginAppearanceTransition(false, false)
		vc.EndAppearanceTransition()
	case p.IsDisappearing(item):
		delete(p.disappearing, item)
		vc.EndAppearanceTransition()
	default:
		vc.BeginAppearanceTransition(false, false)
		vc.EndAppearanceTransition()
	}

	vc.WillMoveToParent(nil)
	item.detach()
	p.parent.RemoveChild(vc)
	p.parent.SetNeedsStatusBarAppearanceUpdate()
}

// settle finalizes every transition once a single page fills the viewport.
func (p *Pager) settle(item *Item) {
	switch {
	case p.IsAppearing(item):
		delete(p.appearing, item)
		item.controller.EndAppearanceTransition()
	case p.IsDisappearing(item):
		delete(p.disappearing, item)
		item.controller.BeginAppearanceTransition(true, false)
		item.controller.EndAppearanceTransition()
	}
	for other := range p.appearing {
		delete(p.appearing, other)
		other.controller.BeginAppearanceTransition(false, false)
		other.controller.EndAppearanceTransition()
	}
	for other := range p.disappearing {
		delete(p.disappearing, other)
		other.controller.EndAppearanceTransition()
	}
}

func (p *Pager) setSelected(index int) {
	if index == p.selectedIndex {
		return
	}
	p.selectedIndex = index
	p.observer.pagerDidChangeSelectedIndex()
}

func clampIndex(index, count int) int {
	return max(0, min(index, count-1))
}

// snapToPage removes floating-point noise so that an offset sitting on a page
// boundary yields a single visible page.
func snapToPage(position float64) float64 {
	if rounded := math.Round(position); math.Abs(position-rounded) < 1e-6 {
		return rounded
	}
	return position
}
