package pageview

import (
	"math"
	"slices"

	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
)

// presenterObserver is implemented by the coordinator.
type presenterObserver interface {
	presenterDidChangeContentSize()
	presenterDidChangeContentOffset()
}

// Slot identifies one of the presenter's decoration slots.
type Slot int

const (
	// SlotHeader is the top slot.
	SlotHeader Slot = iota
	// SlotContent is the middle slot; its height is the collapsible extent.
	SlotContent
	// SlotFooter is the bottom slot.
	SlotFooter

	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotHeader:
		return "header"
	case SlotContent:
		return "content"
	case SlotFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// Presenter hosts the parallax decorations and follows the active page.
//
// Its vertical offset and content size are derived: the offset is read from
// the active page's inner surface and the content size is the height of the
// content slot.
type Presenter struct {
	container    host.View
	slots        [slotCount]host.View
	decorations  [slotCount]host.View
	pagerSurface host.ScrollSurface
	observer     presenterObserver

	precision    float64
	clipsContent bool

	width       float64
	height      float64
	slotHeights [slotCount]float64

	rawOffset     float64
	contentOffset float64
	contentSize   graphics.Size

	items  []*Item
	active *Item
}

func newPresenter(toolkit host.Toolkit, pagerSurface host.ScrollSurface, observer presenterObserver, opts Options) *Presenter {
	p := &Presenter{
		container:    toolkit.NewView(),
		pagerSurface: pagerSurface,
		observer:     observer,
		precision:    opts.heightPrecision(),
		clipsContent: opts.ClipsContent,
	}
	for i := range p.slots {
		p.slots[i] = toolkit.NewView()
		p.container.AddSubview(p.slots[i])
	}
	p.slots[SlotContent].SetClipsToBounds(p.clipsContent)
	return p
}

// Container returns the view that holds the three slots.
func (p *Presenter) Container() host.View {
	return p.container
}

// Decoration returns the view assigned to slot, or nil.
func (p *Presenter) Decoration(slot Slot) host.View {
	return p.decorations[slot]
}

// ContentOffset returns the vertical offset, clamped to the content height.
func (p *Presenter) ContentOffset() float64 {
	return p.contentOffset
}

// ContentSize returns the collapsible extent; only Height is meaningful.
func (p *Presenter) ContentSize() graphics.Size {
	return p.contentSize
}

// ContributedInset returns the combined height of all three slots, which is
// the top inset pushed into the active page.
func (p *Presenter) ContributedInset() float64 {
	return p.height
}

// SlotHeight returns the laid-out height of slot.
func (p *Presenter) SlotHeight(slot Slot) float64 {
	return p.slotHeights[slot]
}

// ActiveItem returns the page currently hosting the parallax region.
func (p *Presenter) ActiveItem() *Item {
	return p.active
}

func (p *Presenter) hasDecorations() bool {
	for _, d := range p.decorations {
		if d != nil {
			return true
		}
	}
	return false
}

func (p *Presenter) setDecoration(slot Slot, view host.View) {
	old := p.decorations[slot]
	if old == view {
		return
	}
	if old != nil {
		old.RemoveFromSuperview()
	}
	p.decorations[slot] = view
	if view != nil {
		p.slots[slot].AddSubview(view)
		view.SetFrame(graphics.RectFromLTWH(0, 0, p.width, p.slotHeights[slot]))
	}
	p.height = 0
}

func (p *Presenter) setClipsContent(clips bool) {
	p.clipsContent = clips
	p.slots[SlotContent].SetClipsToBounds(clips)
}

// setItems records the managed pages. Every page carries the parallax inset
// so that neighbours revealed by a swipe line up with the active page.
func (p *Presenter) setItems(items []*Item) {
	p.items = items
	for _, item := range items {
		item.setParallaxInset(p.height)
	}
	if !slices.Contains(items, p.active) {
		p.active = nil
	}
}

// layoutSubviews stacks the slots and recomputes the contributed inset. It is
// a no-op while neither the width nor the summed height changed.
func (p *Presenter) layoutSubviews(width float64) {
	var heights [slotCount]float64
	total := 0.0
	for slot, d := range p.decorations {
		if d == nil {
			continue
		}
		heights[slot] = graphics.Truncate(d.IntrinsicHeight(), p.precision)
		total += heights[slot]
	}
	if p.height != 0 && total == p.height && width == p.width && heights == p.slotHeights {
		return
	}
	p.width = width
	p.height = total
	p.slotHeights = heights

	contentSize := graphics.Size{Width: width, Height: heights[SlotContent]}
	if contentSize != p.contentSize {
		p.contentSize = contentSize
		p.observer.presenterDidChangeContentSize()
	}
	for _, item := range p.items {
		item.setParallaxInset(p.height)
	}
	p.setContentOffset(p.active)
}

// setContentOffset derives the presenter's offset from item's inner surface.
func (p *Presenter) setContentOffset(item *Item) {
	if item == nil || item.ScrollSurface() == nil {
		p.positionContainer()
		return
	}
	p.rawOffset = item.contentOffsetY()
	offset := graphics.Clamp(p.rawOffset, 0, p.contentSize.Height)
	changed := offset != p.contentOffset
	p.contentOffset = offset
	p.positionContainer()
	if changed {
		p.observer.presenterDidChangeContentOffset()
	}
}

// move re-parents the container into item's inner surface, falling back to
// the pager surface when the page has none.
func (p *Presenter) move(item *Item) {
	p.active = item
	if !p.hasDecorations() {
		p.container.RemoveFromSuperview()
		return
	}
	var target host.View = p.pagerSurface
	if p.hostsInItem(item) {
		target = item.ScrollSurface()
	}
	if p.container.Superview() != target {
		target.AddSubview(p.container)
	}
	if item != nil {
		item.setParallaxInset(p.height)
	}
	p.positionContainer()
}

func (p *Presenter) hostsInItem(item *Item) bool {
	return item != nil && item.IsAttached() && item.ScrollSurface() != nil
}

// positionContainer pins the container to the top, left and right of its host.
// Inside a page it spans from the visible top down to the start of the page's
// content; the content slot gives up the collapsed distance, so once it is gone
// the header and footer stay pinned while the page scrolls beneath them.
func (p *Presenter) positionContainer() {
	superview := p.container.Superview()
	if superview == nil {
		return
	}
	if p.hostsInItem(p.active) && superview == p.active.ScrollSurface() {
		collapsed := p.contentOffset
		y := -p.height + math.Max(p.rawOffset, 0)
		p.container.SetFrame(graphics.RectFromLTWH(0, y, p.width, p.height-collapsed))
		p.layoutSlots(collapsed)
		return
	}
	x := p.pagerSurface.ContentOffset().X
	if p.active != nil {
		x = p.active.Frame().Left
	}
	p.container.SetFrame(graphics.RectFromLTWH(x, 0, p.width, p.height))
	p.layoutSlots(0)
}

// layoutSlots stacks the slots inside the container, taking collapsed points
// away from the content slot. Its decoration keeps its full height and slides
// up under the header.
func (p *Presenter) layoutSlots(collapsed float64) {
	y := 0.0
	for slot, view := range p.slots {
		height := p.slotHeights[slot]
		offset := 0.0
		if Slot(slot) == SlotContent {
			offset = collapsed
		}
		view.SetFrame(graphics.RectFromLTWH(0, y, p.width, height-offset))
		if d := p.decorations[slot]; d != nil {
			d.SetFrame(graphics.RectFromLTWH(0, -offset, p.width, height))
		}
		y += height - offset
	}
}
