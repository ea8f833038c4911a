package testing

import (
	"fmt"

	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/memhost"
)

// PagerSurface returns the coordinator's paging scroll view.
func (t *PagerTester) PagerSurface() *memhost.ScrollView {
	return t.coordinator.Pager().Surface().(*memhost.ScrollView)
}

// ActiveSurface returns the inner scroll view of the page hosting the
// parallax region, or nil.
func (t *PagerTester) ActiveSurface() *memhost.ScrollView {
	item := t.coordinator.Parallax().ActiveItem()
	if item == nil {
		return nil
	}
	surface, _ := item.ScrollSurface().(*memhost.ScrollView)
	return surface
}

// ScrollPagerBy moves the pager's offset by dx as a user drag would, without
// lifting the finger.
func (t *PagerTester) ScrollPagerBy(dx float64) {
	t.PagerSurface().ScrollBy(graphics.Offset{X: dx})
}

// SwipePager drags the pager by dx and releases, letting it snap to the
// nearest page.
func (t *PagerTester) SwipePager(dx float64) {
	surface := t.PagerSurface()
	surface.ScrollBy(graphics.Offset{X: dx})
	surface.EndDragging()
}

// ScrollActivePageBy drags the active page's inner surface vertically by dy
// and releases.
func (t *PagerTester) ScrollActivePageBy(dy float64) error {
	surface := t.ActiveSurface()
	if surface == nil {
		return fmt.Errorf("ScrollActivePageBy: active page has no scroll surface")
	}
	surface.ScrollBy(graphics.Offset{Y: dy})
	surface.EndDragging()
	return nil
}

// ScrollPage drags page's inner surface vertically by dy and releases.
func (t *PagerTester) ScrollPage(page *memhost.ViewController, dy float64) error {
	surface := page.ScrollView()
	if surface == nil {
		return fmt.Errorf("ScrollPage: %s has no scroll surface", page)
	}
	surface.ScrollBy(graphics.Offset{Y: dy})
	surface.EndDragging()
	return nil
}
