package memhost

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
)

// Lifecycle event names recorded by ViewController.
const (
	EventWillAppear    = "willAppear"
	EventDidAppear     = "didAppear"
	EventWillDisappear = "willDisappear"
	EventDidDisappear  = "didDisappear"
	EventWillMove      = "willMove"
	EventDidMove       = "didMove"
	EventWillDetach    = "willDetach"
	EventDidDetach     = "didDetach"
)

// ViewController is a page that records its lifecycle.
//
// Its view is created lazily by LoadView on the first View call. The default
// loader builds a single scroll view sized by ContentHeight.
type ViewController struct {
	ID    uuid.UUID
	Title string

	// LoadView builds the root view. Nil uses the default loader.
	LoadView func(vc *ViewController) host.View
	// ContentHeight is the scrollable height used by the default loader.
	ContentHeight float64

	// Events lists every lifecycle callback in call order.
	Events []string
	// Parent is the container the controller currently belongs to.
	Parent host.Container

	view       host.View
	scroll     *ScrollView
	transition *bool
	appeared   bool
}

// NewViewController returns a page whose view is a scroll view with
// contentHeight points of content.
func NewViewController(title string, contentHeight float64) *ViewController {
	return &ViewController{
		ID:            uuid.New(),
		Title:         title,
		ContentHeight: contentHeight,
	}
}

// NewStaticViewController returns a page without any scroll surface.
func NewStaticViewController(title string) *ViewController {
	return &ViewController{
		ID:    uuid.New(),
		Title: title,
		LoadView: func(vc *ViewController) host.View {
			return NewView(vc.Title)
		},
	}
}

func (vc *ViewController) String() string {
	return fmt.Sprintf("%s(%s)", vc.Title, vc.ID.String()[:8])
}

// View returns the root view, loading it on first access.
func (vc *ViewController) View() host.View {
	if vc.view == nil {
		if vc.LoadView != nil {
			vc.view = vc.LoadView(vc)
		} else {
			scroll := NewScrollView(vc.Title)
			scroll.SetContentSize(graphics.Size{Height: vc.ContentHeight})
			vc.view = scroll
		}
		if scroll, ok := vc.view.(*ScrollView); ok {
			vc.scroll = scroll
		}
	}
	return vc.view
}

// IsViewLoaded reports whether View has been called.
func (vc *ViewController) IsViewLoaded() bool {
	return vc.view != nil
}

// ScrollView returns the root view when it is a scroll view, loading it if
// needed.
func (vc *ViewController) ScrollView() *ScrollView {
	vc.View()
	return vc.scroll
}

// IsAppeared reports whether the last completed transition was an appear.
func (vc *ViewController) IsAppeared() bool {
	return vc.appeared
}

// BeginAppearanceTransition records willAppear or willDisappear.
func (vc *ViewController) BeginAppearanceTransition(appearing, animated bool) {
	t := appearing
	vc.transition = &t
	if appearing {
		vc.record(EventWillAppear)
	} else {
		vc.record(EventWillDisappear)
	}
}

// EndAppearanceTransition records didAppear or didDisappear for the
// transition started last. Unbalanced calls are ignored.
func (vc *ViewController) EndAppearanceTransition() {
	if vc.transition == nil {
		return
	}
	appearing := *vc.transition
	vc.transition = nil
	vc.appeared = appearing
	if appearing {
		vc.record(EventDidAppear)
	} else {
		vc.record(EventDidDisappear)
	}
}

// WillMoveToParent records willMove, or willDetach when parent is nil.
func (vc *ViewController) WillMoveToParent(parent host.Container) {
	if parent == nil {
		vc.record(EventWillDetach)
		return
	}
	vc.record(EventWillMove)
}

// DidMoveToParent records didMove, or didDetach when parent is nil.
func (vc *ViewController) DidMoveToParent(parent host.Container) {
	vc.Parent = parent
	if parent == nil {
		vc.record(EventDidDetach)
		return
	}
	vc.record(EventDidMove)
}

// TakeEvents returns the recorded events and clears the log.
func (vc *ViewController) TakeEvents() []string {
	events := vc.Events
	vc.Events = nil
	return events
}

// Count returns how often event was recorded.
func (vc *ViewController) Count(event string) int {
	n := 0
	for _, e := range vc.Events {
		if e == event {
			n++
		}
	}
	return n
}

func (vc *ViewController) record(event string) {
	vc.Events = append(vc.Events, event)
}

// HasEvent reports whether event was recorded.
func (vc *ViewController) HasEvent(event string) bool {
	return slices.Contains(vc.Events, event)
}
