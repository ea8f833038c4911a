package memhost

import (
	"maps"
	"math"
	"slices"
	"time"

	"github.com/go-drift/parallaxpager/pkg/animation"
	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
)

// DefaultScrollDuration is the length of an animated SetContentOffset.
const DefaultScrollDuration = 300 * time.Millisecond

// ScrollView is an in-memory scroll surface.
//
// Programmatic offsets are applied as given; only user-style scrolling through
// ScrollBy is clamped to the scrollable range. Animated offsets advance on
// every animation.StepTickers call.
type ScrollView struct {
	*View

	// Paging makes EndDragging snap to the nearest page.
	Paging bool
	// Duration overrides DefaultScrollDuration when positive.
	Duration time.Duration

	offset      graphics.Offset
	inset       graphics.EdgeInsets
	contentSize graphics.Size

	listeners      map[int]host.ScrollListener
	nextListenerID int

	controller *animation.Controller
	animFrom   graphics.Offset
	animTo     graphics.Offset
}

// NewScrollView returns a detached scroll view.
func NewScrollView(name string) *ScrollView {
	s := &ScrollView{
		View:      NewView(name),
		listeners: make(map[int]host.ScrollListener),
	}
	s.View.self = s
	return s
}

// ContentOffset returns the current offset.
func (s *ScrollView) ContentOffset() graphics.Offset {
	return s.offset
}

// SetContentOffset moves the visible region, cancelling any running animation.
// An animated call that does not move still reports a scroll end.
func (s *ScrollView) SetContentOffset(offset graphics.Offset, animated bool) {
	s.stopAnimation()
	if !animated {
		s.setOffset(offset)
		return
	}
	if offset == s.offset {
		s.notifyScrollEnd()
		return
	}
	duration := s.Duration
	if duration <= 0 {
		duration = DefaultScrollDuration
	}
	s.animFrom = s.offset
	s.animTo = offset
	s.controller = animation.NewController(duration)
	controller := s.controller
	controller.AddListener(func() {
		s.setOffset(animation.LerpOffset(s.animFrom, s.animTo, controller.Progress))
	})
	controller.AddStatusListener(func(status animation.Status) {
		if status != animation.StatusCompleted {
			return
		}
		if s.controller == controller {
			s.controller = nil
		}
		s.notifyScrollEnd()
	})
	controller.Start()
}

// IsAnimating reports whether an animated offset change is running.
func (s *ScrollView) IsAnimating() bool {
	return s.controller != nil && s.controller.IsRunning()
}

func (s *ScrollView) stopAnimation() {
	if s.controller == nil {
		return
	}
	s.controller.Dispose()
	s.controller = nil
}

// ContentInset returns the content inset.
func (s *ScrollView) ContentInset() graphics.EdgeInsets {
	return s.inset
}

// SetContentInset replaces the content inset. The offset is left as is.
func (s *ScrollView) SetContentInset(inset graphics.EdgeInsets) {
	s.inset = inset
}

// ContentSize returns the content size.
func (s *ScrollView) ContentSize() graphics.Size {
	return s.contentSize
}

// SetContentSize replaces the content size. The offset is left as is.
func (s *ScrollView) SetContentSize(size graphics.Size) {
	s.contentSize = size
}

// AddScrollListener registers a listener and returns its remover.
func (s *ScrollView) AddScrollListener(listener host.ScrollListener) func() {
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener
	return func() {
		delete(s.listeners, id)
	}
}

// ListenerCount returns the number of registered listeners.
func (s *ScrollView) ListenerCount() int {
	return len(s.listeners)
}

// MinOffset returns the smallest offset reachable by dragging.
func (s *ScrollView) MinOffset() graphics.Offset {
	return graphics.Offset{X: -s.inset.Left, Y: -s.inset.Top}
}

// MaxOffset returns the largest offset reachable by dragging.
func (s *ScrollView) MaxOffset() graphics.Offset {
	size := s.Frame().Size()
	return graphics.Offset{
		X: math.Max(-s.inset.Left, s.contentSize.Width+s.inset.Right-size.Width),
		Y: math.Max(-s.inset.Top, s.contentSize.Height+s.inset.Bottom-size.Height),
	}
}

// ScrollBy simulates a user drag by delta, clamped to the scrollable range.
func (s *ScrollView) ScrollBy(delta graphics.Offset) {
	s.stopAnimation()
	lo, hi := s.MinOffset(), s.MaxOffset()
	s.setOffset(graphics.Offset{
		X: graphics.Clamp(s.offset.X+delta.X, lo.X, hi.X),
		Y: graphics.Clamp(s.offset.Y+delta.Y, lo.Y, hi.Y),
	})
}

// EndDragging simulates the end of a user gesture. Paging views snap to the
// nearest page first; the scroll end is reported once the offset is final.
func (s *ScrollView) EndDragging() {
	if s.Paging {
		if width := s.Frame().Width(); width > 0 {
			page := math.Round(s.offset.X / width)
			s.setOffset(graphics.Offset{X: page * width, Y: s.offset.Y})
		}
	}
	s.notifyScrollEnd()
}

func (s *ScrollView) setOffset(offset graphics.Offset) {
	if offset == s.offset {
		return
	}
	s.offset = offset
	s.each(func(l host.ScrollListener) {
		if l.OnScroll != nil {
			l.OnScroll()
		}
	})
}

func (s *ScrollView) notifyScrollEnd() {
	s.each(func(l host.ScrollListener) {
		if l.OnScrollEnd != nil {
			l.OnScrollEnd()
		}
	})
}

func (s *ScrollView) each(call func(host.ScrollListener)) {
	for _, id := range slices.Sorted(maps.Keys(s.listeners)) {
		if listener, ok := s.listeners[id]; ok {
			call(listener)
		}
	}
}
