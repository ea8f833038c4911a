package testing

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-drift/parallaxpager/pkg/animation"
	pagererrors "github.com/go-drift/parallaxpager/pkg/errors"
	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
	"github.com/go-drift/parallaxpager/pkg/memhost"
	"github.com/go-drift/parallaxpager/pkg/pageview"
)

const (
	// DefaultTestWidth is the default width of the pager frame.
	DefaultTestWidth = 400
	// DefaultTestHeight is the default height of the pager frame.
	DefaultTestHeight = 800
	// FrameDuration is how far PumpAndSettle advances the clock per frame.
	FrameDuration = 16 * time.Millisecond
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: scrolling did not settle")

// NotificationKind identifies which coordinator callback fired.
type NotificationKind int

const (
	NotifySelectedIndex NotificationKind = iota
	NotifyContentSize
	NotifyContentOffset
)

func (k NotificationKind) String() string {
	switch k {
	case NotifySelectedIndex:
		return "selectedIndex"
	case NotifyContentSize:
		return "contentSize"
	case NotifyContentOffset:
		return "contentOffset"
	default:
		return fmt.Sprintf("NotificationKind(%d)", int(k))
	}
}

// Notification is one recorded coordinator callback.
type Notification struct {
	Kind   NotificationKind
	Index  int
	Size   graphics.Size
	Offset graphics.Offset
}

func (n Notification) String() string {
	switch n.Kind {
	case NotifySelectedIndex:
		return fmt.Sprintf("selectedIndex(%d)", n.Index)
	case NotifyContentSize:
		return fmt.Sprintf("contentSize(%gx%g)", n.Size.Width, n.Size.Height)
	default:
		return fmt.Sprintf("contentOffset(%g,%g)", n.Offset.X, n.Offset.Y)
	}
}

// PagerTester runs a coordinator against an in-memory host with a fake
// clock, recording every notification and reported error.
type PagerTester struct {
	toolkit     *memhost.Toolkit
	container   *memhost.Container
	coordinator *pageview.Coordinator

	clock        *FakeClock
	restoreClock func()
	prevHandler  pagererrors.ErrorHandler

	size          graphics.Size
	notifications []Notification
	errs          []*pagererrors.PagerError
	panics        []*pagererrors.PanicError
}

// NewPagerTester creates a tester laid out at the default size.
// Call Cleanup when done, or use NewPagerTesterWithT instead.
func NewPagerTester(opts pageview.Options) *PagerTester {
	t := &PagerTester{
		toolkit:   memhost.NewToolkit(),
		container: memhost.NewContainer(),
		clock:     NewFakeClock(),
		size:      graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
	t.restoreClock = t.clock.Install()
	t.prevHandler = pagererrors.SetHandler(recordingHandler{t})

	t.coordinator = pageview.New(t.container, t.toolkit, opts)
	t.coordinator.AddListener(pageview.Listener{
		OnSelectedIndexChange: func(index int) {
			t.notifications = append(t.notifications, Notification{Kind: NotifySelectedIndex, Index: index})
		},
		OnContentSizeChange: func(size graphics.Size) {
			t.notifications = append(t.notifications, Notification{Kind: NotifyContentSize, Size: size})
		},
		OnContentOffsetChange: func(offset graphics.Offset) {
			t.notifications = append(t.notifications, Notification{Kind: NotifyContentOffset, Offset: offset})
		},
	})
	t.coordinator.SetFrame(graphics.RectFromLTWH(0, 0, t.size.Width, t.size.Height))
	t.notifications = nil
	return t
}

// NewPagerTesterWithT creates a tester that cleans up via t.Cleanup.
// This is the recommended constructor for tests.
func NewPagerTesterWithT(t testing.TB, opts pageview.Options) *PagerTester {
	tester := NewPagerTester(opts)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock and the error handler.
func (t *PagerTester) Cleanup() {
	for i := 0; i < 8 && animation.HasActiveTickers(); i++ {
		t.clock.Advance(time.Hour)
		animation.StepTickers()
	}
	t.restoreClock()
	pagererrors.SetHandler(t.prevHandler)
}

// Coordinator returns the coordinator under test.
func (t *PagerTester) Coordinator() *pageview.Coordinator {
	return t.coordinator
}

// Toolkit returns the toolkit that created the coordinator's views.
func (t *PagerTester) Toolkit() *memhost.Toolkit {
	return t.toolkit
}

// Container returns the parent container of the pages.
func (t *PagerTester) Container() *memhost.Container {
	return t.container
}

// Clock returns the fake clock driving animated scrolls.
func (t *PagerTester) Clock() *FakeClock {
	return t.clock
}

// Size returns the current frame size.
func (t *PagerTester) Size() graphics.Size {
	return t.size
}

// SetSize resizes the coordinator's frame and runs a layout pass.
func (t *PagerTester) SetSize(size graphics.Size) {
	t.size = size
	t.coordinator.SetFrame(graphics.RectFromLTWH(0, 0, size.Width, size.Height))
}

// Pages returns n scrollable pages titled "page-0" onward, each with
// contentHeight points of content.
func Pages(n int, contentHeight float64) []*memhost.ViewController {
	pages := make([]*memhost.ViewController, n)
	for i := range pages {
		pages[i] = memhost.NewViewController(fmt.Sprintf("page-%d", i), contentHeight)
	}
	return pages
}

// SetPages installs pages on the coordinator.
func (t *PagerTester) SetPages(pages ...*memhost.ViewController) {
	controllers := make([]host.ViewController, len(pages))
	for i, page := range pages {
		controllers[i] = page
	}
	t.coordinator.SetViewControllers(controllers)
}

// Pump advances one frame without moving the clock.
func (t *PagerTester) Pump() {
	animation.StepTickers()
}

// PumpFor advances the clock by d in frame-sized steps, pumping each frame.
func (t *PagerTester) PumpFor(d time.Duration) {
	for d > 0 {
		step := min(d, FrameDuration)
		t.clock.Advance(step)
		t.Pump()
		d -= step
	}
}

// PumpAndSettle runs frames until no animation is active or timeout is
// reached. Each frame advances the fake clock by FrameDuration.
func (t *PagerTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !animation.HasActiveTickers() {
			return nil
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

// Notifications returns every notification recorded so far.
func (t *PagerTester) Notifications() []Notification {
	return t.notifications
}

// TakeNotifications returns the recorded notifications and clears the log.
func (t *PagerTester) TakeNotifications() []Notification {
	n := t.notifications
	t.notifications = nil
	return n
}

// Errors returns the errors reported through the errors package.
func (t *PagerTester) Errors() []*pagererrors.PagerError {
	return t.errs
}

// Panics returns the recovered panics reported through the errors package.
func (t *PagerTester) Panics() []*pagererrors.PanicError {
	return t.panics
}

type recordingHandler struct {
	t *PagerTester
}

func (h recordingHandler) HandleError(err *pagererrors.PagerError) {
	h.t.errs = append(h.t.errs, err)
}

func (h recordingHandler) HandlePanic(err *pagererrors.PanicError) {
	h.t.panics = append(h.t.panics, err)
}
