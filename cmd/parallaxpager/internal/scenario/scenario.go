// Package scenario runs scripted pager sessions against the in-memory host.
package scenario

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-drift/parallaxpager/cmd/parallaxpager/internal/config"
	"github.com/go-drift/parallaxpager/pkg/animation"
	"github.com/go-drift/parallaxpager/pkg/errors"
	"github.com/go-drift/parallaxpager/pkg/graphics"
	"github.com/go-drift/parallaxpager/pkg/host"
	"github.com/go-drift/parallaxpager/pkg/memhost"
	"github.com/go-drift/parallaxpager/pkg/pageview"
)

// SettleTimeout bounds a settle step.
const SettleTimeout = 10 * time.Second

// ErrSettleTimeout is returned when a settle step runs out of frames.
var ErrSettleTimeout = fmt.Errorf("scrolling did not settle within %v", SettleTimeout)

// World is a coordinator built from a resolved scenario on the in-memory
// host. It records every notification and reported error. It is not safe
// for concurrent use.
type World struct {
	cfg         *config.Resolved
	toolkit     *memhost.Toolkit
	container   *memhost.Container
	coordinator *pageview.Coordinator
	pages       []*memhost.ViewController

	// clock is nil for a live world, which runs on wall time.
	clock        *stepClock
	restoreClock func()
	prevHandler  errors.ErrorHandler

	notes  []string
	errs   []*errors.PagerError
	panics []*errors.PanicError
}

// New builds a world whose animations advance only with its frames, so the
// same steps always produce the same log. Close must be called to restore
// the animation clock and error handler.
func New(cfg *config.Resolved) *World {
	return newWorld(cfg, &stepClock{now: epoch})
}

// NewLive builds a world whose animations run on wall time. Tick still has
// to be called every frame to step them.
func NewLive(cfg *config.Resolved) *World {
	return newWorld(cfg, nil)
}

func newWorld(cfg *config.Resolved, clock *stepClock) *World {
	w := &World{
		cfg:          cfg,
		toolkit:      memhost.NewToolkit(),
		container:    memhost.NewContainer(),
		clock:        clock,
		restoreClock: func() {},
	}
	if clock != nil {
		w.restoreClock = clock.install()
	}
	w.prevHandler = errors.SetHandler(w)

	c := pageview.New(w.container, w.toolkit, cfg.Options)
	w.coordinator = c
	c.AddListener(pageview.Listener{
		OnSelectedIndexChange: func(index int) {
			w.note("selectedIndex(%d)", index)
		},
		OnContentSizeChange: func(size graphics.Size) {
			w.note("contentSize(%gx%g)", size.Width, size.Height)
		},
		OnContentOffsetChange: func(offset graphics.Offset) {
			w.note("contentOffset(%g,%g)", offset.X, offset.Y)
		},
	})
	c.SetFrame(graphics.RectFromLTWH(0, 0, cfg.Width, cfg.Height))

	if d := cfg.Decorations.Header; d != nil {
		c.SetHeader(w.decoration("header", d))
	}
	if d := cfg.Decorations.Content; d != nil {
		c.SetContent(w.decoration("content", d))
	}
	if d := cfg.Decorations.Footer; d != nil {
		c.SetFooter(w.decoration("footer", d))
	}

	controllers := make([]host.ViewController, 0, len(cfg.Pages))
	for _, page := range cfg.Pages {
		var vc *memhost.ViewController
		if page.Static {
			vc = memhost.NewStaticViewController(page.Title)
		} else {
			vc = memhost.NewViewController(page.Title, page.ContentHeight)
		}
		w.pages = append(w.pages, vc)
		controllers = append(controllers, vc)
	}
	c.SetViewControllers(controllers)
	return w
}

func (w *World) decoration(slot string, d *config.ViewConfig) host.View {
	name := d.Name
	if name == "" {
		name = slot
	}
	if d.Text == "" {
		return memhost.NewSizedView(name, d.Height)
	}
	label := memhost.NewLabel(name, d.Text)
	label.WrapWidth = w.cfg.Width
	label.Padding = d.Padding
	return label
}

func (w *World) note(format string, args ...any) {
	w.notes = append(w.notes, fmt.Sprintf(format, args...))
}

// HandleError records a precondition report.
func (w *World) HandleError(err *errors.PagerError) {
	w.errs = append(w.errs, err)
}

// HandlePanic records a recovered listener panic.
func (w *World) HandlePanic(err *errors.PanicError) {
	w.panics = append(w.panics, err)
}

// Close finishes running animations and restores global state changed by
// New.
func (w *World) Close() {
	if w.clock != nil {
		for i := 0; i < 8 && animation.HasActiveTickers(); i++ {
			w.clock.now = w.clock.now.Add(time.Hour)
			animation.StepTickers()
		}
	}
	w.restoreClock()
	errors.SetHandler(w.prevHandler)
}

// Config returns the scenario the world was built from.
func (w *World) Config() *config.Resolved {
	return w.cfg
}

// Coordinator returns the coordinator the world drives.
func (w *World) Coordinator() *pageview.Coordinator {
	return w.coordinator
}

// Pages returns the page controllers in order.
func (w *World) Pages() []*memhost.ViewController {
	return w.pages
}

// TakeNotifications returns the notifications recorded since the last call,
// formatted like "selectedIndex(1)".
func (w *World) TakeNotifications() []string {
	notes := w.notes
	w.notes = nil
	return notes
}

// Errors returns the precondition reports recorded so far.
func (w *World) Errors() []*errors.PagerError {
	return w.errs
}

// Panics returns the listener panics recovered so far.
func (w *World) Panics() []*errors.PanicError {
	return w.panics
}

// Tick advances one frame and steps running animations.
func (w *World) Tick() {
	w.advance(FrameDuration)
	animation.StepTickers()
}

// advance moves a stepped world's clock. A live world waits instead.
func (w *World) advance(d time.Duration) {
	if w.clock == nil {
		time.Sleep(d)
		return
	}
	w.clock.now = w.clock.now.Add(d)
}

// settle runs frames until no animation is active.
func (w *World) settle() error {
	for elapsed := time.Duration(0); elapsed < SettleTimeout; elapsed += FrameDuration {
		animation.StepTickers()
		if !animation.HasActiveTickers() {
			return nil
		}
		w.advance(FrameDuration)
	}
	return ErrSettleTimeout
}

func (w *World) pagerSurface() *memhost.ScrollView {
	return w.coordinator.Pager().Surface().(*memhost.ScrollView)
}

// activeSurface returns the inner scroll view of the page hosting the
// parallax region, or nil.
func (w *World) activeSurface() *memhost.ScrollView {
	item := w.coordinator.Parallax().ActiveItem()
	if item == nil {
		return nil
	}
	surface, _ := item.ScrollSurface().(*memhost.ScrollView)
	return surface
}

// Apply performs one step.
func (w *World) Apply(step config.Step) error {
	c := w.coordinator
	switch step.Action() {
	case "select":
		c.SetSelectedIndex(*step.Select, step.Animated)
	case "offset":
		c.SetContentOffset(graphics.Offset{X: step.Offset[0], Y: step.Offset[1]}, step.Animated)
	case "scroll":
		surface := w.activeSurface()
		if surface == nil {
			return fmt.Errorf("active page has no scroll surface")
		}
		surface.ScrollBy(graphics.Offset{Y: *step.Scroll})
		surface.EndDragging()
	case "drag":
		w.pagerSurface().ScrollBy(graphics.Offset{X: *step.Drag})
	case "swipe":
		surface := w.pagerSurface()
		surface.ScrollBy(graphics.Offset{X: *step.Swipe})
		surface.EndDragging()
	case "release":
		w.pagerSurface().EndDragging()
	case "resize":
		c.SetFrame(graphics.RectFromLTWH(0, 0, step.Resize[0], step.Resize[1]))
	case "frames":
		for range step.Frames {
			w.Tick()
		}
	case "settle":
		return w.settle()
	default:
		return fmt.Errorf("step has no single action: %+v", step)
	}
	return nil
}

// Describe renders a step the way Run prints it.
func Describe(step config.Step) string {
	var desc string
	switch step.Action() {
	case "select":
		desc = fmt.Sprintf("select %d", *step.Select)
	case "offset":
		desc = fmt.Sprintf("offset (%g,%g)", step.Offset[0], step.Offset[1])
	case "scroll":
		desc = fmt.Sprintf("scroll %g", *step.Scroll)
	case "drag":
		desc = fmt.Sprintf("drag %g", *step.Drag)
	case "swipe":
		desc = fmt.Sprintf("swipe %g", *step.Swipe)
	case "release":
		desc = "release"
	case "resize":
		desc = fmt.Sprintf("resize %gx%g", step.Resize[0], step.Resize[1])
	case "frames":
		desc = fmt.Sprintf("frames %d", step.Frames)
	case "settle":
		desc = "settle"
	default:
		return "invalid step"
	}
	if step.Animated && (step.Select != nil || step.Offset != nil) {
		desc += " animated"
	}
	return desc
}

// Run builds a world from cfg, plays it to out and closes it.
func Run(cfg *config.Resolved, out io.Writer, verbose bool) error {
	w := New(cfg)
	defer w.Close()
	return Play(w, out, verbose)
}

// Play executes every step of the world's scenario and writes the
// notification log to out. Precondition reports are logged inline; verbose
// adds their kind and stack trace.
func Play(w *World, out io.Writer, verbose bool) error {
	cfg := w.cfg
	fmt.Fprintf(out, "scenario %s (%gx%g, %d pages)\n", cfg.Name, cfg.Width, cfg.Height, len(cfg.Pages))
	logger := &errors.LogHandler{Verbose: verbose, Out: out}
	reported, recovered := 0, 0
	flush := func(title string) {
		fmt.Fprintln(out, title)
		for _, n := range w.TakeNotifications() {
			fmt.Fprintf(out, "  %s\n", n)
		}
		for _, err := range w.errs[reported:] {
			fmt.Fprint(out, "  ")
			logger.HandleError(err)
		}
		reported = len(w.errs)
		for _, err := range w.panics[recovered:] {
			fmt.Fprint(out, "  ")
			logger.HandlePanic(err)
		}
		recovered = len(w.panics)
	}

	flush("setup")
	for i, step := range cfg.Steps {
		if err := w.Apply(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, Describe(step), err)
		}
		flush(fmt.Sprintf("step %d: %s", i+1, Describe(step)))
	}
	fmt.Fprintln(out, Summary(w))
	return nil
}

// Summary renders the coordinator's current state on one line.
func Summary(w *World) string {
	c := w.Coordinator()
	size := c.ContentSize()
	offset := c.ContentOffset()
	visible := c.Pager().VisibleRange()

	var b strings.Builder
	fmt.Fprintf(&b, "state: selected=%d offset=(%g,%g) size=%gx%g", c.SelectedIndex(), offset.X, offset.Y, size.Width, size.Height)
	if visible.IsEmpty() {
		b.WriteString(" visible=none")
	} else {
		fmt.Fprintf(&b, " visible=%d..%d", visible.First, visible.Last)
	}
	return b.String()
}
