package memhost

import (
	"fmt"
	"time"

	"github.com/go-drift/parallaxpager/pkg/host"
)

// Toolkit creates memhost views for the paging engine.
type Toolkit struct {
	// ScrollDuration is applied to every scroll surface it creates.
	ScrollDuration time.Duration

	// Views lists every view created, in creation order.
	Views []host.View

	count int
}

// NewToolkit returns a toolkit using DefaultScrollDuration.
func NewToolkit() *Toolkit {
	return &Toolkit{ScrollDuration: DefaultScrollDuration}
}

// NewView returns a plain view.
func (t *Toolkit) NewView() host.View {
	v := NewView(t.name("view"))
	t.Views = append(t.Views, v)
	return v
}

// NewScrollSurface returns a scroll view.
func (t *Toolkit) NewScrollSurface(paging bool) host.ScrollSurface {
	s := NewScrollView(t.name("scroll"))
	s.Paging = paging
	s.Duration = t.ScrollDuration
	t.Views = append(t.Views, s)
	return s
}

func (t *Toolkit) name(kind string) string {
	t.count++
	return fmt.Sprintf("%s-%d", kind, t.count)
}
