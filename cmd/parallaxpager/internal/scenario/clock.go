package scenario

import (
	"time"

	"github.com/go-drift/parallaxpager/pkg/animation"
)

// FrameDuration is how far one frame moves the clock.
const FrameDuration = 16 * time.Millisecond

// epoch is where a stepped world's clock starts.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// stepClock is an animation.Clock that moves only when the world advances
// it, which keeps scripted runs reproducible.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func (c *stepClock) install() func() {
	prev := animation.SetClock(c)
	return func() {
		animation.SetClock(prev)
	}
}
