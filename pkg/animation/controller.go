package animation

import (
	"fmt"
	"time"
)

// Status represents the current state of a [Controller].
type Status int

const (
	// StatusIdle means the controller has not started or was stopped early.
	StatusIdle Status = iota
	// StatusRunning means frames are being produced.
	StatusRunning
	// StatusCompleted means progress reached 1.
	StatusCompleted
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Controller advances Progress linearly from 0 to 1 over Duration.
//
// Listeners fire on every frame; status listeners fire on transitions. A
// Controller is single-use per run: call Start again to restart from 0.
type Controller struct {
	// Progress is the current value in [0, 1].
	Progress float64
	// Duration is the length of the run. A non-positive duration completes
	// on the first frame.
	Duration time.Duration

	status          Status
	ticker          *Ticker
	listeners       map[int]func()
	statusListeners map[int]func(Status)
	nextListenerID  int
}

// NewController creates a controller with the given duration.
func NewController(duration time.Duration) *Controller {
	return &Controller{
		Duration:        duration,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(Status)),
	}
}

// Start runs the controller from 0, replacing any run in progress.
func (c *Controller) Start() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.Progress = 0
	c.setStatus(StatusRunning)
	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

func (c *Controller) tick(elapsed time.Duration) {
	progress := 1.0
	if c.Duration > 0 {
		progress = float64(elapsed) / float64(c.Duration)
	}
	if progress >= 1 {
		progress = 1
	}
	c.Progress = progress
	c.notifyListeners()
	if progress >= 1 {
		c.halt()
		c.setStatus(StatusCompleted)
	}
}

func (c *Controller) halt() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Stop halts the run at the current progress without completing it.
func (c *Controller) Stop() {
	if c.ticker == nil {
		return
	}
	c.halt()
	c.setStatus(StatusIdle)
}

// Status returns the current status.
func (c *Controller) Status() Status {
	return c.status
}

// IsRunning returns true while frames are being produced.
func (c *Controller) IsRunning() bool {
	return c.status == StatusRunning
}

// AddListener adds a callback that fires on every frame.
// Returns an unsubscribe function.
func (c *Controller) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// AddStatusListener adds a callback that fires whenever the status changes.
// Returns an unsubscribe function.
func (c *Controller) AddStatusListener(fn func(Status)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners[id] = fn
	return func() {
		delete(c.statusListeners, id)
	}
}

func (c *Controller) setStatus(status Status) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *Controller) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose stops the controller and drops its listeners.
func (c *Controller) Dispose() {
	c.halt()
	c.listeners = nil
	c.statusListeners = nil
}
