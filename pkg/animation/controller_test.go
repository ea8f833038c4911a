package animation

import (
	"testing"
	"time"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func useStepClock(t *testing.T) *stepClock {
	c := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := SetClock(c)
	t.Cleanup(func() { SetClock(prev) })
	return c
}

func TestController_RunsToCompletion(t *testing.T) {
	clk := useStepClock(t)
	c := NewController(100 * time.Millisecond)
	defer c.Dispose()

	var frames []float64
	c.AddListener(func() { frames = append(frames, c.Progress) })
	var statuses []Status
	c.AddStatusListener(func(s Status) { statuses = append(statuses, s) })

	c.Start()
	if !c.IsRunning() {
		t.Fatal("expected controller to be running after Start")
	}

	clk.now = clk.now.Add(50 * time.Millisecond)
	StepTickers()
	clk.now = clk.now.Add(60 * time.Millisecond)
	StepTickers()

	if len(frames) != 2 || frames[0] != 0.5 || frames[1] != 1 {
		t.Fatalf("frames = %v, want [0.5 1]", frames)
	}
	if c.Status() != StatusCompleted {
		t.Errorf("status = %v, want completed", c.Status())
	}
	if len(statuses) != 2 || statuses[0] != StatusRunning || statuses[1] != StatusCompleted {
		t.Errorf("statuses = %v", statuses)
	}
	if HasActiveTickers() {
		t.Error("completed controller should release its ticker")
	}
}

func TestController_StopLeavesProgress(t *testing.T) {
	clk := useStepClock(t)
	c := NewController(200 * time.Millisecond)
	defer c.Dispose()

	c.Start()
	clk.now = clk.now.Add(50 * time.Millisecond)
	StepTickers()
	c.Stop()

	if c.Progress != 0.25 {
		t.Errorf("Progress = %v, want 0.25", c.Progress)
	}
	if c.Status() != StatusIdle {
		t.Errorf("status = %v, want idle", c.Status())
	}
}

func TestController_ZeroDurationCompletesOnFirstFrame(t *testing.T) {
	useStepClock(t)
	c := NewController(0)
	defer c.Dispose()

	c.Start()
	StepTickers()
	if c.Progress != 1 || c.Status() != StatusCompleted {
		t.Errorf("progress=%v status=%v, want 1 completed", c.Progress, c.Status())
	}
}

func TestStatusString(t *testing.T) {
	if StatusRunning.String() != "running" || Status(9).String() != "Status(9)" {
		t.Error("unexpected Status strings")
	}
}
