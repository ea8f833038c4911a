package pageview

import (
	"maps"
	"slices"

	"github.com/go-drift/parallaxpager/pkg/errors"
	"github.com/go-drift/parallaxpager/pkg/graphics"
)

type changeSet uint8

const (
	changeSelectedIndex changeSet = 1 << iota
	changeContentSize
	changeContentOffset
)

func (s changeSet) has(change changeSet) bool {
	return s&change != 0
}

// Listener receives the coordinator's settled changes. Any field may be nil.
type Listener struct {
	OnSelectedIndexChange func(index int)
	OnContentSizeChange   func(size graphics.Size)
	OnContentOffsetChange func(offset graphics.Offset)
}

// AddListener registers a listener and returns a function that removes it.
// Listeners are called in registration order.
func (c *Coordinator) AddListener(listener Listener) func() {
	if c.listeners == nil {
		c.listeners = make(map[int]Listener)
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	return func() {
		delete(c.listeners, id)
	}
}

// performWithoutContentChanges runs action inside a merge scope. Dirty bits
// raised by action are flushed once, when the outermost scope exits.
func (c *Coordinator) performWithoutContentChanges(action func()) {
	wasApplying := c.applyingChanges
	c.applyingChanges = true
	c.mergeDepth++
	func() {
		defer func() {
			c.mergeDepth--
			c.applyingChanges = wasApplying
		}()
		action()
	}()
	c.flushChanges()
}

func (c *Coordinator) markDirty(change changeSet) {
	c.pending |= change
}

func (c *Coordinator) flushChanges() {
	if c.mergeDepth > 0 {
		return
	}
	if c.needsOffsetSync {
		c.needsOffsetSync = false
		c.parallax.setContentOffset(c.parallax.ActiveItem())
	}
	pending := c.pending
	if pending == 0 {
		return
	}
	c.pending = 0

	if pending.has(changeContentSize) {
		if size := c.ContentSize(); size != c.notifiedSize {
			c.notifiedSize = size
			c.notify(func(l Listener) {
				if l.OnContentSizeChange != nil {
					l.OnContentSizeChange(size)
				}
			})
		}
	}
	if pending.has(changeContentOffset) {
		if offset := c.ContentOffset(); offset != c.notifiedOffset {
			c.notifiedOffset = offset
			c.notify(func(l Listener) {
				if l.OnContentOffsetChange != nil {
					l.OnContentOffsetChange(offset)
				}
			})
		}
	}
	if pending.has(changeSelectedIndex) {
		if c.pager.IsSelectionLocked() {
			// Held until the animated transition ends.
			c.pending |= changeSelectedIndex
			return
		}
		if index := c.pager.SelectedIndex(); index != c.notifiedIndex {
			c.notifiedIndex = index
			c.notify(func(l Listener) {
				if l.OnSelectedIndexChange != nil {
					l.OnSelectedIndexChange(index)
				}
			})
		}
	}
}

func (c *Coordinator) notify(call func(Listener)) {
	for _, id := range slices.Sorted(maps.Keys(c.listeners)) {
		listener, ok := c.listeners[id]
		if !ok {
			continue
		}
		func() {
			defer errors.Recover("pageview.notify")
			call(listener)
		}()
	}
}
