// Package videofeed manages which video in the vertically paged feed is
// allowed to play, and turns raw taps into pause toggles or double-tap likes.
package videofeed

import (
	"math"
	"sync"
	"time"
)

// PlayState is the per-item playback state.
type PlayState int

const (
	// Backgrounded items are suspended, not destroyed; resuming is cheap.
	Backgrounded PlayState = iota
	// Playing is the single item eligible for playback.
	Playing
	// Paused means the user tapped the active item to stop it.
	Paused
)

const (
	// DoubleTapWindow separates a second tap of a double-tap from a fresh
	// single tap.
	DoubleTapWindow = 300 * time.Millisecond
	// HeartAnimation is the length of the heart-pop sequence played on every
	// double-tap.
	HeartAnimation = 700 * time.Millisecond
)

// TapResult reports how a tap was classified.
type TapResult int

const (
	// TapPending means the tap may still become a double-tap; it resolves to
	// a single tap once the window elapses (see FlushTaps).
	TapPending TapResult = iota
	// TapDouble means the tap completed a double-tap.
	TapDouble
)

// Hooks connect the controller to the like mutation and the animation layer.
type Hooks struct {
	// IsLiked reports whether the post at index is already liked.
	IsLiked func(index int) bool
	// Like triggers the optimistic like mutation. Never called for posts
	// that are already liked.
	Like func(index int)
	// Animate plays the heart-pop overlay. Called on every double-tap,
	// liked or not.
	Animate func(index int, duration time.Duration)
}

type tapEvent struct {
	index int
	at    time.Time
}

// Controller holds the playback state machine for one video feed screen.
type Controller struct {
	mu           sync.Mutex
	now          func() time.Time
	hooks        Hooks
	itemCount    int
	active       int
	focused      bool
	userPaused   map[int]bool
	commentsOpen map[int]bool
	pending      *tapEvent
}

// NewController creates a controller for a feed of itemCount items. Item 0
// starts active and the screen starts focused.
func NewController(itemCount int, hooks Hooks) *Controller {
	return &Controller{
		now:          time.Now,
		hooks:        hooks,
		itemCount:    itemCount,
		focused:      true,
		userPaused:   make(map[int]bool),
		commentsOpen: make(map[int]bool),
	}
}

// SetNow replaces the clock. Tests use this to drive the tap window.
func (c *Controller) SetNow(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// SetItemCount updates the feed length after a reload.
func (c *Controller) SetItemCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.itemCount = n
	if c.active >= n && n > 0 {
		c.active = n - 1
	}
}

// ActiveIndex returns the single index eligible for playback.
func (c *Controller) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// StateOf reports the playback state of one item. At most one item is ever
// Playing.
func (c *Controller) StateOf(index int) PlayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateOf(index)
}

func (c *Controller) stateOf(index int) PlayState {
	if !c.focused || index != c.active {
		return Backgrounded
	}
	if c.userPaused[index] {
		return Paused
	}
	return Playing
}

// EndScroll recomputes the active index from the momentum-end scroll offset.
// Everything but the new active item is forced off; an item scrolled away
// from loses its user-pause so it autoplays when it comes back.
func (c *Controller) EndScroll(offsetY, itemHeight float64) {
	if itemHeight <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.itemCount == 0 {
		return
	}

	index := int(math.Round(offsetY / itemHeight))
	if index < 0 {
		index = 0
	}
	if index >= c.itemCount {
		index = c.itemCount - 1
	}
	if index != c.active {
		delete(c.userPaused, c.active)
		c.active = index
	}
}

// Tap feeds one tap on the video surface at index into the classifier. A tap
// within the window of a pending tap on the same item completes a double-tap;
// otherwise the tap is recorded as pending and any stale pending tap resolves
// as the single tap it was.
func (c *Controller) Tap(index int) TapResult {
	c.mu.Lock()
	now := c.now()

	if c.pending != nil && c.pending.index == index && now.Sub(c.pending.at) < DoubleTapWindow {
		c.pending = nil
		isLiked := c.hooks.IsLiked != nil && c.hooks.IsLiked(index)
		like := c.hooks.Like
		animate := c.hooks.Animate
		c.mu.Unlock()

		// Double-tap is an action, not a state transition: the heart always
		// pops, the like fires only when the post isn't liked yet.
		if !isLiked && like != nil {
			like(index)
		}
		if animate != nil {
			animate(index, HeartAnimation)
		}
		return TapDouble
	}

	if c.pending != nil {
		c.resolveSingle(c.pending.index)
	}
	c.pending = &tapEvent{index: index, at: now}
	c.mu.Unlock()
	return TapPending
}

// FlushTaps resolves a pending tap whose double-tap window has elapsed. The
// screen calls this from its frame timer.
func (c *Controller) FlushTaps() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil && c.now().Sub(c.pending.at) >= DoubleTapWindow {
		c.resolveSingle(c.pending.index)
		c.pending = nil
	}
}

// resolveSingle applies a confirmed single tap: Playing and Paused swap for
// the active item; taps on suspended items do nothing.
func (c *Controller) resolveSingle(index int) {
	if !c.focused || index != c.active {
		return
	}
	c.userPaused[index] = !c.userPaused[index]
}

// Blur suspends playback when the screen loses focus. A pending tap is
// dropped; it belongs to a surface that is no longer visible.
func (c *Controller) Blur() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused = false
	c.pending = nil
}

// Focus restores playback eligibility. A user-paused item stays paused.
func (c *Controller) Focus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused = true
}

// OpenComments marks the comment modal open for an item. Play state is
// unchanged; the modal stacks above the video.
func (c *Controller) OpenComments(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commentsOpen[index] = true
}

// CloseComments marks the comment modal closed.
func (c *Controller) CloseComments(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.commentsOpen, index)
}

// CommentsOpen reports whether the comment modal is open for an item.
func (c *Controller) CommentsOpen(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commentsOpen[index]
}
