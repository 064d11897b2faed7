package videofeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestController(itemCount int, hooks Hooks) (*Controller, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	c := NewController(itemCount, hooks)
	c.SetNow(clock.now)
	return c, clock
}

func assertOnlyPlaying(t *testing.T, c *Controller, want int, itemCount int) {
	t.Helper()
	for i := 0; i < itemCount; i++ {
		if i == want {
			assert.Equal(t, Playing, c.StateOf(i), "item %d should be playing", i)
		} else {
			assert.NotEqual(t, Playing, c.StateOf(i), "item %d should not be playing", i)
		}
	}
}

func TestInitialStateFirstItemPlays(t *testing.T) {
	c, _ := newTestController(3, Hooks{})
	assert.Equal(t, 0, c.ActiveIndex())
	assertOnlyPlaying(t, c, 0, 3)
}

func TestEndScrollMovesActiveItem(t *testing.T) {
	c, _ := newTestController(5, Hooks{})

	c.EndScroll(1600, 800)
	assert.Equal(t, 2, c.ActiveIndex())
	assertOnlyPlaying(t, c, 2, 5)

	// Offsets round to the nearest page.
	c.EndScroll(2300, 800)
	assert.Equal(t, 3, c.ActiveIndex())

	// Overscroll clamps to the last item, negative offsets to the first.
	c.EndScroll(99999, 800)
	assert.Equal(t, 4, c.ActiveIndex())
	c.EndScroll(-500, 800)
	assert.Equal(t, 0, c.ActiveIndex())
}

func TestSingleTapTogglesPause(t *testing.T) {
	c, clock := newTestController(2, Hooks{})

	require.Equal(t, TapPending, c.Tap(0))
	clock.advance(DoubleTapWindow)
	c.FlushTaps()
	assert.Equal(t, Paused, c.StateOf(0))

	require.Equal(t, TapPending, c.Tap(0))
	clock.advance(DoubleTapWindow)
	c.FlushTaps()
	assert.Equal(t, Playing, c.StateOf(0))
}

func TestTapOnBackgroundedItemDoesNothing(t *testing.T) {
	c, clock := newTestController(3, Hooks{})

	c.Tap(2)
	clock.advance(DoubleTapWindow)
	c.FlushTaps()

	assert.Equal(t, Playing, c.StateOf(0))
	assert.Equal(t, Backgrounded, c.StateOf(2))
}

func TestDoubleTapLikesAndAnimates(t *testing.T) {
	var liked []int
	var animated []int
	c, clock := newTestController(2, Hooks{
		IsLiked: func(index int) bool { return false },
		Like:    func(index int) { liked = append(liked, index) },
		Animate: func(index int, d time.Duration) {
			assert.Equal(t, HeartAnimation, d)
			animated = append(animated, index)
		},
	})

	require.Equal(t, TapPending, c.Tap(0))
	clock.advance(DoubleTapWindow / 2)
	require.Equal(t, TapDouble, c.Tap(0))

	assert.Equal(t, []int{0}, liked)
	assert.Equal(t, []int{0}, animated)

	// The double-tap consumed both taps; nothing left to resolve as a pause.
	clock.advance(DoubleTapWindow)
	c.FlushTaps()
	assert.Equal(t, Playing, c.StateOf(0))
}

func TestDoubleTapOnLikedPostAnimatesWithoutLiking(t *testing.T) {
	var likes int
	var animations int
	c, clock := newTestController(1, Hooks{
		IsLiked: func(index int) bool { return true },
		Like:    func(index int) { likes++ },
		Animate: func(index int, d time.Duration) { animations++ },
	})

	c.Tap(0)
	clock.advance(10 * time.Millisecond)
	require.Equal(t, TapDouble, c.Tap(0))

	assert.Zero(t, likes, "a liked post must not be toggled off by a double-tap")
	assert.Equal(t, 1, animations, "the heart still pops on an already-liked post")
}

func TestSlowSecondTapResolvesAsTwoSingles(t *testing.T) {
	c, clock := newTestController(1, Hooks{
		Like: func(index int) { t.Fatal("no like should fire for slow taps") },
	})

	require.Equal(t, TapPending, c.Tap(0))
	clock.advance(DoubleTapWindow + 10*time.Millisecond)
	require.Equal(t, TapPending, c.Tap(0))

	// The stale first tap resolved as a pause when the second arrived.
	assert.Equal(t, Paused, c.StateOf(0))

	clock.advance(DoubleTapWindow)
	c.FlushTaps()
	assert.Equal(t, Playing, c.StateOf(0))
}

func TestScrollAwayClearsUserPause(t *testing.T) {
	c, clock := newTestController(3, Hooks{})

	c.Tap(0)
	clock.advance(DoubleTapWindow)
	c.FlushTaps()
	require.Equal(t, Paused, c.StateOf(0))

	c.EndScroll(800, 800)
	c.EndScroll(0, 800)
	assert.Equal(t, Playing, c.StateOf(0), "returning to a scrolled-away item autoplays it")
}

func TestBlurSuspendsAndDropsPendingTap(t *testing.T) {
	c, clock := newTestController(2, Hooks{})

	c.Tap(0)
	c.Blur()
	for i := 0; i < 2; i++ {
		assert.Equal(t, Backgrounded, c.StateOf(i))
	}

	clock.advance(DoubleTapWindow)
	c.FlushTaps()
	c.Focus()
	assert.Equal(t, Playing, c.StateOf(0), "a tap pending at blur must not pause after refocus")
}

func TestFocusKeepsUserPause(t *testing.T) {
	c, clock := newTestController(1, Hooks{})

	c.Tap(0)
	clock.advance(DoubleTapWindow)
	c.FlushTaps()
	require.Equal(t, Paused, c.StateOf(0))

	c.Blur()
	c.Focus()
	assert.Equal(t, Paused, c.StateOf(0))
}

func TestCommentsDoNotChangePlayState(t *testing.T) {
	c, _ := newTestController(2, Hooks{})

	c.OpenComments(0)
	assert.True(t, c.CommentsOpen(0))
	assert.Equal(t, Playing, c.StateOf(0))

	c.CloseComments(0)
	assert.False(t, c.CommentsOpen(0))
	assert.Equal(t, Playing, c.StateOf(0))
}

func TestEndScrollOnEmptyFeed(t *testing.T) {
	c, _ := newTestController(0, Hooks{})

	c.EndScroll(1600, 800)
	assert.Equal(t, 0, c.ActiveIndex(), "an empty feed has no item to activate")

	// Items arriving after the scroll settle in normally.
	c.SetItemCount(3)
	c.EndScroll(1600, 800)
	assert.Equal(t, 2, c.ActiveIndex())
}

func TestSetItemCountClampsActive(t *testing.T) {
	c, _ := newTestController(5, Hooks{})
	c.EndScroll(3200, 800)
	require.Equal(t, 4, c.ActiveIndex())

	c.SetItemCount(2)
	assert.Equal(t, 1, c.ActiveIndex())
}
