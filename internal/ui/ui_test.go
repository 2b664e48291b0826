package ui

import (
	"testing"
	"time"

	"github.com/wrenhollow/reel/internal/models"
)

func feedModel(videoID string) *Model {
	return &Model{
		view:    FeedView,
		current: models.Video{ID: videoID},
		keys:    newKeyMap(),
	}
}

func TestPlaybackClock(t *testing.T) {
	t.Run("Tick For The Bound Video Advances", func(t *testing.T) {
		m := feedModel("v1")

		updated, cmd := m.Update(playbackTickMsg{videoID: "v1"})
		if cmd == nil {
			t.Error("expected the chain to reschedule")
		}
		if got := updated.(*Model).elapsed; got != time.Second {
			t.Errorf("expected 1s elapsed, got %s", got)
		}
	})

	t.Run("Tick From A Superseded Bind Is Dropped", func(t *testing.T) {
		m := feedModel("v2")
		m.elapsed = 2 * time.Second

		updated, cmd := m.Update(playbackTickMsg{videoID: "v1"})
		if cmd != nil {
			t.Error("stale chain must not reschedule")
		}
		if got := updated.(*Model).elapsed; got != 2*time.Second {
			t.Errorf("expected clock untouched, got %s", got)
		}
	})

	t.Run("Each Bind Keeps One Chain", func(t *testing.T) {
		// Two binds in a row: only ticks tagged with the second video
		// may advance the clock afterwards.
		m := feedModel("v1")
		m.current = models.Video{ID: "v2"}
		m.elapsed = 0

		m.Update(playbackTickMsg{videoID: "v1"})
		m.Update(playbackTickMsg{videoID: "v2"})

		if m.elapsed != time.Second {
			t.Errorf("expected only the live chain counted, got %s", m.elapsed)
		}
	})

	t.Run("Ticks Pause Outside The Feed", func(t *testing.T) {
		m := feedModel("v1")
		m.view = CommentsView

		_, cmd := m.Update(playbackTickMsg{videoID: "v1"})
		if cmd != nil {
			t.Error("expected no reschedule outside the feed view")
		}
		if m.elapsed != 0 {
			t.Errorf("expected clock untouched, got %s", m.elapsed)
		}
	})
}
