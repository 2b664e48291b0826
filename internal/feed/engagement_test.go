package feed

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
	tu "github.com/wrenhollow/reel/internal/testing"
)

func TestTracker(t *testing.T) {
	ctx := context.Background()
	logger := shared.NewLogger(io.Discard)

	entry := models.Video{ID: "v1", Title: "first", Likes: 5, Comments: 2, Views: 40}

	fresh := func() *tu.StubEngagementAPI {
		return &tu.StubEngagementAPI{
			Videos: map[string]*models.Video{
				"v1": {ID: "v1", Likes: 7, Comments: 3, Views: 52},
			},
			Liked: map[string]bool{"v1": true},
		}
	}

	t.Run("Bind", func(t *testing.T) {
		t.Run("Refreshes Counts And Like Status", func(t *testing.T) {
			tr := NewTracker(fresh(), logger)
			ov := tr.Bind(ctx, entry)

			if ov.LikeCount != 7 || ov.CommentCount != 3 || ov.ViewCount != 52 {
				t.Errorf("expected refreshed counts, got %+v", ov)
			}
			if !ov.Liked {
				t.Error("expected liked=true from server")
			}
			if ov.ViewRecorded {
				t.Error("view flag must reset on bind")
			}
		})

		t.Run("Falls Back To Embedded Counts", func(t *testing.T) {
			api := fresh()
			api.VideoErr = errors.New("unreachable")
			api.StatusErr = errors.New("unreachable")
			tr := NewTracker(api, logger)
			ov := tr.Bind(ctx, entry)

			if ov.LikeCount != 5 || ov.CommentCount != 2 || ov.ViewCount != 40 {
				t.Errorf("expected embedded counts, got %+v", ov)
			}
			if ov.Liked {
				t.Error("like state must default to false on failure")
			}
		})

		t.Run("Rebind Resets The View Flag", func(t *testing.T) {
			api := fresh()
			tr := NewTracker(api, logger)
			tr.Bind(ctx, entry)
			tr.ObservePlayback(ctx, 4*time.Second)
			tr.Bind(ctx, entry)

			if tr.Overlay().ViewRecorded {
				t.Error("new bind must start with view unrecorded")
			}
			tr.ObservePlayback(ctx, 4*time.Second)
			if api.Views("v1") != 2 {
				t.Errorf("expected one view per bind, got %d", api.Views("v1"))
			}
		})
	})

	t.Run("ObservePlayback", func(t *testing.T) {
		t.Run("Records Once Past Threshold", func(t *testing.T) {
			api := fresh()
			tr := NewTracker(api, logger)
			tr.Bind(ctx, entry)

			tr.ObservePlayback(ctx, 1*time.Second)
			tr.ObservePlayback(ctx, 2*time.Second)
			if len(api.ViewCalls) != 0 {
				t.Errorf("below threshold, expected no view calls, got %d", len(api.ViewCalls))
			}

			tr.ObservePlayback(ctx, 3*time.Second)
			tr.ObservePlayback(ctx, 5*time.Second)
			tr.ObservePlayback(ctx, 9*time.Second)
			if api.Views("v1") != 1 {
				t.Errorf("expected exactly one recorded view, got %d", api.Views("v1"))
			}
			if !tr.Overlay().ViewRecorded {
				t.Error("expected view flag set")
			}
		})

		t.Run("Failure Does Not Retry Within Bind", func(t *testing.T) {
			api := fresh()
			api.ViewErr = errors.New("boom")
			tr := NewTracker(api, logger)
			tr.Bind(ctx, entry)

			tr.ObservePlayback(ctx, 4*time.Second)
			tr.ObservePlayback(ctx, 6*time.Second)
			if len(api.ViewCalls) != 1 {
				t.Errorf("expected a single attempt, got %d", len(api.ViewCalls))
			}
			if !tr.Overlay().ViewRecorded {
				t.Error("flag must stay set even when the call fails")
			}
		})

		t.Run("Unbound Tracker Ignores Playback", func(t *testing.T) {
			api := fresh()
			tr := NewTracker(api, logger)
			tr.ObservePlayback(ctx, 10*time.Second)
			if len(api.ViewCalls) != 0 {
				t.Errorf("expected no view calls, got %d", len(api.ViewCalls))
			}
		})
	})

	t.Run("ToggleLike", func(t *testing.T) {
		t.Run("Flips Optimistically", func(t *testing.T) {
			api := fresh()
			tr := NewTracker(api, logger)
			tr.Bind(ctx, entry)

			ov := tr.ToggleLike(ctx)
			if ov.Liked {
				t.Error("expected liked to flip to false")
			}
			if ov.LikeCount != 6 {
				t.Errorf("expected count 6, got %d", ov.LikeCount)
			}
			if len(api.UnlikeCalls) != 1 {
				t.Errorf("expected one unlike call, got %d", len(api.UnlikeCalls))
			}

			ov = tr.ToggleLike(ctx)
			if !ov.Liked || ov.LikeCount != 7 {
				t.Errorf("expected liked=true count=7, got %+v", ov)
			}
			if len(api.LikeCalls) != 1 {
				t.Errorf("expected one like call, got %d", len(api.LikeCalls))
			}
		})

		t.Run("No Rollback On Failure", func(t *testing.T) {
			api := fresh()
			api.LikeErr = errors.New("boom")
			tr := NewTracker(api, logger)
			tr.Bind(ctx, entry)

			ov := tr.ToggleLike(ctx)
			if ov.Liked || ov.LikeCount != 6 {
				t.Errorf("optimistic state must stand, got %+v", ov)
			}
			if got := tr.Overlay(); got.Liked || got.LikeCount != 6 {
				t.Errorf("overlay must keep optimistic state, got %+v", got)
			}
		})
	})

	t.Run("Comments", func(t *testing.T) {
		t.Run("Count Follows List Length", func(t *testing.T) {
			api := fresh()
			api.CommentSet = map[string][]models.Comment{
				"v1": {
					{ID: "c1", VideoID: "v1", Content: "nice"},
					{ID: "c2", VideoID: "v1", Content: "great"},
					{ID: "c3", VideoID: "v1", Content: "wow"},
					{ID: "c4", VideoID: "v1", Content: "again"},
				},
			}
			tr := NewTracker(api, logger)
			tr.Bind(ctx, entry)

			list, err := tr.LoadComments(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(list) != 4 {
				t.Fatalf("expected 4 comments, got %d", len(list))
			}
			if tr.Overlay().CommentCount != 4 {
				t.Errorf("count must follow list length, got %d", tr.Overlay().CommentCount)
			}
		})

		t.Run("Post Prepends And Bumps Count", func(t *testing.T) {
			api := fresh()
			api.CommentSet = map[string][]models.Comment{
				"v1": {{ID: "c1", VideoID: "v1", Content: "first"}},
			}
			tr := NewTracker(api, logger)
			tr.Bind(ctx, entry)
			tr.LoadComments(ctx)

			posted, err := tr.PostComment(ctx, "hello there")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			comments := tr.Comments()
			if comments[0].ID != posted.ID {
				t.Errorf("expected new comment first, got %s", comments[0].ID)
			}
			if tr.Overlay().CommentCount != 2 {
				t.Errorf("expected count 2, got %d", tr.Overlay().CommentCount)
			}
		})

		t.Run("Rejects Whitespace Locally", func(t *testing.T) {
			api := fresh()
			tr := NewTracker(api, logger)
			tr.Bind(ctx, entry)

			_, err := tr.PostComment(ctx, "   \t\n ")
			if !errors.Is(err, shared.ErrEmptyComment) {
				t.Errorf("expected ErrEmptyComment, got %v", err)
			}
		})
	})

	t.Run("Unbind Discards Overlay", func(t *testing.T) {
		api := fresh()
		tr := NewTracker(api, logger)
		tr.Bind(ctx, entry)
		tr.Unbind()

		if ov := tr.Overlay(); ov.VideoID != "" || ov.LikeCount != 0 {
			t.Errorf("expected cleared overlay, got %+v", ov)
		}
		if len(tr.Comments()) != 0 {
			t.Error("expected cleared comment list")
		}
	})
}
