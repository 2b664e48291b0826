package feed

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
)

// DefaultViewThreshold is how much playback must elapse before a view is
// credited to the bound video.
const DefaultViewThreshold = 3 * time.Second

// EngagementAPI is the per-video surface the tracker consumes.
type EngagementAPI interface {
	Video(ctx context.Context, videoID string) (*models.Video, error)
	LikeStatus(ctx context.Context, videoID string) (bool, error)
	Like(ctx context.Context, videoID string) error
	Unlike(ctx context.Context, videoID string) error
	RecordView(ctx context.Context, videoID string) error
	Comments(ctx context.Context, videoID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, videoID, content string) (*models.Comment, error)
}

// Overlay is the engagement state layered over the bound video. It is a
// value: readers get a snapshot, never a live reference.
type Overlay struct {
	VideoID      string
	Liked        bool
	LikeCount    int
	CommentCount int
	ViewCount    int
	ViewRecorded bool
}

// Tracker maintains the engagement overlay for one bound video at a time.
//
// Every bind bumps an internal generation counter, and every asynchronous
// completion re-checks it before applying results. A rapid swipe that
// rebinds the tracker therefore cannot have a slow response from the
// previous video bleed into the new overlay.
type Tracker struct {
	mu     sync.Mutex
	api    EngagementAPI
	logger *log.Logger

	gen       uint64
	video     *models.Video
	overlay   Overlay
	comments  []models.Comment
	threshold time.Duration
}

// NewTracker builds an unbound tracker.
func NewTracker(api EngagementAPI, logger *log.Logger) *Tracker {
	return &Tracker{
		api:       api,
		logger:    logger,
		threshold: DefaultViewThreshold,
	}
}

// SetViewThreshold overrides the playback time required to credit a view.
func (t *Tracker) SetViewThreshold(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	t.threshold = d
	t.mu.Unlock()
}

// Bind points the tracker at a video. The overlay is seeded from the counts
// embedded in the feed entry, then refreshed from an authoritative read of
// the video record and the caller's like status. When either read fails the
// embedded counts stand and the like state defaults to not-liked.
func (t *Tracker) Bind(ctx context.Context, video models.Video) Overlay {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.video = &video
	t.comments = nil
	t.overlay = Overlay{
		VideoID:      video.ID,
		LikeCount:    video.Likes,
		CommentCount: video.Comments,
		ViewCount:    video.Views,
	}
	seeded := t.overlay
	t.mu.Unlock()

	fetched, err := t.api.Video(ctx, video.ID)
	if err != nil {
		t.logger.Debug("video refresh failed", "video_id", video.ID, "error", err)
		fetched = nil
	}
	liked, err := t.api.LikeStatus(ctx, video.ID)
	if err != nil {
		t.logger.Debug("like status failed", "video_id", video.ID, "error", err)
		liked = false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return seeded
	}
	if fetched != nil {
		t.overlay.LikeCount = fetched.Likes
		t.overlay.CommentCount = fetched.Comments
		t.overlay.ViewCount = fetched.Views
	}
	t.overlay.Liked = liked
	return t.overlay
}

// Unbind discards the overlay. In-flight completions for the old video are
// dropped when they land.
func (t *Tracker) Unbind() {
	t.mu.Lock()
	t.gen++
	t.video = nil
	t.comments = nil
	t.overlay = Overlay{}
	t.mu.Unlock()
}

// Overlay returns a snapshot of the current engagement state.
func (t *Tracker) Overlay() Overlay {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overlay
}

// Comments returns a snapshot of the loaded comment list, newest first.
func (t *Tracker) Comments() []models.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// ObservePlayback feeds the tracker the elapsed playback time of the bound
// video. Once the threshold is crossed a view is recorded, at most once per
// bind. The flag flips before the network call, so a failed record is
// logged and not retried until the video is bound again.
func (t *Tracker) ObservePlayback(ctx context.Context, elapsed time.Duration) {
	t.mu.Lock()
	if t.video == nil || t.overlay.ViewRecorded || elapsed < t.threshold {
		t.mu.Unlock()
		return
	}
	t.overlay.ViewRecorded = true
	videoID := t.video.ID
	t.mu.Unlock()

	if err := t.api.RecordView(ctx, videoID); err != nil {
		t.logger.Warn("view not recorded", "video_id", videoID, "error", err)
	}
}

// ToggleLike flips the like state and count immediately, then tells the
// server. The flip is not rolled back on failure; the next bind re-reads
// the authoritative state and reconciles.
func (t *Tracker) ToggleLike(ctx context.Context) Overlay {
	t.mu.Lock()
	if t.video == nil {
		seeded := t.overlay
		t.mu.Unlock()
		return seeded
	}
	t.overlay.Liked = !t.overlay.Liked
	if t.overlay.Liked {
		t.overlay.LikeCount++
	} else if t.overlay.LikeCount > 0 {
		t.overlay.LikeCount--
	}
	liked := t.overlay.Liked
	videoID := t.video.ID
	snapshot := t.overlay
	t.mu.Unlock()

	call := t.api.Unlike
	if liked {
		call = t.api.Like
	}
	if err := call(ctx, videoID); err != nil {
		t.logger.Warn("like toggle not persisted", "video_id", videoID, "liked", liked, "error", err)
	}
	return snapshot
}

// LoadComments fetches the comment list for the bound video. The comment
// count in the overlay is derived from the list length, not from the count
// embedded in the video record.
func (t *Tracker) LoadComments(ctx context.Context) ([]models.Comment, error) {
	t.mu.Lock()
	if t.video == nil {
		t.mu.Unlock()
		return nil, shared.ErrVideoNotFound
	}
	gen := t.gen
	videoID := t.video.ID
	t.mu.Unlock()

	list, err := t.api.Comments(ctx, videoID)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return list, nil
	}
	t.comments = list
	t.overlay.CommentCount = len(list)
	out := make([]models.Comment, len(list))
	copy(out, list)
	return out, nil
}

// PostComment submits a comment on the bound video. Whitespace-only content
// is rejected locally without a network call. On success the comment is
// prepended to the local list and the count follows the list length.
func (t *Tracker) PostComment(ctx context.Context, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, shared.ErrEmptyComment
	}

	t.mu.Lock()
	if t.video == nil {
		t.mu.Unlock()
		return nil, shared.ErrVideoNotFound
	}
	gen := t.gen
	videoID := t.video.ID
	t.mu.Unlock()

	comment, err := t.api.CreateComment(ctx, videoID, content)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return comment, nil
	}
	t.comments = append([]models.Comment{*comment}, t.comments...)
	t.overlay.CommentCount = len(t.comments)
	return comment, nil
}
