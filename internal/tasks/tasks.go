// package tasks implements moderation review operations against the platform API.
//
// The core abstraction is ReviewEngine, which maintains the local review queue
// of rejected videos and comments. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
)

// AdminAPI is the moderation surface the engine consumes.
type AdminAPI interface {
	RejectedVideos(ctx context.Context) ([]models.RejectedVideo, error)
	RejectedComments(ctx context.Context) ([]models.RejectedComment, error)
	ApproveVideo(ctx context.Context, videoID string) error
	ApproveComment(ctx context.Context, commentID string) error
}

// QueueResult contains the review queue after a refresh.
type QueueResult struct {
	Videos   []models.RejectedVideo   // Videos held back by moderation
	Comments []models.RejectedComment // Comments held back by moderation
}

// ReviewEngine defines operations over the moderation review queue.
type ReviewEngine interface {
	// Refresh fetches both rejected lists and replaces the local queue.
	Refresh(ctx context.Context, progress chan<- ProgressUpdate) (*QueueResult, error)

	// ApproveVideo clears a video's rejection. The video leaves the local
	// queue only after the server confirms.
	ApproveVideo(ctx context.Context, progress chan<- ProgressUpdate, videoID string) error

	// ApproveComment clears a comment's rejection. The comment leaves the
	// local queue only after the server confirms.
	ApproveComment(ctx context.Context, progress chan<- ProgressUpdate, commentID string) error

	// Queue returns a snapshot of the local review queue.
	Queue() QueueResult
}

// Engine implements [ReviewEngine] against the platform admin endpoints.
type Engine struct {
	mu     sync.Mutex
	api    AdminAPI
	logger *log.Logger

	videos   []models.RejectedVideo
	comments []models.RejectedComment
}

// NewEngine creates a review engine with an empty queue.
func NewEngine(api AdminAPI, logger *log.Logger) *Engine {
	return &Engine{api: api, logger: logger}
}

// Refresh fetches rejected videos then rejected comments. A failure on either
// endpoint aborts the refresh and leaves the previous queue in place.
func (e *Engine) Refresh(ctx context.Context, progress chan<- ProgressUpdate) (*QueueResult, error) {
	sendProgress(progress, fetchVideosUpdate(1, 3))
	videos, err := e.api.RejectedVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("rejected videos: %w", err)
	}

	sendProgress(progress, fetchCommentsUpdate(2, 3))
	comments, err := e.api.RejectedComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("rejected comments: %w", err)
	}

	e.mu.Lock()
	e.videos = videos
	e.comments = comments
	e.mu.Unlock()

	sendProgress(progress, summaryUpdate(len(videos), len(comments)))
	return &QueueResult{Videos: videos, Comments: comments}, nil
}

// ApproveVideo asks the server to clear the rejection, then drops the video
// from the local queue. On failure the queue is untouched so the item can be
// retried.
func (e *Engine) ApproveVideo(ctx context.Context, progress chan<- ProgressUpdate, videoID string) error {
	sendProgress(progress, approveUpdate(1, 1, "video", videoID))
	if err := e.api.ApproveVideo(ctx, videoID); err != nil {
		e.logger.Warn("video approval failed", "video_id", videoID, "error", err)
		return fmt.Errorf("approve video %s: %w", videoID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i, v := range e.videos {
		if v.ID == videoID {
			e.videos = append(e.videos[:i], e.videos[i+1:]...)
			return nil
		}
	}
	return nil
}

// ApproveComment mirrors ApproveVideo for the comment queue.
func (e *Engine) ApproveComment(ctx context.Context, progress chan<- ProgressUpdate, commentID string) error {
	sendProgress(progress, approveUpdate(1, 1, "comment", commentID))
	if err := e.api.ApproveComment(ctx, commentID); err != nil {
		e.logger.Warn("comment approval failed", "comment_id", commentID, "error", err)
		return fmt.Errorf("approve comment %s: %w", commentID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i, c := range e.comments {
		if c.ID == commentID {
			e.comments = append(e.comments[:i], e.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

// Queue returns a copy of the local review queue.
func (e *Engine) Queue() QueueResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := QueueResult{
		Videos:   make([]models.RejectedVideo, len(e.videos)),
		Comments: make([]models.RejectedComment, len(e.comments)),
	}
	copy(out.Videos, e.videos)
	copy(out.Comments, e.comments)
	return out
}

// FindVideo looks up a queued rejected video by id.
func (e *Engine) FindVideo(videoID string) (*models.RejectedVideo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.videos {
		if v.ID == videoID {
			out := v
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s not in review queue", shared.ErrVideoNotFound, videoID)
}
