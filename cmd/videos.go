package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
)

// VideoRecommendations fetches one recommendation page and prints it.
func (r *Runner) VideoRecommendations(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	videos, err := r.client.Recommendations(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Recommendations (%d)", len(videos)))
	for i, v := range videos {
		r.writePlain("%d. %s [%s]\n", i+1, v.Title, v.ID)
		r.writePlain("   ♥ %s  💬 %s  ▶ %s\n",
			shared.FormatCount(v.Likes), shared.FormatCount(v.Comments), shared.FormatCount(v.Views))
	}
	return nil
}

// VideoInfo prints a video's authoritative counts and the caller's like status.
func (r *Runner) VideoInfo(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	video, err := r.client.Video(ctx, videoID)
	if err != nil {
		return err
	}
	liked, err := r.client.LikeStatus(ctx, videoID)
	if err != nil {
		r.logger.Warn("like status unavailable", "error", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			*models.Video
			Liked bool `json:"liked"`
		}{video, liked}, true)
	}

	r.writePlainHeader(video.Title)
	if video.Category != "" {
		r.writePlain("Category: %s\n", video.Category)
	}
	r.writePlain("Likes: %s\n", shared.FormatCount(video.Likes))
	r.writePlain("Comments: %s\n", shared.FormatCount(video.Comments))
	r.writePlain("Views: %s\n", shared.FormatCount(video.Views))
	if liked {
		r.writePlain("Liked: ♥ yes\n")
	} else {
		r.writePlain("Liked: ♡ no\n")
	}
	return nil
}

// VideoLike toggles the caller's like on a video.
func (r *Runner) VideoLike(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	liked, err := r.client.LikeStatus(ctx, videoID)
	if err != nil {
		return err
	}

	if liked {
		if err := r.client.Unlike(ctx, videoID); err != nil {
			return err
		}
		return r.writePlain("♡ Unliked %s\n", videoID)
	}
	if err := r.client.Like(ctx, videoID); err != nil {
		return err
	}
	return r.writePlain("♥ Liked %s\n", videoID)
}

// VideoComments lists a video's comment thread, newest first.
func (r *Runner) VideoComments(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	comments, err := r.client.Comments(ctx, videoID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(comments, true)
	}

	r.writePlainHeader(fmt.Sprintf("Comments (%d)", len(comments)))
	for _, c := range comments {
		author := "unknown"
		if c.User != nil && c.User.Resolved() {
			author = c.User.Username
		}
		r.writePlain("%s: %s\n", author, c.Content)
	}
	return nil
}

// VideoComment posts a comment on a video.
func (r *Runner) VideoComment(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	content := cmd.StringArg("content")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	comment, err := r.client.CreateComment(ctx, videoID, content)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Comment posted [%s]\n", comment.ID)
}

// VideoWatch opens the video's stream URL in the system browser.
func (r *Runner) VideoWatch(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	url := r.client.StreamURL(videoID)
	r.logger.Info("opening stream", "url", url)
	if err := shared.OpenBrowser(url); err != nil {
		return err
	}
	return r.writePlain("✓ Opened %s\n", url)
}

// VideoCached lists recently seen feed entries from the local cache.
func (r *Runner) VideoCached(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("%w: run 'reel setup' first", shared.ErrMissingConfig)
	}

	videos, err := r.cache.Recent(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}

	r.writePlainHeader(fmt.Sprintf("Recently seen (%d)", len(videos)))
	for i, v := range videos {
		uploader := ""
		if v.User != nil && v.User.Resolved() {
			uploader = " by @" + v.User.Username
		}
		r.writePlain("%d. %s%s [%s]\n", i+1, v.Title, uploader, v.ID)
	}
	return nil
}
