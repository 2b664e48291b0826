package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
)

// Recommendations retrieves the next ordered page of recommended videos for
// the authenticated user. The server excludes already-viewed videos and
// appends exploration picks, so successive calls return fresh pages.
func (c *Client) Recommendations(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	if err := c.doRequest(ctx, http.MethodGet, "/videos/recommendations", c.bearer, nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Video retrieves a single video with its authoritative like, comment and
// view counts.
func (c *Client) Video(ctx context.Context, videoID string) (*models.Video, error) {
	var video models.Video
	endpoint := fmt.Sprintf("/videos/%s", videoID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, c.bearer, nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// LikeStatus reports whether the authenticated user has liked the video.
func (c *Client) LikeStatus(ctx context.Context, videoID string) (bool, error) {
	var status struct {
		Liked bool `json:"liked"`
	}
	endpoint := fmt.Sprintf("/videos/%s/like-status", videoID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, c.bearer, nil, &status); err != nil {
		return false, err
	}
	return status.Liked, nil
}

// Like records a like on the video for the authenticated user.
func (c *Client) Like(ctx context.Context, videoID string) error {
	endpoint := fmt.Sprintf("/videos/%s/like", videoID)
	return c.doRequest(ctx, http.MethodPost, endpoint, c.bearer, nil, nil)
}

// Unlike removes the authenticated user's like from the video.
func (c *Client) Unlike(ctx context.Context, videoID string) error {
	endpoint := fmt.Sprintf("/videos/%s/like", videoID)
	return c.doRequest(ctx, http.MethodDelete, endpoint, c.bearer, nil, nil)
}

// RecordView records one view of the video for the authenticated user.
func (c *Client) RecordView(ctx context.Context, videoID string) error {
	endpoint := fmt.Sprintf("/videos/%s/view", videoID)
	return c.doRequest(ctx, http.MethodPost, endpoint, c.bearer, nil, nil)
}

// Comments retrieves the video's visible comments, newest first.
func (c *Client) Comments(ctx context.Context, videoID string) ([]models.Comment, error) {
	var comments []models.Comment
	endpoint := fmt.Sprintf("/videos/%s/comments", videoID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, c.bearer, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a comment on the video and returns the created record.
// Empty or whitespace-only content is rejected locally without a request.
func (c *Client) CreateComment(ctx context.Context, videoID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, shared.ErrEmptyComment
	}

	payload := struct {
		Content string `json:"content"`
	}{content}

	var comment models.Comment
	endpoint := fmt.Sprintf("/videos/%s/comments", videoID)
	if err := c.doRequest(ctx, http.MethodPost, endpoint, c.bearer, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
