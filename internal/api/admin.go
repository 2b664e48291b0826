package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wrenhollow/reel/internal/models"
)

// rejectedCommentWire mirrors the admin endpoint's comment records. The
// moderation_labels field arrives either as a JSON object or as a JSON
// string containing an encoded object, depending on how the moderation
// pipeline stored it.
type rejectedCommentWire struct {
	ID        string           `json:"comment_id"`
	Content   string           `json:"content"`
	UserID    string           `json:"user_id"`
	Username  string           `json:"username"`
	CreatedAt models.Timestamp `json:"created_at"`
	Reason    string           `json:"moderation_reason"`
	Score     float64          `json:"moderation_score"`
	Labels    json.RawMessage  `json:"moderation_labels"`
}

func (w rejectedCommentWire) toModel() models.RejectedComment {
	return models.RejectedComment{
		ID:        w.ID,
		Content:   w.Content,
		UserID:    w.UserID,
		Username:  w.Username,
		CreatedAt: w.CreatedAt,
		Reason:    w.Reason,
		Score:     w.Score,
		Labels:    parseLabelScores(w.Labels),
	}
}

// parseLabelScores decodes a label->probability map from either encoding.
// Malformed payloads yield an empty map rather than an error; the list
// display degrades to showing no label badge.
func parseLabelScores(raw json.RawMessage) models.LabelScores {
	if len(raw) == 0 {
		return models.LabelScores{}
	}

	var scores models.LabelScores
	if err := json.Unmarshal(raw, &scores); err == nil {
		return scores
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &scores); err == nil {
			return scores
		}
	}

	return models.LabelScores{}
}

// RejectedVideos retrieves the moderation queue of rejected videos.
func (c *Client) RejectedVideos(ctx context.Context) ([]models.RejectedVideo, error) {
	var videos []models.RejectedVideo
	if err := c.doRequest(ctx, http.MethodGet, "/admin/videos/rejected", c.bearer, nil, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// RejectedComments retrieves the moderation queue of rejected comments.
func (c *Client) RejectedComments(ctx context.Context) ([]models.RejectedComment, error) {
	var wire []rejectedCommentWire
	if err := c.doRequest(ctx, http.MethodGet, "/admin/comments/rejected", c.bearer, nil, &wire); err != nil {
		return nil, err
	}

	comments := make([]models.RejectedComment, len(wire))
	for i, w := range wire {
		comments[i] = w.toModel()
	}
	return comments, nil
}

// ApproveVideo overrides a video's rejection, marking it approved.
func (c *Client) ApproveVideo(ctx context.Context, videoID string) error {
	endpoint := fmt.Sprintf("/admin/videos/%s/approve", videoID)
	return c.doRequest(ctx, http.MethodPost, endpoint, c.bearer, nil, nil)
}

// ApproveComment overrides a comment's rejection, marking it approved.
func (c *Client) ApproveComment(ctx context.Context, commentID string) error {
	endpoint := fmt.Sprintf("/admin/comments/%s/approve", commentID)
	return c.doRequest(ctx, http.MethodPost, endpoint, c.bearer, nil, nil)
}
