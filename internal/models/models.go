// package models defines the data model for the Reel terminal client
package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Timestamp wraps [time.Time] to accept the API's ISO 8601 datetimes,
// which may omit the timezone suffix.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// UserSummary is the denormalized author info attached to videos and comments.
//
// Resolved by a secondary lookup after the owning entry is fetched; zero
// values mean the lookup has not completed or failed.
type UserSummary struct {
	Username  string `json:"username"`
	AvatarURL string `json:"profile_picture_url"`
}

// Resolved reports whether the summary has been filled in.
func (u UserSummary) Resolved() bool {
	return u.Username != ""
}

// Video is a single feed entry. Immutable once placed in the feed sequence,
// except for User which is filled in asynchronously after insertion.
type Video struct {
	ID       string       `json:"video_id"`
	Title    string       `json:"title"`
	Category string       `json:"category"`
	Likes    int          `json:"likes"`
	Comments int          `json:"comments"`
	Views    int          `json:"views"`
	UserID   string       `json:"user_id"`
	User     *UserSummary `json:"user,omitempty"`
}

// Comment is a single video comment.
type Comment struct {
	ID               string       `json:"comment_id"`
	VideoID          string       `json:"video_id"`
	UserID           string       `json:"user_id"`
	Content          string       `json:"content"`
	CreatedAt        Timestamp    `json:"created_at"`
	LikeCount        int          `json:"like_count"`
	ModerationStatus string       `json:"moderation_status"`
	User             *UserSummary `json:"user,omitempty"`
}

// Profile is a user profile with their uploaded videos.
type Profile struct {
	Username   string         `json:"username"`
	AvatarURL  string         `json:"profile_picture_url"`
	LikesCount int            `json:"likes_count"`
	Videos     []ProfileVideo `json:"videos"`
}

// ProfileVideo is a video preview within a profile.
type ProfileVideo struct {
	ID           string `json:"video_id"`
	Title        string `json:"title"`
	Views        int    `json:"views"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// RejectedVideo is a moderation queue entry for a rejected video.
type RejectedVideo struct {
	ID        string    `json:"video_id"`
	Title     string    `json:"title"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt Timestamp `json:"created_at"`
	Reason    string    `json:"moderation_reason"`
	StreamURL string    `json:"video_url"`
}

// RejectedComment is a moderation queue entry for a rejected comment.
type RejectedComment struct {
	ID        string      `json:"comment_id"`
	Content   string      `json:"content"`
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	CreatedAt Timestamp   `json:"created_at"`
	Reason    string      `json:"moderation_reason"`
	Score     float64     `json:"moderation_score"`
	Labels    LabelScores `json:"-"`
}

// LabelScores maps moderation label codes to probabilities in [0,1].
type LabelScores map[string]float64

// Dominant returns the label with the highest probability and its score.
// Returns empty string when no labels are present.
func (ls LabelScores) Dominant() (string, float64) {
	var top string
	var score float64
	for label, p := range ls {
		if top == "" || p > score {
			top, score = label, p
		}
	}
	return top, score
}

// Sorted returns label codes ordered by descending probability.
func (ls LabelScores) Sorted() []string {
	labels := make([]string, 0, len(ls))
	for label := range ls {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if ls[labels[i]] == ls[labels[j]] {
			return labels[i] < labels[j]
		}
		return ls[labels[i]] > ls[labels[j]]
	})
	return labels
}

// labelNames maps the moderation pipeline's label codes to display names.
var labelNames = map[string]string{
	"S":  "Sexual",
	"H":  "Hate",
	"V":  "Violence",
	"HR": "Harassment",
	"SH": "Self-Harm",
	"S3": "Sexual/Minors",
	"H2": "Hate/Threat",
	"V2": "Violence/Graphic",
	"OK": "Safe",
}

// LabelName returns the human-readable name for a moderation label code.
// Unknown codes are returned as-is.
func LabelName(code string) string {
	if name, ok := labelNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}
