package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/wrenhollow/reel/internal/models"
)

// VideoCacheRepository keeps a write-through copy of feed entries.
//
// The feed controller stores every appended entry here; the CLI can then
// inspect recently seen videos without a network round trip. Duplicate
// video ids overwrite the cached row with the fresher counts.
type VideoCacheRepository struct {
	db *sql.DB
}

// NewVideoCacheRepository creates a new [VideoCacheRepository] with the given database connection
func NewVideoCacheRepository(db *sql.DB) *VideoCacheRepository {
	return &VideoCacheRepository{db: db}
}

// Put inserts or refreshes a cached video.
func (r *VideoCacheRepository) Put(video models.Video) error {
	query := `
		INSERT INTO video_cache (video_id, user_id, title, category, likes, comments, views, username, avatar_url, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			likes = excluded.likes,
			comments = excluded.comments,
			views = excluded.views,
			username = excluded.username,
			avatar_url = excluded.avatar_url,
			fetched_at = excluded.fetched_at
	`

	var username, avatarURL string
	if video.User != nil {
		username = video.User.Username
		avatarURL = video.User.AvatarURL
	}

	_, err := r.db.Exec(query,
		video.ID, video.UserID, video.Title, video.Category,
		video.Likes, video.Comments, video.Views,
		username, avatarURL, time.Now().UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache video: %w", err)
	}
	return nil
}

// Get retrieves a cached video by id.
func (r *VideoCacheRepository) Get(videoID string) (*models.Video, error) {
	query := `
		SELECT video_id, user_id, title, category, likes, comments, views, username, avatar_url
		FROM video_cache
		WHERE video_id = ?
	`

	video, err := scanVideo(r.db.QueryRow(query, videoID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("video not cached: %s", videoID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query video cache: %w", err)
	}
	return video, nil
}

// Recent lists the most recently fetched videos, newest first.
func (r *VideoCacheRepository) Recent(limit int) ([]models.Video, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT video_id, user_id, title, category, likes, comments, views, username, avatar_url
		FROM video_cache
		ORDER BY fetched_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query video cache: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached video: %w", err)
		}
		videos = append(videos, *video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*models.Video, error) {
	var (
		video     models.Video
		category  sql.NullString
		username  sql.NullString
		avatarURL sql.NullString
	)

	err := row.Scan(&video.ID, &video.UserID, &video.Title, &category,
		&video.Likes, &video.Comments, &video.Views, &username, &avatarURL)
	if err != nil {
		return nil, err
	}

	video.Category = category.String
	if username.Valid && username.String != "" {
		video.User = &models.UserSummary{Username: username.String, AvatarURL: avatarURL.String}
	}
	return &video, nil
}
