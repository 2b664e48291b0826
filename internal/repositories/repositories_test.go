package repositories

import (
	"database/sql"
	"testing"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestCredentialRepository(t *testing.T) {
	t.Run("Empty Store", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)

		access, refresh, err := repo.Pair()
		if err != nil {
			t.Fatalf("failed to read pair: %v", err)
		}
		if access != "" || refresh != "" {
			t.Errorf("expected empty pair, got %q %q", access, refresh)
		}
	})

	t.Run("Save And Read Back", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)

		if err := repo.Save("A1", "R1"); err != nil {
			t.Fatalf("failed to save pair: %v", err)
		}

		access, refresh, err := repo.Pair()
		if err != nil {
			t.Fatalf("failed to read pair: %v", err)
		}
		if access != "A1" || refresh != "R1" {
			t.Errorf("expected saved pair, got %q %q", access, refresh)
		}
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)

		if err := repo.Save("A1", "R1"); err != nil {
			t.Fatalf("failed to save pair: %v", err)
		}
		if err := repo.Save("A2", "R2"); err != nil {
			t.Fatalf("failed to overwrite pair: %v", err)
		}

		access, refresh, _ := repo.Pair()
		if access != "A2" || refresh != "R2" {
			t.Errorf("expected fresh pair, got %q %q", access, refresh)
		}
	})

	t.Run("Rejects Partial Pair", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)

		if err := repo.Save("A1", ""); err == nil {
			t.Error("expected error for missing refresh token")
		}
		if err := repo.Save("", "R1"); err == nil {
			t.Error("expected error for missing access token")
		}
	})

	t.Run("Lone Access Token Reads As Absent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)

		// Simulate a crash between the two writes.
		if _, err := db.Exec(
			"INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, datetime('now'))",
			accessTokenKey, "A1",
		); err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}

		access, refresh, err := repo.Pair()
		if err != nil {
			t.Fatalf("failed to read pair: %v", err)
		}
		if access != "" || refresh != "" {
			t.Errorf("expected lone access token hidden, got %q %q", access, refresh)
		}
	})

	t.Run("Lone Refresh Token Survives", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)

		if _, err := db.Exec(
			"INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, datetime('now'))",
			refreshTokenKey, "R1",
		); err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}

		access, refresh, err := repo.Pair()
		if err != nil {
			t.Fatalf("failed to read pair: %v", err)
		}
		if access != "" || refresh != "R1" {
			t.Errorf("expected lone refresh token surfaced, got %q %q", access, refresh)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCredentialRepository(db)

		if err := repo.Save("A1", "R1"); err != nil {
			t.Fatalf("failed to save pair: %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		access, refresh, _ := repo.Pair()
		if access != "" || refresh != "" {
			t.Errorf("expected cleared pair, got %q %q", access, refresh)
		}

		// Clearing again is a no-op.
		if err := repo.Clear(); err != nil {
			t.Errorf("clearing an empty store should not fail: %v", err)
		}
	})
}

func TestVideoCacheRepository(t *testing.T) {
	sample := func(id string) models.Video {
		return models.Video{
			ID:       id,
			Title:    "Test Video " + id,
			Category: "comedy",
			Likes:    10,
			Comments: 2,
			Views:    100,
			UserID:   "u1",
			User:     &models.UserSummary{Username: "alice", AvatarURL: "http://example.com/a.png"},
		}
	}

	t.Run("Put And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoCacheRepository(db)

		if err := repo.Put(sample("v1")); err != nil {
			t.Fatalf("failed to cache video: %v", err)
		}

		video, err := repo.Get("v1")
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}
		if video.Title != "Test Video v1" || video.Likes != 10 {
			t.Errorf("unexpected video %+v", video)
		}
		if video.User == nil || video.User.Username != "alice" {
			t.Errorf("expected cached user summary, got %+v", video.User)
		}
	})

	t.Run("Put Without User Summary", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoCacheRepository(db)

		video := sample("v1")
		video.User = nil
		if err := repo.Put(video); err != nil {
			t.Fatalf("failed to cache video: %v", err)
		}

		cached, err := repo.Get("v1")
		if err != nil {
			t.Fatalf("failed to get video: %v", err)
		}
		if cached.User != nil {
			t.Errorf("expected nil user summary, got %+v", cached.User)
		}
	})

	t.Run("Put Upserts Counts", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoCacheRepository(db)

		if err := repo.Put(sample("v1")); err != nil {
			t.Fatalf("failed to cache video: %v", err)
		}

		fresher := sample("v1")
		fresher.Likes = 11
		fresher.Views = 150
		if err := repo.Put(fresher); err != nil {
			t.Fatalf("failed to refresh video: %v", err)
		}

		video, _ := repo.Get("v1")
		if video.Likes != 11 || video.Views != 150 {
			t.Errorf("expected refreshed counts, got %+v", video)
		}
	})

	t.Run("Get Missing Video", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoCacheRepository(db)

		if _, err := repo.Get("nope"); err == nil {
			t.Error("expected error for uncached video")
		}
	})

	t.Run("Recent Orders Newest First", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoCacheRepository(db)

		for _, id := range []string{"v1", "v2", "v3"} {
			if err := repo.Put(sample(id)); err != nil {
				t.Fatalf("failed to cache %s: %v", id, err)
			}
			// Distinct fetched_at per row.
			if _, err := db.Exec(
				"UPDATE video_cache SET fetched_at = datetime('now', ?) WHERE video_id = ?",
				"-"+id[1:]+" minutes", id,
			); err != nil {
				t.Fatalf("failed to adjust timestamp: %v", err)
			}
		}

		videos, err := repo.Recent(10)
		if err != nil {
			t.Fatalf("failed to list recent: %v", err)
		}
		if len(videos) != 3 {
			t.Fatalf("expected 3 videos, got %d", len(videos))
		}
		if videos[0].ID != "v1" || videos[2].ID != "v3" {
			t.Errorf("expected newest first, got %s %s %s", videos[0].ID, videos[1].ID, videos[2].ID)
		}
	})

	t.Run("Recent Respects Limit", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVideoCacheRepository(db)

		for _, id := range []string{"v1", "v2", "v3"} {
			if err := repo.Put(sample(id)); err != nil {
				t.Fatalf("failed to cache %s: %v", id, err)
			}
		}

		videos, err := repo.Recent(2)
		if err != nil {
			t.Fatalf("failed to list recent: %v", err)
		}
		if len(videos) != 2 {
			t.Errorf("expected 2 videos, got %d", len(videos))
		}
	})
}
