// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/session"
)

// StubGate reports a fixed session state
type StubGate struct {
	Value session.State
}

func (g *StubGate) State() session.State { return g.Value }

// StubPageAPI is a test double for [feed.PageAPI]
type StubPageAPI struct {
	mu    sync.Mutex
	Pages [][]models.Video
	Users map[string]*models.UserSummary

	PageErr error
	UserErr error

	calls int
}

func (s *StubPageAPI) Recommendations(ctx context.Context) ([]models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PageErr != nil {
		return nil, s.PageErr
	}
	if s.calls >= len(s.Pages) {
		return nil, nil
	}
	page := s.Pages[s.calls]
	s.calls++
	return page, nil
}

func (s *StubPageAPI) User(ctx context.Context, userID string) (*models.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UserErr != nil {
		return nil, s.UserErr
	}
	if u, ok := s.Users[userID]; ok {
		return u, nil
	}
	return nil, errors.New("no such user")
}

func (s *StubPageAPI) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StubEngagementAPI is a test double for [feed.EngagementAPI]
type StubEngagementAPI struct {
	mu sync.Mutex

	Videos     map[string]*models.Video
	Liked      map[string]bool
	CommentSet map[string][]models.Comment

	VideoErr   error
	StatusErr  error
	LikeErr    error
	ViewErr    error
	CommentErr error
	CreateErr  error

	ViewCalls   []string
	LikeCalls   []string
	UnlikeCalls []string
}

func (s *StubEngagementAPI) Video(ctx context.Context, videoID string) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.VideoErr != nil {
		return nil, s.VideoErr
	}
	if v, ok := s.Videos[videoID]; ok {
		return v, nil
	}
	return nil, errors.New("no such video")
}

func (s *StubEngagementAPI) LikeStatus(ctx context.Context, videoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StatusErr != nil {
		return false, s.StatusErr
	}
	return s.Liked[videoID], nil
}

func (s *StubEngagementAPI) Like(ctx context.Context, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LikeCalls = append(s.LikeCalls, videoID)
	return s.LikeErr
}

func (s *StubEngagementAPI) Unlike(ctx context.Context, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UnlikeCalls = append(s.UnlikeCalls, videoID)
	return s.LikeErr
}

func (s *StubEngagementAPI) RecordView(ctx context.Context, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ViewCalls = append(s.ViewCalls, videoID)
	return s.ViewErr
}

func (s *StubEngagementAPI) Comments(ctx context.Context, videoID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CommentErr != nil {
		return nil, s.CommentErr
	}
	return s.CommentSet[videoID], nil
}

func (s *StubEngagementAPI) CreateComment(ctx context.Context, videoID, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	return &models.Comment{ID: "c-new", VideoID: videoID, Content: content}, nil
}

func (s *StubEngagementAPI) Views(videoID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, id := range s.ViewCalls {
		if id == videoID {
			n++
		}
	}
	return n
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
