package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/session"
	"github.com/wrenhollow/reel/internal/shared"
)

// DefaultPrefetchMargin is how close to the end of the loaded sequence the
// cursor may get before the next page is requested.
const DefaultPrefetchMargin = 3

// Direction selects which neighbor Advance moves the cursor to.
type Direction int

const (
	Next Direction = iota
	Previous
)

// PageAPI is the recommendation surface the controller consumes.
type PageAPI interface {
	Recommendations(ctx context.Context) ([]models.Video, error)
	User(ctx context.Context, userID string) (*models.UserSummary, error)
}

// SessionGate reports whether the account is signed in. Loading is refused
// for anything other than an authenticated session.
type SessionGate interface {
	State() session.State
}

// VideoSink receives loaded entries for local persistence. Failures are
// logged and never affect the in-memory sequence.
type VideoSink interface {
	Put(video models.Video) error
}

// Controller maintains the feed sequence and cursor.
//
// The sequence is append-only: once an entry is inserted its index is stable
// until the controller is discarded. The cursor is clamped to the loaded
// range, so Advance never produces a gap or an out-of-bounds position.
type Controller struct {
	mu     sync.Mutex
	api    PageAPI
	gate   SessionGate
	sink   VideoSink
	logger *log.Logger

	entries []models.Video
	seen    map[string]struct{}
	cursor  int
	margin  int
	loading bool
}

// NewController builds a feed controller. The sink may be nil when no local
// cache is wanted.
func NewController(api PageAPI, gate SessionGate, sink VideoSink, logger *log.Logger) *Controller {
	return &Controller{
		api:    api,
		gate:   gate,
		sink:   sink,
		logger: logger,
		seen:   make(map[string]struct{}),
		margin: DefaultPrefetchMargin,
	}
}

// SetPrefetchMargin overrides the read-ahead distance. Values below 1 keep
// the current margin.
func (c *Controller) SetPrefetchMargin(n int) {
	if n < 1 {
		return
	}
	c.mu.Lock()
	c.margin = n
	c.mu.Unlock()
}

// Len reports how many entries are loaded.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cursor reports the current position in the sequence.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Current returns a copy of the entry under the cursor. The boolean is false
// while the sequence is empty.
func (c *Controller) Current() (models.Video, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return models.Video{}, false
	}
	return c.entries[c.cursor], true
}

// Entries returns a snapshot of the loaded sequence in feed order.
func (c *Controller) Entries() []models.Video {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Video, len(c.entries))
	copy(out, c.entries)
	return out
}

// LoadMore fetches one recommendation page and appends the new entries,
// reporting how many were added. Entries whose id is already present are
// skipped so a repeated recommendation never duplicates a position. On any
// failure the sequence and cursor are left exactly as they were.
//
// Only one load runs at a time; overlapping calls return immediately with
// zero appended.
func (c *Controller) LoadMore(ctx context.Context) (int, error) {
	if c.gate != nil && c.gate.State() != session.Authenticated {
		return 0, fmt.Errorf("%w: feed requires an active session", shared.ErrNotAuthenticated)
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return 0, nil
	}
	c.loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	page, err := c.api.Recommendations(ctx)
	if err != nil {
		return 0, fmt.Errorf("feed page: %w", err)
	}

	fresh := make([]models.Video, 0, len(page))
	c.mu.Lock()
	for _, v := range page {
		if _, dup := c.seen[v.ID]; dup {
			continue
		}
		c.seen[v.ID] = struct{}{}
		fresh = append(fresh, v)
	}
	start := len(c.entries)
	c.entries = append(c.entries, fresh...)
	c.mu.Unlock()

	if len(fresh) > 0 {
		c.resolveSummaries(ctx, start, fresh)
	}
	return len(fresh), nil
}

// resolveSummaries fills in uploader names for the entries appended at
// start. Lookups run concurrently; a failed lookup leaves the summary
// absent rather than failing the page.
func (c *Controller) resolveSummaries(ctx context.Context, start int, fresh []models.Video) {
	var wg sync.WaitGroup
	summaries := make([]*models.UserSummary, len(fresh))
	for i, v := range fresh {
		if v.User != nil || v.UserID == "" {
			continue
		}
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			summary, err := c.api.User(ctx, userID)
			if err != nil {
				c.logger.Debug("uploader lookup failed", "user_id", userID, "error", err)
				return
			}
			summaries[i] = summary
		}(i, v.UserID)
	}
	wg.Wait()

	c.mu.Lock()
	for i, s := range summaries {
		if s != nil {
			c.entries[start+i].User = s
		}
	}
	snapshot := make([]models.Video, len(fresh))
	copy(snapshot, c.entries[start:start+len(fresh)])
	c.mu.Unlock()

	if c.sink == nil {
		return
	}
	for _, v := range snapshot {
		if err := c.sink.Put(v); err != nil {
			c.logger.Debug("video cache write failed", "video_id", v.ID, "error", err)
		}
	}
}

// Advance moves the cursor one step in the given direction, clamped to the
// loaded range. It reports the entry now under the cursor and whether the
// remaining read-ahead has shrunk enough that the caller should trigger
// another LoadMore.
func (c *Controller) Advance(dir Direction) (models.Video, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) == 0 {
		return models.Video{}, false
	}

	switch dir {
	case Next:
		if c.cursor < len(c.entries)-1 {
			c.cursor++
		}
	case Previous:
		if c.cursor > 0 {
			c.cursor--
		}
	}

	needMore := dir == Next && c.cursor >= len(c.entries)-c.margin
	return c.entries[c.cursor], needMore
}
