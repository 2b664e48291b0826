package ui

import (
	"github.com/wrenhollow/reel/internal/feed"
	"github.com/wrenhollow/reel/internal/models"
	"github.com/wrenhollow/reel/internal/session"
)

// sessionReadyMsg carries the resolved state after session startup.
type sessionReadyMsg struct {
	state session.State
}

// loggedInMsg reports the outcome of a login attempt.
type loggedInMsg struct {
	err error
}

// pageLoadedMsg reports the outcome of a feed page fetch, tagged with the
// session epoch at which the fetch was issued.
type pageLoadedMsg struct {
	added int
	epoch uint64
	err   error
}

// boundMsg carries the refreshed overlay after binding a video.
type boundMsg struct {
	video   models.Video
	overlay feed.Overlay
}

// likeToggledMsg carries the overlay after an optimistic like flip.
type likeToggledMsg struct {
	overlay feed.Overlay
}

// commentsLoadedMsg reports the outcome of a comment list fetch.
type commentsLoadedMsg struct {
	comments []models.Comment
	err      error
}

// commentPostedMsg reports the outcome of a comment submission.
type commentPostedMsg struct {
	comment *models.Comment
	err     error
}

// playbackTickMsg advances the playback clock for the video it was
// scheduled against; ticks from a superseded bind are dropped.
type playbackTickMsg struct {
	videoID string
}
