package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchVideos Phase = iota
	FetchComments
	ApproveItem
	Summarize
)

func (p Phase) String() string {
	switch p {
	case FetchVideos:
		return "fetch_videos"
	case FetchComments:
		return "fetch_comments"
	case ApproveItem:
		return "approve_item"
	case Summarize:
		return "summarize"
	default:
		return ""
	}
}

func fetchVideosUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchVideos,
		Step:    step,
		Total:   total,
		Message: "Fetching rejected videos...",
	}
}

func fetchCommentsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchComments,
		Step:    step,
		Total:   total,
		Message: "Fetching rejected comments...",
	}
}

func approveUpdate(step, total int, kind, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApproveItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Approving %s %s...", kind, id),
	}
}

func summaryUpdate(videos, comments int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summarize,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Review queue: %d videos, %d comments", videos, comments),
	}
}

// sendProgress safely sends a progress update, ignoring nil channels.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress != nil {
		progress <- update
	}
}
