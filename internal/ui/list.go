package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/wrenhollow/reel/internal/models"
)

var (
	_ list.Item = commentItem{}
)

// commentItem wraps [models.Comment] to implement [list.Item].
type commentItem struct {
	comment models.Comment
}

func (i commentItem) FilterValue() string { return i.comment.Content }
func (i commentItem) Title() string       { return i.comment.Content }
func (i commentItem) Description() string {
	author := "unknown"
	if i.comment.User != nil && i.comment.User.Username != "" {
		author = i.comment.User.Username
	}
	return fmt.Sprintf("%s • %s", author, i.comment.CreatedAt.Format("Jan 2 15:04"))
}
