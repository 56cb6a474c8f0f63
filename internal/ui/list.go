package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/twilightlabs/twilight/internal/formatter"
	"github.com/twilightlabs/twilight/internal/models"
)

var (
	_ list.Item = postItem{}
)

// postItem wraps [models.Post] to implement [list.Item].
type postItem struct {
	post models.Post
}

func (i postItem) FilterValue() string { return i.post.Content }
func (i postItem) Title() string {
	return formatter.Truncate(i.post.Content, 60)
}
func (i postItem) Description() string {
	return fmt.Sprintf("%s • %s", i.post.Status, i.post.CreatedAt.Format("2006-01-02 15:04"))
}
