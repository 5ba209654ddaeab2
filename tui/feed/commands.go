package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchPosts(seq int) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		list, err := posts.FetchPosts(context.Background())
		if err != nil {
			return PostsErrorMsg{Err: err, ReqSeq: seq}
		}
		return PostsLoadedMsg{Posts: list, ReqSeq: seq}
	}
}
