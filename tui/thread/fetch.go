package thread

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/domain"
)

// Expand opens the thread and fetches its detail. Every expand fetches
// again; a previously loaded tree stays visible until the new one lands.
func (m Model) Expand() (Model, tea.Cmd) {
	m.open = true
	return m.Refresh()
}

// Collapse hides the thread. The loaded tree and any in-flight fetch are
// kept, so a late result still updates this thread.
func (m Model) Collapse() Model {
	m.open = false
	m.active = nil
	return m
}

// Refresh issues a new fetch that supersedes all earlier ones.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.reqSeq++
	m.loading = true
	return m, fetchDetailCmd(m.svc, m.post.ID, m.reqSeq)
}

// ResumeSeq continues fetch numbering after seq, so results of fetches
// issued by an earlier model of the same post count as stale.
func (m Model) ResumeSeq(seq int) Model {
	if seq > m.reqSeq {
		m.reqSeq = seq
	}
	return m
}

func fetchDetailCmd(svc Services, postID int64, seq int) tea.Cmd {
	return func() tea.Msg {
		d, err := svc.Posts.FetchPostDetail(context.Background(), postID)
		if err != nil {
			return DetailErrorMsg{PostID: postID, Seq: seq, Err: err}
		}
		return DetailLoadedMsg{PostID: postID, Seq: seq, Detail: d}
	}
}

// applyDetail replaces the tree wholesale and rebuilds every like cell.
// A like still in flight stays pending and overwrites its new cell when it
// answers.
func (m Model) applyDetail(msg DetailLoadedMsg) Model {
	if msg.Seq != m.reqSeq {
		return m
	}
	d := msg.Detail
	m.detail = &d
	m.loading = false
	m.err = nil

	m.post.Author = d.Author
	m.post.Content = d.Content
	m.post.CreatedAt = d.CreatedAt
	m.post.CommentCount = domain.TotalCount(d.Comments)

	likes := make(map[domain.EntityRef]LikeCell, len(m.likes))
	likes[domain.PostRef(d.ID)] = LikeCell{Count: d.LikeCount, Liked: d.LikedByMe}
	for _, fc := range domain.Flatten(d.Comments) {
		likes[domain.CommentRef(fc.Comment.ID)] = LikeCell{Count: fc.Comment.LikeCount, Liked: fc.Comment.LikedByMe}
	}
	m.likes = likes

	if rows := domain.TotalCount(d.Comments); m.cursor >= rows {
		m.cursor = rows - 1
	}
	return m
}

func (m Model) applyDetailError(msg DetailErrorMsg) Model {
	if msg.Seq != m.reqSeq {
		return m
	}
	m.loading = false
	m.err = msg.Err
	m.svc.Log.Warn().Err(msg.Err).Int64("post_id", msg.PostID).Int("seq", msg.Seq).Msg("detail fetch failed")
	return m
}
