package thread

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/app"
	"github.com/CrestNiraj12/echoterm/domain"
)

// Like sends one like request for ref. Without a credential it fails with
// domain.ErrAuthRequired; while a request for ref is in flight it does
// nothing. The displayed cell is untouched until the server answers.
func (m Model) Like(ref domain.EntityRef, signedIn bool) (Model, tea.Cmd, error) {
	if !signedIn {
		return m, nil, domain.ErrAuthRequired
	}
	if m.pending[ref] {
		return m, nil, nil
	}
	m.pending[ref] = true
	return m, likeCmd(m.svc.Likes, m.post.ID, ref), nil
}

func likeCmd(svc app.LikeService, postID int64, ref domain.EntityRef) tea.Cmd {
	return func() tea.Msg {
		res, err := app.Like(context.Background(), svc, ref)
		return LikeResultMsg{PostID: postID, Ref: ref, Result: res, Err: err}
	}
}

// applyLike settles a like. On success the server count wins and the cell
// is marked liked, also when the server reports the like already existed.
// On failure the cell is left as it was. A loaded, open thread refreshes
// after a successful like.
func (m Model) applyLike(msg LikeResultMsg) (Model, tea.Cmd) {
	delete(m.pending, msg.Ref)
	if msg.Err != nil {
		m.svc.Log.Warn().Err(msg.Err).Int64("post_id", msg.PostID).
			Str("kind", msg.Ref.Kind.String()).Int64("id", msg.Ref.ID).Msg("like failed")
		return m, nil
	}
	if _, ok := m.likes[msg.Ref]; ok {
		m.likes[msg.Ref] = LikeCell{Count: msg.Result.LikeCount, Liked: true}
	}
	if m.open && m.detail != nil {
		return m.Refresh()
	}
	return m, nil
}
