package thread

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/tui/compose"
)

// Update applies an async result addressed to this thread. Messages for
// another post are ignored. signedIn is consulted when an editor result
// turns into a submission. The returned error is for the status bar.
func (m Model) Update(msg tea.Msg, signedIn bool) (Model, tea.Cmd, error) {
	switch msg := msg.(type) {
	case DetailLoadedMsg:
		if msg.PostID != m.post.ID {
			return m, nil, nil
		}
		return m.applyDetail(msg), nil, nil

	case DetailErrorMsg:
		if msg.PostID != m.post.ID {
			return m, nil, nil
		}
		m = m.applyDetailError(msg)
		if msg.Seq == m.reqSeq {
			return m, nil, msg.Err
		}
		return m, nil, nil

	case LikeResultMsg:
		if msg.PostID != m.post.ID {
			return m, nil, nil
		}
		m, cmd := m.applyLike(msg)
		return m, cmd, msg.Err

	case compose.SubmittedMsg:
		if msg.Target.Kind != compose.KindComment || msg.Target.PostID != m.post.ID {
			return m, nil, nil
		}
		m, cmd := m.applySubmitted(msg)
		return m, cmd, msg.Err

	case compose.EditorDoneMsg:
		if msg.Target.Kind != compose.KindComment || msg.Target.PostID != m.post.ID {
			return m, nil, nil
		}
		return m.applyEditorDone(msg, signedIn)
	}

	if t, ok := compose.EditorTarget(msg); ok {
		if t.Kind != compose.KindComment || t.PostID != m.post.ID {
			return m, nil, nil
		}
		c, ok := m.composers[t.Key()]
		if !ok {
			return m, nil, nil
		}
		c, cmd := c.Update(msg)
		m.composers[t.Key()] = c
		return m, cmd, nil
	}

	m, cmd := m.UpdateComposer(msg)
	return m, cmd, nil
}

// PostIDOf extracts the post a thread message is addressed to.
func PostIDOf(msg tea.Msg) (int64, bool) {
	switch msg := msg.(type) {
	case DetailLoadedMsg:
		return msg.PostID, true
	case DetailErrorMsg:
		return msg.PostID, true
	case LikeResultMsg:
		return msg.PostID, true
	case compose.SubmittedMsg:
		if msg.Target.Kind == compose.KindComment {
			return msg.Target.PostID, true
		}
	case compose.EditorDoneMsg:
		if msg.Target.Kind == compose.KindComment {
			return msg.Target.PostID, true
		}
	}
	if t, ok := compose.EditorTarget(msg); ok && t.Kind == compose.KindComment {
		return t.PostID, true
	}
	return 0, false
}
