package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/tui/compose"
	"github.com/CrestNiraj12/echoterm/tui/thread"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PostsLoadedMsg:
		return m.handlePostsLoaded(msg)

	case PostsErrorMsg:
		return m.handlePostsError(msg)

	case tea.KeyMsg:
		m, cmd := m.handleKeyMsg(msg)
		m.ensureSelectionVisible()
		return m, cmd
	}

	if postID, ok := thread.PostIDOf(msg); ok {
		return m.routeToThread(postID, msg)
	}

	// Cursor blink and similar ticks belong to the focused composer.
	if m.IsComposing() {
		id, _ := m.SelectedPostID()
		t := m.threads[id]
		t, cmd := t.UpdateComposer(msg)
		m.threads[id] = t
		return m, cmd
	}
	return m, nil
}

// routeToThread hands an async result to the thread of the post it belongs
// to. Results for posts no longer in the feed are dropped.
func (m Model) routeToThread(postID int64, msg tea.Msg) (Model, tea.Cmd) {
	t, ok := m.threads[postID]
	if !ok {
		return m, nil
	}
	t, cmd, err := t.Update(msg, m.signedIn)
	m.threads[postID] = t

	if err != nil {
		m.setStatus(StatusText(err), false)
	} else {
		m.resultStatus(msg)
	}
	m.ensureSelectionVisible()
	return m, cmd
}

func (m *Model) resultStatus(msg tea.Msg) {
	switch msg := msg.(type) {
	case thread.LikeResultMsg:
		if msg.Result.AlreadyLiked {
			m.setStatus("Already liked", true)
		} else {
			m.setStatus("Liked", true)
		}
	case compose.SubmittedMsg:
		m.setStatus("Reply posted", true)
	}
}
