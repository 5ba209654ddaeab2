package feed

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/tui/thread"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.IsComposing() {
		return m.handleComposeKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = !m.showAllHints
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if t, ok := m.selectedThread(); ok && t.IsOpen() {
			t, cmd := t.Refresh()
			m.threads[t.PostID()] = t
			return m, cmd
		}
		m.setStatus("", true)
		return m.Refresh()

	case key.Matches(msg, m.keys.Up):
		return m.moveSelection(-1), nil

	case key.Matches(msg, m.keys.Down):
		return m.moveSelection(1), nil
	}

	t, ok := m.selectedThread()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if t.IsOpen() {
			m.threads[t.PostID()] = t.Collapse()
			return m, nil
		}
		t, cmd := t.Expand()
		m.threads[t.PostID()] = t
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		if t.IsOpen() {
			m.threads[t.PostID()] = t.Collapse()
		}
		return m, nil

	case key.Matches(msg, m.keys.Like):
		ref := domain.PostRef(t.PostID())
		if t.IsOpen() {
			ref = t.Selected()
		}
		t, cmd, err := t.Like(ref, m.signedIn)
		m.threads[t.PostID()] = t
		if err != nil {
			m.setStatus(StatusText(err), false)
		}
		return m, cmd

	case key.Matches(msg, m.keys.Reply):
		return m.startReply(t, false)

	case key.Matches(msg, m.keys.ReplyEditor):
		return m.startReply(t, true)
	}
	return m, nil
}

// startReply focuses the composer for the selected row, expanding the
// thread first when it is collapsed. With editor set the text is written
// in $EDITOR instead.
func (m Model) startReply(t thread.Model, editor bool) (Model, tea.Cmd) {
	if !m.signedIn {
		m.setStatus(StatusText(domain.ErrAuthRequired), false)
		return m, nil
	}
	var cmds []tea.Cmd
	var parent *int64
	if t.IsOpen() {
		parent = t.ReplyParent()
	} else {
		var cmd tea.Cmd
		t, cmd = t.Expand()
		cmds = append(cmds, cmd)
	}
	t, cmd := t.OpenComposer(parent)
	cmds = append(cmds, cmd)
	if editor {
		cmds = append(cmds, t.OpenEditor())
	}
	m.threads[t.PostID()] = t
	return m, tea.Batch(cmds...)
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	id, _ := m.SelectedPostID()
	t := m.threads[id]

	switch {
	case key.Matches(msg, m.keys.Submit):
		t, cmd, err := t.SubmitReply(m.signedIn)
		m.threads[id] = t
		if err != nil {
			m.setStatus(StatusText(err), false)
		} else if cmd != nil {
			m.setStatus("Sending reply...", true)
		}
		return m, cmd

	case key.Matches(msg, m.keys.Editor):
		return m, t.OpenEditor()

	case key.Matches(msg, m.keys.Back):
		m.threads[id] = t.CloseComposer()
		return m, nil
	}

	t, cmd := t.UpdateComposer(msg)
	m.threads[id] = t
	return m, cmd
}

// moveSelection walks the comment rows of an open thread and steps to the
// neighbouring post at either end.
func (m Model) moveSelection(delta int) Model {
	if len(m.order) == 0 {
		return m
	}
	if t, ok := m.selectedThread(); ok && t.IsOpen() {
		moved := t.MoveCursor(delta)
		if moved.Cursor() != t.Cursor() {
			m.threads[t.PostID()] = moved
			return m
		}
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.order) {
		return m
	}
	m.cursor = next
	if t := m.threads[m.order[next]]; t.IsOpen() {
		// Entering an open thread from below lands on its last row, from
		// above on the post itself.
		if delta < 0 {
			t = t.MoveCursor(t.TotalCount())
		} else {
			t = t.MoveCursor(-t.TotalCount() - 1)
		}
		m.threads[t.PostID()] = t
	}
	return m
}

// StatusText turns an interaction error into a status bar message.
func StatusText(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		return "Sign in to like or reply (set ECHOTERM_ACCESS_TOKEN)"
	case errors.Is(err, domain.ErrEmptyComment):
		return "Write something before sending"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "Server sent an unexpected response"
	}
	if domain.IsUnauthorized(err) {
		return "Session rejected by the server: " + err.Error()
	}
	return "Error: " + err.Error()
}
