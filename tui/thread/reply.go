package thread

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/tui/compose"
)

// OpenComposer focuses the composer for parentID (nil for a top-level
// comment), creating it on first use. Text typed earlier is kept.
func (m Model) OpenComposer(parentID *int64) (Model, tea.Cmd) {
	target := compose.CommentTarget(m.post.ID, parentID)
	key := target.Key()
	c, ok := m.composers[key]
	if !ok {
		c = compose.New(target, m.svc.Compose)
		m.composers[key] = c
	}
	m.active = &key
	return m, c.Init()
}

// CloseComposer unfocuses the active composer without discarding its text.
func (m Model) CloseComposer() Model {
	m.active = nil
	return m
}

// ActiveComposer returns the focused composer, if any.
func (m Model) ActiveComposer() (compose.Model, bool) {
	if m.active == nil {
		return compose.Model{}, false
	}
	c, ok := m.composers[*m.active]
	return c, ok
}

// Composer returns the composer for a slot key (0 for top-level).
func (m Model) Composer(key int64) (compose.Model, bool) {
	c, ok := m.composers[key]
	return c, ok
}

// UpdateComposer forwards input to the focused composer.
func (m Model) UpdateComposer(msg tea.Msg) (Model, tea.Cmd) {
	if m.active == nil {
		return m, nil
	}
	c, ok := m.composers[*m.active]
	if !ok {
		return m, nil
	}
	c, cmd := c.Update(msg)
	m.composers[*m.active] = c
	return m, cmd
}

// OpenEditor hands the focused composer's text to $EDITOR.
func (m Model) OpenEditor() tea.Cmd {
	c, ok := m.ActiveComposer()
	if !ok {
		return nil
	}
	return c.OpenEditor()
}

// SubmitReply submits the focused composer.
func (m Model) SubmitReply(signedIn bool) (Model, tea.Cmd, error) {
	if m.active == nil {
		return m, nil, nil
	}
	return m.submit(*m.active, signedIn)
}

// Reply sets the composer for parentID to text and submits it. While that
// composer is still submitting, Reply does nothing and its buffer is left
// alone.
func (m Model) Reply(parentID *int64, text string, signedIn bool) (Model, tea.Cmd, error) {
	key := compose.CommentTarget(m.post.ID, parentID).Key()
	if m.submitting(key) {
		return m, nil, nil
	}
	m, _ = m.OpenComposer(parentID)
	m.composers[key] = m.composers[key].SetValue(text)
	return m.submit(key, signedIn)
}

func (m Model) submitting(key int64) bool {
	c, ok := m.composers[key]
	return ok && c.Phase() == compose.Submitting
}

func (m Model) submit(key int64, signedIn bool) (Model, tea.Cmd, error) {
	c, ok := m.composers[key]
	if !ok {
		return m, nil, nil
	}
	c, cmd, err := c.Submit(signedIn)
	m.composers[key] = c
	return m, cmd, err
}

// applySubmitted settles a submission. Success clears the composer, closes
// it and reloads the whole tree; the new comment is never patched in.
func (m Model) applySubmitted(msg compose.SubmittedMsg) (Model, tea.Cmd) {
	key := msg.Target.Key()
	c, ok := m.composers[key]
	if !ok {
		return m, nil
	}
	m.composers[key] = c.Resolve(msg)
	if msg.Err != nil {
		m.svc.Log.Warn().Err(msg.Err).Int64("post_id", msg.Target.PostID).Int64("parent", key).Msg("reply failed")
		return m, nil
	}
	if m.active != nil && *m.active == key {
		m.active = nil
	}
	return m.Refresh()
}

// applyEditorDone submits text returned from $EDITOR. An empty buffer means
// the user cancelled.
func (m Model) applyEditorDone(msg compose.EditorDoneMsg, signedIn bool) (Model, tea.Cmd, error) {
	if msg.Err != nil {
		return m, nil, msg.Err
	}
	if msg.Content == "" {
		return m, nil, nil
	}
	key := msg.Target.Key()
	c, ok := m.composers[key]
	if !ok || c.Phase() == compose.Submitting {
		return m, nil, nil
	}
	m.composers[key] = c.SetValue(msg.Content)
	return m.submit(key, signedIn)
}
