package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/app"
	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/infra/editor"
)

// Kind says what a composer publishes.
type Kind int

const (
	KindComment Kind = iota
	KindPost
)

// Target identifies where submitted text goes. ParentID is nil for a
// top-level comment and unused for posts.
type Target struct {
	Kind     Kind
	PostID   int64
	ParentID *int64
}

// CommentTarget returns the target for a reply under postID.
func CommentTarget(postID int64, parentID *int64) Target {
	return Target{Kind: KindComment, PostID: postID, ParentID: parentID}
}

// PostTarget returns the target for a new post.
func PostTarget() Target {
	return Target{Kind: KindPost}
}

// Key is the composer slot for a target: the parent comment id, or 0 for
// the post itself. Server ids are positive.
func (t Target) Key() int64 {
	if t.ParentID == nil {
		return 0
	}
	return *t.ParentID
}

// Phase is the submission state.
type Phase int

const (
	Idle Phase = iota
	Submitting
)

// SubmittedMsg reports the outcome of a submission.
type SubmittedMsg struct {
	Target  Target
	Comment domain.CreatedComment
	Post    domain.Post
	Err     error
}

// EditorDoneMsg is sent after $EDITOR exits. Content is empty when the user
// cancelled by leaving the buffer empty.
type EditorDoneMsg struct {
	Target  Target
	Content string
	Err     error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	target  Target
	tmpPath string
	err     error
}

// Services are the backends a composer can publish to.
type Services struct {
	Comments app.CommentService
	Posts    app.PostService
	Editor   *editor.EnvEditor
}

// Model is one composer: a text buffer bound to a target, plus its
// Idle/Submitting state. Text survives a failed submission.
type Model struct {
	target   Target
	svc      Services
	textarea textarea.Model
	phase    Phase
	err      error

	// draft holds text set from code (e.g. returned by $EDITOR) verbatim.
	// The textarea caps lines and rewrites tabs, so it only becomes the
	// source of truth once the user types into it.
	draft    string
	hasDraft bool
}

// New creates an idle composer for target.
func New(target Target, svc Services) Model {
	ta := textarea.New()
	ta.Placeholder = placeholder(target)
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(4)
	ta.Focus()

	return Model{target: target, svc: svc, textarea: ta}
}

func placeholder(t Target) string {
	switch {
	case t.Kind == KindPost:
		return "What's on your mind?"
	case t.ParentID == nil:
		return "Add a comment..."
	default:
		return "Write a reply..."
	}
}

func heading(t Target) string {
	switch {
	case t.Kind == KindPost:
		return "New post"
	case t.ParentID == nil:
		return fmt.Sprintf("Commenting on post %d", t.PostID)
	default:
		return fmt.Sprintf("Replying to comment %d", *t.ParentID)
	}
}

func (m Model) Target() Target { return m.target }
func (m Model) Phase() Phase   { return m.phase }
func (m Model) Err() error     { return m.err }

// Value returns the text a submission would send.
func (m Model) Value() string {
	if m.hasDraft {
		return m.draft
	}
	return m.textarea.Value()
}

// SetValue replaces the buffer. The text is kept exactly as given until
// the user edits it.
func (m Model) SetValue(s string) Model {
	m.textarea.SetValue(s)
	m.draft, m.hasDraft = s, true
	return m
}

// SetWidth resizes the text area.
func (m Model) SetWidth(w int) Model {
	if w > 10 {
		m.textarea.SetWidth(w)
	}
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Submit validates the buffer and starts the request. Whitespace-only text
// fails with domain.ErrEmptyComment and a missing credential with
// domain.ErrAuthRequired; neither sends anything. Submitting again while a
// request is in flight is a no-op.
func (m Model) Submit(signedIn bool) (Model, tea.Cmd, error) {
	if m.phase == Submitting {
		return m, nil, nil
	}
	content := strings.TrimSpace(m.Value())
	if content == "" {
		m.err = domain.ErrEmptyComment
		return m, nil, domain.ErrEmptyComment
	}
	if !signedIn {
		m.err = domain.ErrAuthRequired
		return m, nil, domain.ErrAuthRequired
	}

	m.phase = Submitting
	m.err = nil
	return m, submitCmd(m.svc, m.target, content), nil
}

func submitCmd(svc Services, target Target, content string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if target.Kind == KindPost {
			p, err := svc.Posts.CreatePost(ctx, content)
			return SubmittedMsg{Target: target, Post: p, Err: err}
		}
		c, err := svc.Comments.CreateComment(ctx, target.PostID, content, target.ParentID)
		return SubmittedMsg{Target: target, Comment: c, Err: err}
	}
}

// Resolve returns the composer to Idle. On success the buffer is cleared; on
// failure it is kept and the error is retained for display.
func (m Model) Resolve(msg SubmittedMsg) Model {
	m.phase = Idle
	if msg.Err != nil {
		m.err = msg.Err
		return m
	}
	m.err = nil
	m.textarea.Reset()
	m.draft, m.hasDraft = "", false
	return m
}

// OpenEditor hands the buffer to $EDITOR. tea.ExecProcess suspends Bubble
// Tea's raw terminal mode while the editor runs. Nothing happens while a
// submission is in flight.
func (m Model) OpenEditor() tea.Cmd {
	if m.phase == Submitting {
		return nil
	}
	target := m.target
	if m.svc.Editor == nil {
		return func() tea.Msg {
			return EditorDoneMsg{Target: target, Err: fmt.Errorf("no editor configured")}
		}
	}
	cmd, tmpPath, err := m.svc.Editor.Cmd(m.Value(), heading(target))
	if err != nil {
		return func() tea.Msg {
			return EditorDoneMsg{Target: target, Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{target: target, tmpPath: tmpPath, err: err}
	})
}

// Update handles typing and editor completion.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(EditorDoneMsg{Target: msg.target, Err: fmt.Errorf("editor: %w", msg.err)})
		}
		content, err := m.svc.Editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(EditorDoneMsg{Target: msg.target, Err: err})
		}
		if content != "" && m.phase == Idle {
			m = m.SetValue(content)
		}
		return m, done(EditorDoneMsg{Target: msg.target, Content: content})

	case tea.KeyMsg:
		if m.phase == Submitting {
			return m, nil
		}
		m.hasDraft = false
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// done wraps a message into a tea.Cmd for immediate delivery.
func done(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// EditorTarget reports the target of a pending $EDITOR completion, so the
// message can be routed to the composer that launched it.
func EditorTarget(msg tea.Msg) (Target, bool) {
	if m, ok := msg.(editorFinishedMsg); ok {
		return m.target, true
	}
	return Target{}, false
}
