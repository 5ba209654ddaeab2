package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/echoterm/app"
	"github.com/CrestNiraj12/echoterm/tui/common"
	"github.com/CrestNiraj12/echoterm/tui/thread"
)

// New creates a feed model with injected dependencies.
func New(posts app.PostService, threads thread.Services, signedIn bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		modelServices: modelServices{
			posts:     posts,
			threadSvc: threads,
		},
		feedState: feedState{
			threads:    make(map[int64]thread.Model),
			retiredSeq: make(map[int64]int),
			loading:    true,
		},
		uiState: uiState{
			keys:     common.DefaultKeyMap(),
			spinner:  s,
			viewport: viewport.New(80, 20),
			width:    80,
			height:   24,
			now:      time.Now,
		},
		sessionState: sessionState{
			signedIn: signedIn,
		},
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(m.feedReqSeq),
		m.spinner.Tick,
	)
}

// Refresh returns a Cmd that re-fetches the feed. Earlier fetches still in
// flight are ignored when they land.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.feedReqSeq++
	m.loading = true
	return m, m.fetchPosts(m.feedReqSeq)
}

// SetSize resizes the feed to the area below the app header.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = m.bodyHeight()
	m.ensureSelectionVisible()
	return m
}

// SetSignedIn switches likes and replies on or off.
func (m Model) SetSignedIn(signedIn bool) Model {
	m.signedIn = signedIn
	return m
}

func (m Model) SignedIn() bool { return m.signedIn }

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// IsComposing reports whether a reply composer has keyboard focus.
func (m Model) IsComposing() bool {
	t, ok := m.selectedThread()
	if !ok {
		return false
	}
	_, active := t.ActiveComposer()
	return active && t.IsOpen()
}

// Thread returns the thread model for a post.
func (m Model) Thread(postID int64) (thread.Model, bool) {
	t, ok := m.threads[postID]
	return t, ok
}

// SelectedPostID returns the post under the cursor.
func (m Model) SelectedPostID() (int64, bool) {
	if m.cursor < 0 || m.cursor >= len(m.order) {
		return 0, false
	}
	return m.order[m.cursor], true
}

func (m Model) selectedThread() (thread.Model, bool) {
	id, ok := m.SelectedPostID()
	if !ok {
		return thread.Model{}, false
	}
	return m.Thread(id)
}

// setStatus shows a transient message in the status bar.
func (m *Model) setStatus(msg string, ok bool) {
	m.status = msg
	m.statusOK = ok
}

// Status returns the current status bar message.
func (m Model) Status() string { return m.status }
