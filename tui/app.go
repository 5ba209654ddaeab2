package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/echoterm/app"
	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/infra/editor"
	"github.com/CrestNiraj12/echoterm/tui/common"
	"github.com/CrestNiraj12/echoterm/tui/compose"
	"github.com/CrestNiraj12/echoterm/tui/feed"
	"github.com/CrestNiraj12/echoterm/tui/thread"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts    app.PostService
	Comments app.CommentService
	Likes    app.LikeService
	Account  app.AccountService
	Editor   *editor.EnvEditor
	Log      zerolog.Logger
	SignedIn bool // a credential is configured
}

type activeView int

const (
	feedView activeView = iota
	composeView
)

// headerLines is the height of the title block drawn above every view.
const headerLines = 3

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps     Deps
	active   activeView
	feed     feed.Model
	compose  compose.Model
	keys     common.KeyMap
	user     *domain.User
	signedIn bool
	status   string // Transient status message (e.g. "Post published")
	width    int
}

type meLoadedMsg struct {
	User domain.User
	Err  error
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:     deps,
		active:   feedView,
		feed:     feed.New(deps.Posts, deps.threadServices(), deps.SignedIn),
		keys:     common.DefaultKeyMap(),
		signedIn: deps.SignedIn,
		width:    80,
	}
}

func (d Deps) composeServices() compose.Services {
	return compose.Services{Comments: d.Comments, Posts: d.Posts, Editor: d.Editor}
}

func (d Deps) threadServices() thread.Services {
	return thread.Services{
		Posts:    d.Posts,
		Comments: d.Comments,
		Likes:    d.Likes,
		Compose:  d.composeServices(),
		Log:      d.Log,
	}
}

// Init starts the feed fetch and, with a credential, looks up who we are.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.feed.Init()}
	if a.signedIn && a.deps.Account != nil {
		cmds = append(cmds, a.fetchMe())
	}
	return tea.Batch(cmds...)
}

func (a App) fetchMe() tea.Cmd {
	account := a.deps.Account
	return func() tea.Msg {
		u, err := account.Me(context.Background())
		return meLoadedMsg{User: u, Err: err}
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.feed = a.feed.SetSize(msg.Width, msg.Height-headerLines)
		return a, nil

	case meLoadedMsg:
		return a.handleMe(msg), nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.active == composeView {
			return a.handleComposeKey(msg)
		}
		if !a.feed.IsComposing() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.NewPost):
				return a.openPostComposer()
			}
		}

	case compose.SubmittedMsg:
		if msg.Target.Kind == compose.KindPost {
			return a.handlePostSubmitted(msg)
		}

	case compose.EditorDoneMsg:
		if msg.Target.Kind == compose.KindPost {
			return a.handlePostEditorDone(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	}

	if t, ok := compose.EditorTarget(msg); ok && t.Kind == compose.KindPost {
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		return a, cmd
	}

	if a.active == composeView && !a.feedOwns(msg) {
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.feed, cmd = a.feed.Update(msg)
	return a, cmd
}

// feedOwns reports whether msg is an async result the feed must see even
// while another view has focus.
func (a App) feedOwns(msg tea.Msg) bool {
	switch msg.(type) {
	case feed.PostsLoadedMsg, feed.PostsErrorMsg:
		return true
	}
	_, ok := thread.PostIDOf(msg)
	return ok
}

func (a App) handleMe(msg meLoadedMsg) App {
	if msg.Err != nil {
		a.deps.Log.Warn().Err(msg.Err).Msg("fetching current user failed")
		if domain.IsUnauthorized(msg.Err) {
			a.signedIn = false
			a.feed = a.feed.SetSignedIn(false)
			a.status = "Token rejected by the server. Browsing read-only."
		}
		return a
	}
	u := msg.User
	a.user = &u
	return a
}

func (a App) openPostComposer() (tea.Model, tea.Cmd) {
	if !a.signedIn {
		a.status = feed.StatusText(domain.ErrAuthRequired)
		return a, nil
	}
	a.active = composeView
	a.status = ""
	a.compose = compose.New(compose.PostTarget(), a.deps.composeServices()).SetWidth(a.width - 4)
	return a, a.compose.Init()
}

func (a App) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		if a.compose.Phase() == compose.Submitting {
			return a, nil
		}
		a.active = feedView
		a.status = "Cancelled."
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		return a.submitPost()

	case key.Matches(msg, a.keys.Editor):
		return a, a.compose.OpenEditor()
	}

	var cmd tea.Cmd
	a.compose, cmd = a.compose.Update(msg)
	return a, cmd
}

func (a App) submitPost() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var err error
	a.compose, cmd, err = a.compose.Submit(a.signedIn)
	if err != nil {
		a.status = feed.StatusText(err)
	} else if cmd != nil {
		a.status = "Posting..."
	}
	return a, cmd
}

func (a App) handlePostSubmitted(msg compose.SubmittedMsg) (tea.Model, tea.Cmd) {
	a.compose = a.compose.Resolve(msg)
	if msg.Err != nil {
		a.deps.Log.Warn().Err(msg.Err).Msg("creating post failed")
		a.status = feed.StatusText(msg.Err)
		return a, nil
	}
	a.active = feedView
	a.status = "Post published."
	var cmd tea.Cmd
	a.feed, cmd = a.feed.Refresh()
	return a, cmd
}

func (a App) handlePostEditorDone(msg compose.EditorDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.status = feed.StatusText(msg.Err)
		return a, nil
	}
	if msg.Content == "" {
		a.status = "Cancelled."
		return a, nil
	}
	a.compose = a.compose.SetValue(msg.Content)
	return a.submitPost()
}

// View renders the title block and the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case feedView:
		s = a.feed.View()
	case composeView:
		s = common.HeaderStyle.Render("  New post") + "\n\n" + a.compose.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}
	return a.header() + "\n" + s
}

func (a App) header() string {
	title := common.AppTitleStyle.Render("echoterm")
	switch {
	case a.user != nil:
		return title + common.UserStyle.Render("@"+a.user.Username)
	case a.signedIn:
		return title + common.TaglineStyle.Render("signing in...")
	default:
		return title + common.TaglineStyle.Render("read-only (no token)")
	}
}
