package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/CrestNiraj12/echoterm/app"
	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/tui/common"
	"github.com/CrestNiraj12/echoterm/tui/thread"
)

// PostsLoadedMsg is sent when the feed fetch completes successfully.
type PostsLoadedMsg struct {
	Posts  []domain.Post
	ReqSeq int
}

// PostsErrorMsg is sent when the feed fetch fails.
type PostsErrorMsg struct {
	Err    error
	ReqSeq int
}

// --- Model ---

type modelServices struct {
	posts     app.PostService
	threadSvc thread.Services
}

type feedState struct {
	order      []int64
	threads    map[int64]thread.Model
	retiredSeq map[int64]int // last fetch seq of threads dropped from the feed
	cursor     int
	loading    bool
	err        error
	feedReqSeq int
}

type uiState struct {
	keys         common.KeyMap
	spinner      spinner.Model
	viewport     viewport.Model
	width        int
	height       int
	scrollLine   int // first body line shown
	showAllHints bool
	now          func() time.Time
}

type sessionState struct {
	signedIn bool
	status   string
	statusOK bool
}

// Model holds the state for the feed: the post list, one thread model per
// post, and the session flags that gate likes and replies.
type Model struct {
	modelServices
	feedState
	uiState
	sessionState
}
