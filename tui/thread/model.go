package thread

import (
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/echoterm/app"
	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/tui/compose"
)

// Services are the backends a thread talks to.
type Services struct {
	Posts    app.PostService
	Comments app.CommentService
	Likes    app.LikeService
	Compose  compose.Services
	Log      zerolog.Logger
}

// Model is the state of one post's discussion: the last loaded tree, the
// fetch cycle around it, like cells, pending likes and open composers.
// Every message it handles carries its post id; the caller routes.
type Model struct {
	svc Services

	post   domain.Post
	detail *domain.PostDetail

	open    bool
	loading bool
	err     error
	reqSeq  int

	likes   map[domain.EntityRef]LikeCell
	pending map[domain.EntityRef]bool

	composers map[int64]compose.Model
	active    *int64 // composer slot being edited, nil when none

	cursor int // -1 selects the post itself
}

// New creates a collapsed thread seeded from a feed entry.
func New(post domain.Post, svc Services) Model {
	m := Model{
		svc:       svc,
		post:      post,
		likes:     make(map[domain.EntityRef]LikeCell),
		pending:   make(map[domain.EntityRef]bool),
		composers: make(map[int64]compose.Model),
		cursor:    -1,
	}
	m.likes[domain.PostRef(post.ID)] = LikeCell{Count: post.LikeCount, Liked: post.LikedByMe}
	return m
}

func (m Model) PostID() int64 { return m.post.ID }

// Post returns the feed view of the post, refreshed from the detail and
// the current like cell.
func (m Model) Post() domain.Post {
	p := m.post
	cell := m.likes[domain.PostRef(p.ID)]
	p.LikeCount, p.LikedByMe = cell.Count, cell.Liked
	p.CommentCount = m.TotalCount()
	return p
}

// WithSummary applies fresh feed data for the post. It is ignored while a
// fetch is in flight or an open thread shows a loaded tree, since the
// detail is at least as new. Otherwise the summary replaces the post and
// its like cell, and a cached tree is dropped: the counts it carried are
// stale, and the next expand fetches it again.
func (m Model) WithSummary(p domain.Post) Model {
	if m.loading || (m.open && m.detail != nil) {
		return m
	}
	m.post = p
	m.detail = nil
	m.cursor = -1
	m.likes = map[domain.EntityRef]LikeCell{
		domain.PostRef(p.ID): {Count: p.LikeCount, Liked: p.LikedByMe},
	}
	return m
}

// Status reports where the fetch cycle stands.
func (m Model) Status() Status {
	switch {
	case !m.open:
		return Collapsed
	case m.loading:
		return Loading
	case m.err != nil:
		return Errored
	case m.detail != nil:
		return Loaded
	default:
		return Loading
	}
}

func (m Model) IsOpen() bool { return m.open }
func (m Model) Err() error   { return m.err }
func (m Model) Seq() int     { return m.reqSeq }

// Detail returns the last successfully loaded tree.
func (m Model) Detail() (domain.PostDetail, bool) {
	if m.detail == nil {
		return domain.PostDetail{}, false
	}
	return *m.detail, true
}

// TotalCount counts every comment in the loaded tree. Before the first
// load it falls back to the feed's count.
func (m Model) TotalCount() int {
	if m.detail == nil {
		return m.post.CommentCount
	}
	return domain.TotalCount(m.detail.Comments)
}

// Rows returns the loaded comments in pre-order with their depth and like state.
func (m Model) Rows() []Row {
	if m.detail == nil {
		return nil
	}
	flat := domain.Flatten(m.detail.Comments)
	rows := make([]Row, len(flat))
	for i, fc := range flat {
		ref := domain.CommentRef(fc.Comment.ID)
		rows[i] = Row{
			Comment: fc.Comment,
			Depth:   fc.Depth,
			Like:    m.likes[ref],
			Pending: m.pending[ref],
		}
	}
	return rows
}

// LikeCell returns the displayed like state for ref.
func (m Model) LikeCell(ref domain.EntityRef) (LikeCell, bool) {
	c, ok := m.likes[ref]
	return c, ok
}

// IsPending reports whether a like request for ref is in flight.
func (m Model) IsPending(ref domain.EntityRef) bool {
	return m.pending[ref]
}
