package thread

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/tui/compose"
)

type stubPosts struct {
	details []domain.PostDetail // returned in order, last one repeats
	calls   int
	err     error
}

func (s *stubPosts) FetchPosts(context.Context) ([]domain.Post, error) { return nil, nil }

func (s *stubPosts) FetchPostDetail(_ context.Context, postID int64) (domain.PostDetail, error) {
	s.calls++
	if s.err != nil {
		return domain.PostDetail{}, s.err
	}
	if len(s.details) == 0 {
		return domain.PostDetail{ID: postID}, nil
	}
	i := s.calls - 1
	if i >= len(s.details) {
		i = len(s.details) - 1
	}
	return s.details[i], nil
}

func (s *stubPosts) CreatePost(context.Context, string) (domain.Post, error) {
	return domain.Post{}, nil
}

type stubComments struct {
	calls    int
	parentID *int64
	content  string
	err      error
}

func (s *stubComments) CreateComment(_ context.Context, _ int64, content string, parentID *int64) (domain.CreatedComment, error) {
	s.calls++
	s.content, s.parentID = content, parentID
	if s.err != nil {
		return domain.CreatedComment{}, s.err
	}
	return domain.CreatedComment{ID: 1000}, nil
}

type stubLikes struct {
	calls  int
	result domain.LikeResult
	err    error
}

func (s *stubLikes) LikePost(context.Context, int64) (domain.LikeResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubLikes) LikeComment(context.Context, int64) (domain.LikeResult, error) {
	s.calls++
	return s.result, s.err
}

type stubs struct {
	posts    *stubPosts
	comments *stubComments
	likes    *stubLikes
}

func newStubs() stubs {
	return stubs{posts: &stubPosts{}, comments: &stubComments{}, likes: &stubLikes{}}
}

func (s stubs) services() Services {
	return Services{
		Posts:    s.posts,
		Comments: s.comments,
		Likes:    s.likes,
		Compose:  compose.Services{Comments: s.comments, Posts: s.posts},
	}
}

func int64Ptr(v int64) *int64 { return &v }

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func node(id int64, parent *int64, content string, children ...domain.CommentNode) domain.CommentNode {
	return domain.CommentNode{
		ID:        id,
		PostID:    1,
		Author:    domain.Author{ID: 1, Username: "u"},
		ParentID:  parent,
		Content:   content,
		CreatedAt: t0,
		Children:  children,
	}
}

// scenarioDetail is post 1 with comments [A(A1), B].
func scenarioDetail() domain.PostDetail {
	return domain.PostDetail{
		ID:      1,
		Author:  domain.Author{ID: 1, Username: "alice"},
		Content: "post",
		Comments: []domain.CommentNode{
			node(10, nil, "A", node(11, int64Ptr(10), "A1")),
			node(20, nil, "B"),
		},
	}
}

// run executes cmd and feeds the resulting message back into m.
func run(m Model, cmd tea.Cmd) (Model, tea.Cmd, error) {
	if cmd == nil {
		return m, nil, nil
	}
	return m.Update(cmd(), true)
}

// loaded returns thread 1 expanded with detail applied.
func loaded(s stubs, d domain.PostDetail) Model {
	s.posts.details = []domain.PostDetail{d}
	m := New(d.Summary(), s.services())
	m, cmd := m.Expand()
	m, _, _ = run(m, cmd)
	s.posts.details = nil
	return m
}
