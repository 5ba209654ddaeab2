package feed

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/tui/compose"
	"github.com/CrestNiraj12/echoterm/tui/thread"
)

type stubPosts struct {
	posts   []domain.Post
	details map[int64]domain.PostDetail
	err     error
}

func (s *stubPosts) FetchPosts(context.Context) ([]domain.Post, error) {
	return s.posts, s.err
}

func (s *stubPosts) FetchPostDetail(_ context.Context, postID int64) (domain.PostDetail, error) {
	if s.err != nil {
		return domain.PostDetail{}, s.err
	}
	if d, ok := s.details[postID]; ok {
		return d, nil
	}
	return domain.PostDetail{ID: postID}, nil
}

func (s *stubPosts) CreatePost(context.Context, string) (domain.Post, error) {
	return domain.Post{}, nil
}

type stubComments struct {
	calls    int
	postID   int64
	parentID *int64
	err      error
}

func (s *stubComments) CreateComment(_ context.Context, postID int64, _ string, parentID *int64) (domain.CreatedComment, error) {
	s.calls++
	s.postID, s.parentID = postID, parentID
	return domain.CreatedComment{ID: 900}, s.err
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

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func makePost(id int64, author string, comments int) domain.Post {
	return domain.Post{
		ID:           id,
		Author:       domain.Author{ID: id, Username: author},
		Content:      "post " + author,
		CreatedAt:    t0,
		CommentCount: comments,
	}
}

func makeComment(id int64, parent *int64, children ...domain.CommentNode) domain.CommentNode {
	return domain.CommentNode{
		ID:        id,
		Author:    domain.Author{ID: 9, Username: "carol"},
		ParentID:  parent,
		Content:   "comment",
		CreatedAt: t0,
		Children:  children,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func newTestModel(signedIn bool) (Model, stubs) {
	s := stubs{
		posts: &stubPosts{
			posts: []domain.Post{makePost(1, "alice", 2), makePost(2, "bob", 0)},
			details: map[int64]domain.PostDetail{
				1: {
					ID: 1, Author: domain.Author{ID: 1, Username: "alice"}, Content: "post alice", CreatedAt: t0,
					Comments: []domain.CommentNode{makeComment(10, nil, makeComment(11, int64Ptr(10)))},
				},
				2: {ID: 2, Author: domain.Author{ID: 2, Username: "bob"}, Content: "post bob", CreatedAt: t0},
			},
		},
		comments: &stubComments{},
		likes:    &stubLikes{},
	}
	svc := thread.Services{
		Posts:    s.posts,
		Comments: s.comments,
		Likes:    s.likes,
		Compose:  compose.Services{Comments: s.comments, Posts: s.posts},
	}
	m := New(s.posts, svc, signedIn)
	m.now = func() time.Time { return t0.Add(time.Hour) }
	m = m.SetSize(100, 40)
	return m, s
}

// withFeed loads the stub feed into m.
func withFeed(m Model) Model {
	msg := m.fetchPosts(m.feedReqSeq)()
	m, _ = m.Update(msg)
	return m
}

// expandSelected expands the selected post and applies its detail.
func expandSelected(m Model) Model {
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		m, _ = m.Update(cmd())
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
