package sandbox

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	errNotFound      = errors.New("not found")
	errBlank         = errors.New("this field may not be blank")
	errParentMissing = errors.New("parent comment does not exist")
	errParentForeign = errors.New("parent comment must belong to the same post")
)

type user struct {
	ID       int64
	Username string
}

type post struct {
	ID        int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time
}

type comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	ParentID  *int64
	Content   string
	CreatedAt time.Time
}

type likeKey struct {
	userID   int64
	entityID int64
}

// Store is the in-memory state behind the sandbox API. Likes are unique per
// user and entity, so liking twice reports the existing like.
type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	nextID       int64
	users        map[int64]user
	tokens       map[string]int64
	posts        map[int64]*post
	comments     map[int64]*comment
	postLikes    map[likeKey]struct{}
	commentLikes map[likeKey]struct{}
}

// NewStore returns an empty store. now defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:          now,
		users:        make(map[int64]user),
		tokens:       make(map[string]int64),
		posts:        make(map[int64]*post),
		comments:     make(map[int64]*comment),
		postLikes:    make(map[likeKey]struct{}),
		commentLikes: make(map[likeKey]struct{}),
	}
}

// SetClock replaces the timestamp source for later writes.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddUser registers a user reachable through token.
func (s *Store) AddUser(username, token string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.users[id] = user{ID: id, Username: username}
	s.tokens[token] = id
	return id
}

func (s *Store) userByToken(token string) (user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	if !ok {
		return user{}, false
	}
	return s.users[id], true
}

// AddPost creates a post by authorID and returns its id.
func (s *Store) AddPost(authorID int64, content string) (int64, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, errBlank
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.posts[id] = &post{ID: id, AuthorID: authorID, Content: content, CreatedAt: s.now()}
	return id, nil
}

// AddComment creates a comment on postID. A non-nil parentID must name a
// comment of the same post.
func (s *Store) AddComment(authorID, postID int64, parentID *int64, content string) (comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return comment{}, errBlank
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return comment{}, errNotFound
	}
	if parentID != nil {
		parent, ok := s.comments[*parentID]
		if !ok {
			return comment{}, errParentMissing
		}
		if parent.PostID != postID {
			return comment{}, errParentForeign
		}
		pid := *parentID
		parentID = &pid
	}
	c := &comment{ID: s.id(), PostID: postID, AuthorID: authorID, ParentID: parentID, Content: content, CreatedAt: s.now()}
	s.comments[c.ID] = c
	return *c, nil
}

// LikePost records a like and returns whether it was new plus the total.
func (s *Store) LikePost(userID, postID int64) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return false, 0, errNotFound
	}
	return like(s.postLikes, userID, postID), countLikes(s.postLikes, postID), nil
}

// LikeComment is LikePost for comments.
func (s *Store) LikeComment(userID, commentID int64) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[commentID]; !ok {
		return false, 0, errNotFound
	}
	return like(s.commentLikes, userID, commentID), countLikes(s.commentLikes, commentID), nil
}

func like(set map[likeKey]struct{}, userID, entityID int64) bool {
	k := likeKey{userID: userID, entityID: entityID}
	if _, ok := set[k]; ok {
		return false
	}
	set[k] = struct{}{}
	return true
}

func countLikes(set map[likeKey]struct{}, entityID int64) int {
	n := 0
	for k := range set {
		if k.entityID == entityID {
			n++
		}
	}
	return n
}

// postsNewestFirst returns a snapshot of all posts ordered by creation, newest first.
func (s *Store) postsNewestFirst() []post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) post(id int64) (post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return post{}, false
	}
	return *p, true
}

// commentsOf returns the comments of postID ordered by creation, oldest first.
func (s *Store) commentsOf(postID int64) []comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) userByID(id int64) user {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id]
}

func (s *Store) postLikeState(postID, viewerID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, liked := s.postLikes[likeKey{userID: viewerID, entityID: postID}]
	return countLikes(s.postLikes, postID), liked
}

func (s *Store) commentLikeState(commentID, viewerID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, liked := s.commentLikes[likeKey{userID: viewerID, entityID: commentID}]
	return countLikes(s.commentLikes, commentID), liked
}

func (s *Store) commentCount(postID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}
