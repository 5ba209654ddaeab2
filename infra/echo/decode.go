package echo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/echoterm/domain"
)

// Wire shapes. Required fields are pointers so absence can be told apart
// from a zero value.

type authorJSON struct {
	ID       *int64  `json:"id"`
	Username *string `json:"username"`
}

type postJSON struct {
	ID           *int64      `json:"id"`
	Author       *authorJSON `json:"author"`
	Content      *string     `json:"content"`
	CreatedAt    *string     `json:"created_at"`
	LikeCount    int         `json:"like_count"`
	LikedByMe    bool        `json:"liked_by_me"`
	CommentCount int         `json:"comment_count"`
}

type postDetailJSON struct {
	ID        *int64        `json:"id"`
	Author    *authorJSON   `json:"author"`
	Content   *string       `json:"content"`
	CreatedAt *string       `json:"created_at"`
	LikeCount int           `json:"like_count"`
	LikedByMe bool          `json:"liked_by_me"`
	Comments  []commentJSON `json:"comments"`
}

type commentJSON struct {
	ID        *int64        `json:"id"`
	Post      *int64        `json:"post"`
	Author    *authorJSON   `json:"author"`
	Parent    *int64        `json:"parent"`
	Content   *string       `json:"content"`
	CreatedAt *string       `json:"created_at"`
	LikeCount int           `json:"like_count"`
	LikedByMe bool          `json:"liked_by_me"`
	Children  []commentJSON `json:"children"`
}

type likeJSON struct {
	Created      bool `json:"created"`
	AlreadyLiked bool `json:"already_liked"`
	LikeCount    *int `json:"like_count"`
}

type createdJSON struct {
	ID        *int64  `json:"id"`
	CreatedAt *string `json:"created_at"`
}

type userJSON struct {
	ID       *int64  `json:"id"`
	Username *string `json:"username"`
}

// label names a location in a payload. Comment paths are rendered lazily.
type label string

func (l label) String() string { return string(l) }

func malformed(where fmt.Stringer, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", where, fmt.Sprintf(format, args...), domain.ErrMalformedPayload)
}

func parseTime(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, *raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func toAuthor(a *authorJSON) (domain.Author, bool) {
	if a == nil || a.ID == nil || a.Username == nil {
		return domain.Author{}, false
	}
	return domain.Author{ID: *a.ID, Username: *a.Username}, true
}

// checkEntity validates the fields every post and comment must carry.
func checkEntity(where fmt.Stringer, id *int64, author *authorJSON, content *string, createdAt *string) (domain.Author, time.Time, error) {
	if id == nil {
		return domain.Author{}, time.Time{}, malformed(where, "missing id")
	}
	a, ok := toAuthor(author)
	if !ok {
		return domain.Author{}, time.Time{}, malformed(where, "missing author")
	}
	if content == nil {
		return domain.Author{}, time.Time{}, malformed(where, "missing content")
	}
	t, ok := parseTime(createdAt)
	if !ok {
		return domain.Author{}, time.Time{}, malformed(where, "missing or invalid created_at")
	}
	return a, t, nil
}

func decodePosts(data []byte) ([]domain.Post, error) {
	var raw []postJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding posts: %v: %w", err, domain.ErrMalformedPayload)
	}
	posts := make([]domain.Post, 0, len(raw))
	for i, p := range raw {
		post, err := toPost(p, label("posts["+strconv.Itoa(i)+"]"))
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func decodePost(data []byte) (domain.Post, error) {
	var raw postJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Post{}, fmt.Errorf("decoding post: %v: %w", err, domain.ErrMalformedPayload)
	}
	return toPost(raw, label("post"))
}

func toPost(p postJSON, where fmt.Stringer) (domain.Post, error) {
	author, createdAt, err := checkEntity(where, p.ID, p.Author, p.Content, p.CreatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	return domain.Post{
		ID:           *p.ID,
		Author:       author,
		Content:      *p.Content,
		CreatedAt:    createdAt,
		LikeCount:    p.LikeCount,
		LikedByMe:    p.LikedByMe,
		CommentCount: p.CommentCount,
	}, nil
}

// pathSeg records where a node sits without building a string per node;
// the path is only rendered when a node is rejected.
type pathSeg struct {
	parent *pathSeg
	index  int
}

func (p *pathSeg) String() string {
	var idx []int
	for s := p; s != nil; s = s.parent {
		idx = append(idx, s.index)
	}
	var b strings.Builder
	b.WriteString("comments")
	for i := len(idx) - 1; i >= 0; i-- {
		if i != len(idx)-1 {
			b.WriteString(".children")
		}
		b.WriteString("[" + strconv.Itoa(idx[i]) + "]")
	}
	return b.String()
}

func decodePostDetail(data []byte) (domain.PostDetail, error) {
	var raw postDetailJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.PostDetail{}, fmt.Errorf("decoding post detail: %v: %w", err, domain.ErrMalformedPayload)
	}
	author, createdAt, err := checkEntity(label("post"), raw.ID, raw.Author, raw.Content, raw.CreatedAt)
	if err != nil {
		return domain.PostDetail{}, err
	}
	detail := domain.PostDetail{
		ID:        *raw.ID,
		Author:    author,
		Content:   *raw.Content,
		CreatedAt: createdAt,
		LikeCount: raw.LikeCount,
		LikedByMe: raw.LikedByMe,
	}
	detail.Comments, err = buildTree(detail.ID, raw.Comments)
	if err != nil {
		return domain.PostDetail{}, err
	}
	return detail, nil
}

// buildTree converts the wire forest with an explicit stack. Destination
// slices are allocated once per level and never appended to, so pointers
// into them stay valid while the stack is drained.
func buildTree(postID int64, roots []commentJSON) ([]domain.CommentNode, error) {
	type frame struct {
		src      *commentJSON
		dst      *domain.CommentNode
		parentID *int64
		path     *pathSeg
	}

	out := make([]domain.CommentNode, len(roots))
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{src: &roots[i], dst: &out[i], path: &pathSeg{index: i}})
	}
	seen := make(map[int64]struct{})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		src := f.src

		author, createdAt, err := checkEntity(f.path, src.ID, src.Author, src.Content, src.CreatedAt)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[*src.ID]; dup {
			return nil, malformed(f.path, "duplicate comment id %d", *src.ID)
		}
		seen[*src.ID] = struct{}{}

		parentID := src.Parent
		if parentID == nil {
			parentID = f.parentID
		}
		nodePost := postID
		if src.Post != nil {
			nodePost = *src.Post
		}

		*f.dst = domain.CommentNode{
			ID:        *src.ID,
			PostID:    nodePost,
			Author:    author,
			ParentID:  parentID,
			Content:   *src.Content,
			CreatedAt: createdAt,
			LikeCount: src.LikeCount,
			LikedByMe: src.LikedByMe,
		}
		if len(src.Children) == 0 {
			continue
		}
		f.dst.Children = make([]domain.CommentNode, len(src.Children))
		id := *src.ID
		for i := len(src.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				src:      &src.Children[i],
				dst:      &f.dst.Children[i],
				parentID: &id,
				path:     &pathSeg{parent: f.path, index: i},
			})
		}
	}
	return out, nil
}

func decodeLike(data []byte) (domain.LikeResult, error) {
	var raw likeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.LikeResult{}, fmt.Errorf("decoding like: %v: %w", err, domain.ErrMalformedPayload)
	}
	if raw.LikeCount == nil {
		return domain.LikeResult{}, malformed(label("like"), "missing like_count")
	}
	return domain.LikeResult{Created: raw.Created, AlreadyLiked: raw.AlreadyLiked, LikeCount: *raw.LikeCount}, nil
}

func decodeCreated(data []byte) (domain.CreatedComment, error) {
	var raw createdJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.CreatedComment{}, fmt.Errorf("decoding comment: %v: %w", err, domain.ErrMalformedPayload)
	}
	if raw.ID == nil {
		return domain.CreatedComment{}, malformed(label("comment"), "missing id")
	}
	t, _ := parseTime(raw.CreatedAt)
	return domain.CreatedComment{ID: *raw.ID, CreatedAt: t}, nil
}

func decodeUser(data []byte) (domain.User, error) {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.User{}, fmt.Errorf("decoding user: %v: %w", err, domain.ErrMalformedPayload)
	}
	if raw.ID == nil || raw.Username == nil {
		return domain.User{}, malformed(label("me"), "missing id or username")
	}
	return domain.User{ID: *raw.ID, Username: *raw.Username}, nil
}
