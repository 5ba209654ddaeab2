package domain

import "time"

// CommentNode is one comment in a post's thread. Children are ordered as the
// server returned them; a child holds no reference back to its parent node.
type CommentNode struct {
	ID        int64
	PostID    int64
	Author    Author
	ParentID  *int64 // nil for top-level comments
	Content   string
	CreatedAt time.Time
	LikeCount int
	LikedByMe bool
	Children  []CommentNode
}

// IsTopLevel reports whether the comment replies to the post itself.
func (c CommentNode) IsTopLevel() bool {
	return c.ParentID == nil
}

// CreatedComment is the server acknowledgement of a new comment.
type CreatedComment struct {
	ID        int64
	CreatedAt time.Time
}

// LikeResult is the server response to a like request. LikeCount is
// authoritative even when AlreadyLiked is set.
type LikeResult struct {
	Created      bool
	AlreadyLiked bool
	LikeCount    int
}

// EntityKind distinguishes the two likeable entities.
type EntityKind int

const (
	EntityPost EntityKind = iota
	EntityComment
)

func (k EntityKind) String() string {
	switch k {
	case EntityPost:
		return "post"
	case EntityComment:
		return "comment"
	default:
		return "unknown"
	}
}

// EntityRef identifies a likeable post or comment.
type EntityRef struct {
	Kind EntityKind
	ID   int64
}

// PostRef returns the reference for a post.
func PostRef(id int64) EntityRef { return EntityRef{Kind: EntityPost, ID: id} }

// CommentRef returns the reference for a comment.
func CommentRef(id int64) EntityRef { return EntityRef{Kind: EntityComment, ID: id} }
