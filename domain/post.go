package domain

import "time"

// Author is the brief user reference attached to posts and comments.
type Author struct {
	ID       int64
	Username string
}

// Post represents a single feed entry.
type Post struct {
	ID           int64
	Author       Author
	Content      string
	CreatedAt    time.Time
	LikeCount    int
	LikedByMe    bool
	CommentCount int
}

// PostDetail is a post together with its full comment thread.
type PostDetail struct {
	ID        int64
	Author    Author
	Content   string
	CreatedAt time.Time
	LikeCount int
	LikedByMe bool
	Comments  []CommentNode
}

// Summary returns the feed view of the detail, with the comment count
// recomputed from the thread.
func (d PostDetail) Summary() Post {
	return Post{
		ID:           d.ID,
		Author:       d.Author,
		Content:      d.Content,
		CreatedAt:    d.CreatedAt,
		LikeCount:    d.LikeCount,
		LikedByMe:    d.LikedByMe,
		CommentCount: TotalCount(d.Comments),
	}
}

// User is the authenticated account.
type User struct {
	ID       int64
	Username string
}
