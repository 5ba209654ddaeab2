package app

import (
	"context"

	"github.com/CrestNiraj12/echoterm/domain"
)

// PostService reads and publishes posts on the community backend.
type PostService interface {
	// FetchPosts returns the feed, newest first.
	FetchPosts(ctx context.Context) ([]domain.Post, error)

	// FetchPostDetail returns a post with its full comment thread. A payload
	// with a malformed comment anywhere in the tree fails as a whole.
	FetchPostDetail(ctx context.Context, postID int64) (domain.PostDetail, error)

	// CreatePost publishes a new post.
	CreatePost(ctx context.Context, content string) (domain.Post, error)
}
