package app

import (
	"context"

	"github.com/CrestNiraj12/echoterm/domain"
)

// CommentService creates comments under a post.
type CommentService interface {
	// CreateComment adds a comment to postID. A nil parentID creates a
	// top-level comment; otherwise the comment replies to parentID.
	CreateComment(ctx context.Context, postID int64, content string, parentID *int64) (domain.CreatedComment, error)
}
