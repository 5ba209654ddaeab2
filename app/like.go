package app

import (
	"context"

	"github.com/CrestNiraj12/echoterm/domain"
)

// LikeService records likes. Both methods share the same response contract.
type LikeService interface {
	LikePost(ctx context.Context, postID int64) (domain.LikeResult, error)
	LikeComment(ctx context.Context, commentID int64) (domain.LikeResult, error)
}

// Like dispatches to the method matching the entity kind.
func Like(ctx context.Context, svc LikeService, ref domain.EntityRef) (domain.LikeResult, error) {
	if ref.Kind == domain.EntityPost {
		return svc.LikePost(ctx, ref.ID)
	}
	return svc.LikeComment(ctx, ref.ID)
}
