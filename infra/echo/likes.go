package echo

import (
	"context"
	"fmt"

	"github.com/CrestNiraj12/echoterm/domain"
)

// likeService implements app.LikeService using the Echo API.
type likeService struct {
	client *Client
}

// NewLikeService creates a LikeService backed by the Echo API.
func NewLikeService(client *Client) *likeService {
	return &likeService{client: client}
}

func (s *likeService) LikePost(ctx context.Context, postID int64) (domain.LikeResult, error) {
	return s.like(ctx, fmt.Sprintf("/posts/%d/like/", postID), domain.PostRef(postID))
}

func (s *likeService) LikeComment(ctx context.Context, commentID int64) (domain.LikeResult, error) {
	return s.like(ctx, fmt.Sprintf("/comments/%d/like/", commentID), domain.CommentRef(commentID))
}

func (s *likeService) like(ctx context.Context, path string, ref domain.EntityRef) (domain.LikeResult, error) {
	data, err := s.client.Post(ctx, path, struct{}{})
	if err != nil {
		return domain.LikeResult{}, fmt.Errorf("liking %s %d: %w", ref.Kind, ref.ID, err)
	}
	return decodeLike(data)
}
