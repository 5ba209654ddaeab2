package echo

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrestNiraj12/echoterm/domain"
)

// commentService implements app.CommentService using the Echo API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the Echo API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id"`
}

func (s *commentService) CreateComment(ctx context.Context, postID int64, content string, parentID *int64) (domain.CreatedComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.CreatedComment{}, domain.ErrEmptyComment
	}
	path := fmt.Sprintf("/posts/%d/comments/", postID)
	data, err := s.client.Post(ctx, path, createCommentRequest{Content: content, ParentID: parentID})
	if err != nil {
		return domain.CreatedComment{}, fmt.Errorf("commenting on post %d: %w", postID, err)
	}
	return decodeCreated(data)
}
