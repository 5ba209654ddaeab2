package echo

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrestNiraj12/echoterm/domain"
)

// postService implements app.PostService using the Echo API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the Echo API.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

func (s *postService) FetchPosts(ctx context.Context) ([]domain.Post, error) {
	data, err := s.client.Get(ctx, "/posts/")
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	return decodePosts(data)
}

func (s *postService) FetchPostDetail(ctx context.Context, postID int64) (domain.PostDetail, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf("/posts/%d/", postID))
	if err != nil {
		return domain.PostDetail{}, fmt.Errorf("fetching post %d: %w", postID, err)
	}
	detail, err := decodePostDetail(data)
	if err != nil {
		return domain.PostDetail{}, fmt.Errorf("post %d: %w", postID, err)
	}
	return detail, nil
}

func (s *postService) CreatePost(ctx context.Context, content string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Post{}, domain.ErrEmptyComment
	}
	data, err := s.client.Post(ctx, "/posts/", map[string]string{"content": content})
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return decodePost(data)
}
