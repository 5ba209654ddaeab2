package sandbox

import "time"

type userDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type postDTO struct {
	ID           int64     `json:"id"`
	Author       userDTO   `json:"author"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	LikeCount    int       `json:"like_count"`
	LikedByMe    bool      `json:"liked_by_me"`
	CommentCount int       `json:"comment_count"`
}

type postDetailDTO struct {
	ID        int64         `json:"id"`
	Author    userDTO       `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	LikeCount int           `json:"like_count"`
	LikedByMe bool          `json:"liked_by_me"`
	Comments  []*commentDTO `json:"comments"`
}

type commentDTO struct {
	ID        int64         `json:"id"`
	Post      int64         `json:"post"`
	Author    userDTO       `json:"author"`
	Parent    *int64        `json:"parent"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	LikeCount int           `json:"like_count"`
	LikedByMe bool          `json:"liked_by_me"`
	Children  []*commentDTO `json:"children"`
}

type createdDTO struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type likeDTO struct {
	Created      bool `json:"created"`
	AlreadyLiked bool `json:"already_liked"`
	LikeCount    int  `json:"like_count"`
}

func (s *Server) author(id int64) userDTO {
	u := s.store.userByID(id)
	return userDTO{ID: u.ID, Username: u.Username}
}

func (s *Server) postDTO(p post, viewerID int64) postDTO {
	count, liked := s.store.postLikeState(p.ID, viewerID)
	return postDTO{
		ID:           p.ID,
		Author:       s.author(p.AuthorID),
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
		LikeCount:    count,
		LikedByMe:    liked,
		CommentCount: s.store.commentCount(p.ID),
	}
}

// commentTree nests the post's comments. Every node is indexed before any
// is attached, so a reply is kept even when its timestamp sorts before its
// parent's. Siblings stay oldest first.
func (s *Server) commentTree(postID, viewerID int64) []*commentDTO {
	comments := s.store.commentsOf(postID)
	byID := make(map[int64]*commentDTO, len(comments))
	nodes := make([]*commentDTO, 0, len(comments))
	for _, c := range comments {
		count, liked := s.store.commentLikeState(c.ID, viewerID)
		node := &commentDTO{
			ID:        c.ID,
			Post:      c.PostID,
			Author:    s.author(c.AuthorID),
			Parent:    c.ParentID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			LikeCount: count,
			LikedByMe: liked,
			Children:  make([]*commentDTO, 0),
		}
		byID[c.ID] = node
		nodes = append(nodes, node)
	}

	roots := make([]*commentDTO, 0)
	for _, node := range nodes {
		if node.Parent == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := byID[*node.Parent]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots
}
