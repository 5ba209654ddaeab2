package thread

import "github.com/CrestNiraj12/echoterm/domain"

// MoveCursor moves the selection by delta over the post (-1) and its
// comment rows.
func (m Model) MoveCursor(delta int) Model {
	n := m.TotalCount()
	if m.detail == nil {
		n = 0
	}
	c := m.cursor + delta
	if c < -1 {
		c = -1
	}
	if c > n-1 {
		c = n - 1
	}
	m.cursor = c
	return m
}

// Cursor returns the selected row index, -1 for the post itself.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the entity under the cursor.
func (m Model) Selected() domain.EntityRef {
	if m.cursor < 0 || m.detail == nil {
		return domain.PostRef(m.post.ID)
	}
	rows := domain.Flatten(m.detail.Comments)
	if m.cursor >= len(rows) {
		return domain.PostRef(m.post.ID)
	}
	return domain.CommentRef(rows[m.cursor].Comment.ID)
}

// ReplyParent returns the parent id a reply at the cursor should carry:
// the selected comment, or nil when the post itself is selected.
func (m Model) ReplyParent() *int64 {
	ref := m.Selected()
	if ref.Kind == domain.EntityPost {
		return nil
	}
	id := ref.ID
	return &id
}
