package domain

import (
	"fmt"
	"time"
)

// FlatComment is one row of a pre-order thread traversal.
type FlatComment struct {
	Comment CommentNode
	Depth   int // 0 for top-level comments
}

// TotalCount returns the number of comments in the forest, including every
// nested reply. It walks the tree with an explicit stack so thread depth is
// limited by memory only.
func TotalCount(nodes []CommentNode) int {
	total := 0
	stack := make([][]CommentNode, 0, 8)
	stack = append(stack, nodes)
	for len(stack) > 0 {
		level := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total += len(level)
		for i := range level {
			if len(level[i].Children) > 0 {
				stack = append(stack, level[i].Children)
			}
		}
	}
	return total
}

// Flatten returns the forest in document order: each comment followed by its
// replies, annotated with nesting depth.
func Flatten(nodes []CommentNode) []FlatComment {
	type frame struct {
		node  *CommentNode
		depth int
	}
	out := make([]FlatComment, 0, len(nodes))
	stack := make([]frame, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: &nodes[i], depth: 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, FlatComment{Comment: *f.node, Depth: f.depth})
		children := f.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &children[i], depth: f.depth + 1})
		}
	}
	return out
}

// FindComment returns the comment with the given ID anywhere in the forest.
func FindComment(nodes []CommentNode, id int64) (CommentNode, bool) {
	stack := [][]CommentNode{nodes}
	for len(stack) > 0 {
		level := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range level {
			if level[i].ID == id {
				return level[i], true
			}
			if len(level[i].Children) > 0 {
				stack = append(stack, level[i].Children)
			}
		}
	}
	return CommentNode{}, false
}

// TimeAgo renders a compact relative age: "just now", "5m", "3h", "2d".
func TimeAgo(t, now time.Time) string {
	mins := int(now.Sub(t) / time.Minute)
	if mins < 1 {
		return "just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	hrs := mins / 60
	if hrs < 24 {
		return fmt.Sprintf("%dh", hrs)
	}
	return fmt.Sprintf("%dd", hrs/24)
}
