package thread

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/tui/common"
)

// ViewOptions carries what the thread needs from its container to render.
type ViewOptions struct {
	Width   int
	Focused bool
	Spinner string
	Now     time.Time
}

// View renders the comment section below an expanded post.
func (m Model) View(opts ViewOptions) string {
	if !m.open {
		return ""
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(common.HeaderStyle.Render(common.Plural(m.TotalCount(), "Comment")))
	if m.loading {
		b.WriteString("  " + opts.Spinner + common.TimestampStyle.Render(" loading..."))
	}
	b.WriteString("\n")

	if m.err != nil && !m.loading {
		b.WriteString(common.ErrorStyle.Render("Couldn't load comments: "+m.err.Error()) +
			common.TimestampStyle.Render("  (g to retry)") + "\n")
	}

	if c, ok := m.composers[0]; ok && m.active != nil && *m.active == 0 {
		b.WriteString(c.SetWidth(width-4).View() + "\n")
	}

	rows := m.Rows()
	if len(rows) == 0 && m.detail != nil {
		b.WriteString(common.TimestampStyle.Render("No comments yet. Press r to start the discussion.") + "\n")
	}
	for i, row := range rows {
		b.WriteString(m.renderRow(row, i == m.cursor && opts.Focused, width, opts.Now))
		if m.active != nil && *m.active == row.Comment.ID {
			if c, ok := m.composers[row.Comment.ID]; ok {
				indent := common.IndentWidth(row.Depth+1, width)
				b.WriteString(lipgloss.NewStyle().MarginLeft(indent).Render(c.SetWidth(width-indent-4).View()) + "\n")
			}
		}
	}
	return common.ClipLines(strings.TrimRight(b.String(), "\n"), width)
}

func (m Model) renderRow(row Row, selected bool, width int, now time.Time) string {
	indent := common.IndentWidth(row.Depth, width)
	guide := ""
	if indent > 0 {
		guide = common.ThreadRuleStyle.Render(strings.Repeat(" ", indent-1) + "│")
	}

	marker := "  "
	if selected {
		marker = common.CursorStyle.Render("▸ ")
	}

	header := marker +
		common.AuthorStyle.Render(row.Comment.Author.Username) +
		common.TimestampStyle.Render(" · "+domain.TimeAgo(row.Comment.CreatedAt, now)) +
		"  " + LikeLabel(row.Like, row.Pending)

	bodyWidth := width - indent - 3
	if bodyWidth < 10 {
		bodyWidth = 10
	}
	body := common.ContentStyle.Width(bodyWidth).Render(row.Comment.Content)

	var b strings.Builder
	for _, line := range strings.Split(header+"\n"+indentLines(body, "  "), "\n") {
		b.WriteString(guide + line + "\n")
	}
	return b.String()
}

// LikeLabel renders a like counter.
func LikeLabel(c LikeCell, pending bool) string {
	switch {
	case pending:
		return common.PendingStyle.Render(fmt.Sprintf("♥ %d …", c.Count))
	case c.Liked:
		return common.LikedStyle.Render(fmt.Sprintf("♥ %d", c.Count))
	default:
		return common.TimestampStyle.Render(fmt.Sprintf("♡ %d", c.Count))
	}
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
