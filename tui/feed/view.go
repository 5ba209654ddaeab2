package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/CrestNiraj12/echoterm/domain"
	"github.com/CrestNiraj12/echoterm/tui/common"
	"github.com/CrestNiraj12/echoterm/tui/thread"
)

// View renders the post list with any expanded threads, followed by the
// status bar. The app draws the title above it.
func (m Model) View() string {
	var body string
	switch {
	case m.loading && len(m.order) == 0:
		body = "  " + m.spinner.View() + " Loading posts..."
	case m.err != nil && len(m.order) == 0:
		body = common.ErrorStyle.Render("  Couldn't load posts: "+m.err.Error()) + "\n\n  Press g to retry."
	case len(m.order) == 0:
		body = "  No posts yet."
	default:
		lines, _ := m.layout()
		vp := m.viewport
		vp.Width = m.width
		vp.Height = m.bodyHeight()
		vp.SetContent(strings.Join(lines, "\n"))
		vp.SetYOffset(m.scrollLine)
		body = vp.View()
	}
	return body + "\n" + m.statusView()
}

// layout renders every card and returns the lines together with the line
// the selection sits on.
func (m Model) layout() ([]string, int) {
	var lines []string
	focus := 0
	for i, id := range m.order {
		t := m.threads[id]
		card := strings.Split(m.renderCard(t, i == m.cursor), "\n")
		if i == m.cursor {
			focus = len(lines)
			if t.IsOpen() && t.Cursor() >= 0 {
				for j, l := range card {
					if strings.Contains(l, "▸") {
						focus = len(lines) + j
						break
					}
				}
			}
		}
		lines = append(lines, card...)
	}
	return lines, focus
}

func (m Model) renderCard(t thread.Model, selected bool) string {
	p := t.Post()
	inner := max(m.width-4, 20)
	ref := domain.PostRef(p.ID)
	cell, _ := t.LikeCell(ref)

	header := common.AuthorStyle.Render(p.Author.Username) +
		common.TimestampStyle.Render(" · "+domain.TimeAgo(p.CreatedAt, m.now())) +
		"  " + thread.LikeLabel(cell, t.IsPending(ref)) +
		common.TimestampStyle.Render("  "+common.Plural(p.CommentCount, "comment"))

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(common.ContentStyle.Width(inner).Render(p.Content))
	if t.IsOpen() {
		b.WriteString("\n\n")
		b.WriteString(t.View(thread.ViewOptions{
			Width:   inner,
			Focused: selected,
			Spinner: m.spinner.View(),
			Now:     m.now(),
		}))
	}

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(m.width - 2).Render(b.String())
}

func (m Model) statusView() string {
	if m.status != "" {
		style := common.ErrorStyle
		if m.statusOK {
			style = common.SuccessStyle
		}
		return style.Render("  "+m.status) + "\n" + m.helpView()
	}
	return "\n" + m.helpView()
}

func (m Model) helpView() string {
	bindings := m.keys.ShortHelp()
	switch {
	case m.IsComposing():
		bindings = m.keys.ComposeHelp()
	case m.showAllHints:
		bindings = m.keys.FullHelp()
	}
	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		items = append(items, helpItem(b))
	}
	if !m.signedIn {
		items = append(items, "read-only")
	}
	return common.StatusBarStyle.Padding(0).Render("  " + strings.Join(items, " • "))
}

func helpItem(b key.Binding) string {
	return b.Help().Key + ": " + b.Help().Desc
}

// bodyHeight is the number of card lines that fit above the status bar.
func (m Model) bodyHeight() int {
	return max(m.height-3, 1)
}

// ensureSelectionVisible scrolls the body so the selected card header, or
// the selected comment row, stays on screen.
func (m *Model) ensureSelectionVisible() {
	if len(m.order) == 0 {
		m.scrollLine = 0
		return
	}
	lines, focus := m.layout()
	h := m.bodyHeight()
	if focus < m.scrollLine {
		m.scrollLine = focus
	}
	if focus >= m.scrollLine+h {
		m.scrollLine = focus - h + 1
	}
	maxScroll := max(len(lines)-h, 0)
	m.scrollLine = min(max(m.scrollLine, 0), maxScroll)
}
