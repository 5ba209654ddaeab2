package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/echoterm/tui/common"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(lipgloss.Color("#FF6600")).
	PaddingLeft(1)

// View renders the text area with its status line.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	switch {
	case m.phase == Submitting:
		b.WriteString(common.TimestampStyle.Render("sending..."))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render("Error: " + m.err.Error()))
	default:
		b.WriteString(common.TimestampStyle.Render(
			fmt.Sprintf("ctrl+s: send • ctrl+e: $EDITOR • esc: close • %d chars", len([]rune(m.Value()))),
		))
	}

	return boxStyle.Render(b.String())
}
