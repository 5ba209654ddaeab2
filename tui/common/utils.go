package common

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Plural formats n with a noun, adding "s" unless n is exactly one.
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// ClipLines truncates every line of s to width cells, keeping ANSI styling intact.
func ClipLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

// IndentWidth is the number of cells per nesting level, capped so very deep
// threads still leave room for text.
func IndentWidth(depth, width int) int {
	const step = 2
	indent := depth * step
	limit := width / 2
	if limit > 0 && indent > limit {
		indent = limit
	}
	return indent
}
