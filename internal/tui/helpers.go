package tui

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// modal centers a bordered dialog over the full screen, sized as a
// percentage of the terminal.
func (m Model) modal(title, content string, widthPct, heightPct int) string {
	w := m.width * widthPct / 100
	if w > m.width-2 {
		w = m.width - 2
	}
	if w < 24 {
		w = 24
	}
	h := m.height * heightPct / 100
	if h < 6 {
		h = 6
	}

	box := modalStyle.Width(w).Height(h).Render(modalTitleStyle.Render(title) + "\n\n" + content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// wrapIndex moves current by delta, cycling around n.
func wrapIndex(current, delta, n int) int {
	if n == 0 {
		return 0
	}
	next := current + delta
	if next < 0 {
		return n - 1
	}
	if next >= n {
		return 0
	}
	return next
}

// trimLastRune drops the final rune so multi-byte query input erases
// cleanly.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// shortenPath replaces the home-directory prefix with ~ for display.
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if rest, ok := strings.CutPrefix(path, home); ok {
		return "~" + rest
	}
	return path
}

// clip truncates s to max runes, marking the cut with an ellipsis.
func clip(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
