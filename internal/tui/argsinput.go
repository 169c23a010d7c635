package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// historyPreview caps the recalled entries shown under the editor.
const historyPreview = 5

// argsState is the argument editor: a text input with full cursor
// editing plus a walk position in the argument history. histIndex is -1
// while the live draft is showing.
type argsState struct {
	input     textinput.Model
	histIndex int

	// draft stashes the live text while walking the history so moving
	// back up restores it.
	draft string
}

func newArgsState(seed string, width int) argsState {
	input := textinput.New()
	input.Prompt = "Args: "
	input.CharLimit = 256
	input.Width = width
	input.SetValue(seed)
	input.CursorEnd()
	input.Focus()
	return argsState{input: input, histIndex: -1}
}

// recall walks the argument history: +1 moves to older entries, -1 back
// toward the live draft. Recalled text shows with the cursor at the end.
func (s *argsState) recall(history []string, delta int) {
	if len(history) == 0 {
		return
	}

	next := s.histIndex + delta
	switch {
	case next < -1 || next >= len(history):
		return
	case next == -1:
		s.histIndex = -1
		s.input.SetValue(s.draft)
	default:
		if s.histIndex == -1 {
			s.draft = s.input.Value()
		}
		s.histIndex = next
		s.input.SetValue(history[next])
	}
	s.input.CursorEnd()
}

// handleArgsKeys drives the editor. Up and Down walk the history, Enter
// commits the text and advances, Esc backs out to the env selector
// discarding uncommitted edits. Everything else is ordinary editing.
func (m Model) handleArgsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = modeEnv
		return m, nil

	case "enter":
		m.flow.committed = m.flow.args.input.Value()
		m.mode = modeConfirm
		return m, nil

	case "up":
		m.flow.args.recall(m.st.ArgsHistory.All(), -1)
		return m, nil

	case "down":
		m.flow.args.recall(m.st.ArgsHistory.All(), 1)
		return m, nil
	}

	before := m.flow.args.input.Value()
	var cmd tea.Cmd
	m.flow.args.input, cmd = m.flow.args.input.Update(msg)
	if m.flow.args.input.Value() != before {
		// Editing detaches from the history walk.
		m.flow.args.histIndex = -1
	}
	return m, cmd
}

func (m Model) viewArgsInput() string {
	args := &m.flow.args
	var b strings.Builder

	b.WriteString(args.input.View() + "\n\n")
	b.WriteString(historyStyle.Render("Examples: ") +
		exampleStyle.Render("--port 3000") + "  " +
		exampleStyle.Render("--watch") + "  " +
		exampleStyle.Render("--env production") + "\n")

	if history := m.st.ArgsHistory.All(); len(history) > 0 {
		b.WriteString("\n" + labelStyle.Render("Recent (↑↓):") + "\n")
		for i, entry := range history {
			if i >= historyPreview {
				break
			}
			if i == args.histIndex {
				b.WriteString(pickedRowStyle.Render("❯ "+entry) + "\n")
			} else {
				b.WriteString(historyStyle.Render("  "+entry) + "\n")
			}
		}
	}

	b.WriteString("\n" + helpStyle.Render("←/→: move • ↑/↓: history • Enter: next • Esc: back"))
	return m.modal(" Additional Arguments ", b.String(), 60, 50)
}

// argsInputWidth sizes the editor to the args modal interior.
func (m Model) argsInputWidth() int {
	w := m.width*60/100 - 14
	if w < 20 {
		w = 20
	}
	return w
}
