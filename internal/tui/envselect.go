package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YangQing-Lin/nr-cli/internal/envfile"
)

// envState is the env-file selector: the discovered files in display
// order, the cursor, and the chosen set keyed by absolute path.
type envState struct {
	groups   envfile.List
	files    []envfile.File
	cursor   int
	selected map[string]bool
}

// newEnvState builds the selector with the files whose display names
// appear in preselect already chosen.
func newEnvState(groups envfile.List, preselect []string) envState {
	selected := make(map[string]bool)
	for _, f := range groups.Select(preselect) {
		selected[f.Path] = true
	}
	return envState{
		groups:   groups,
		files:    groups.All(),
		selected: selected,
	}
}

// move shifts the cursor by delta without wrapping.
func (s *envState) move(delta int) {
	next := s.cursor + delta
	if next < 0 || next >= len(s.files) {
		return
	}
	s.cursor = next
}

// toggle flips the file under the cursor in and out of the chosen set.
func (s *envState) toggle() {
	if s.cursor < 0 || s.cursor >= len(s.files) {
		return
	}
	path := s.files[s.cursor].Path
	if s.selected[path] {
		delete(s.selected, path)
	} else {
		s.selected[path] = true
	}
}

// selectedNames returns the chosen display names in display order; these
// are what the store persists.
func (s *envState) selectedNames() []string {
	var out []string
	for _, f := range s.files {
		if s.selected[f.Path] {
			out = append(out, f.DisplayName)
		}
	}
	return out
}

// selectedPaths returns the chosen paths in merge order, root group
// before package group, so package values override root values.
func (s *envState) selectedPaths() []string {
	var out []string
	for _, f := range s.groups.MergeOrder() {
		if s.selected[f.Path] {
			out = append(out, f.Path)
		}
	}
	return out
}

// handleEnvKeys drives the selector. Esc abandons the whole flow with
// nothing persisted; Enter carries the selection into the argument
// editor.
func (m Model) handleEnvKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.flow = nil
		m.mode = modeBrowse
		return m, nil

	case "enter":
		m.flow.args = newArgsState(m.flow.committed, m.argsInputWidth())
		m.mode = modeArgs
		return m, textinput.Blink

	case "up":
		m.flow.env.move(-1)

	case "down":
		m.flow.env.move(1)

	default:
		if msg.Type == tea.KeySpace {
			m.flow.env.toggle()
		}
	}

	return m, nil
}

func (m Model) viewEnvSelector() string {
	env := &m.flow.env
	var b strings.Builder

	row := 0
	if len(env.groups.Package) > 0 {
		b.WriteString(sectionStyle.Render("Package: "+shortenPath(m.flow.script.Dir)) + "\n")
		for _, f := range env.groups.Package {
			b.WriteString(m.envRow(f, row) + "\n")
			row++
		}
	}
	if len(env.groups.Root) > 0 {
		if row > 0 {
			b.WriteString(dividerStyle.Render(strings.Repeat("─", 33)) + "\n")
		}
		b.WriteString(sectionStyle.Render("Root: "+shortenPath(m.proj.Root)) + "\n")
		for _, f := range env.groups.Root {
			b.WriteString(m.envRow(f, row) + "\n")
			row++
		}
	}
	if row == 0 {
		b.WriteString(emptyListStyle.Render("no .env files found") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓: navigate • Space: toggle • Enter: next • Esc: cancel"))
	return m.modal(" Environment Files ", b.String(), 60, 70)
}

// envRow renders one selectable file line with its checkbox and the
// parent directory as a hint.
func (m Model) envRow(f envfile.File, row int) string {
	checked := m.flow.env.selected[f.Path]

	box := "[ ]"
	if checked {
		box = "[x]"
	}
	cursor := "  "
	if row == m.flow.env.cursor {
		cursor = "❯ "
	}

	line := cursor + box + " " + f.DisplayName + " (" + filepath.Base(filepath.Dir(f.Path)) + ")"
	switch {
	case row == m.flow.env.cursor:
		return pickedRowStyle.Render(line)
	case checked:
		return checkedRowStyle.Render(line)
	default:
		return line
	}
}
