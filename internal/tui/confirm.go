package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YangQing-Lin/nr-cli/internal/store"
)

// handleConfirmKeys drives the read-only preview. Enter persists the
// configuration and ends the session with the invocation; Esc steps back
// into the argument editor.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = modeArgs
		return m, textinput.Blink

	case "enter":
		flow := m.flow
		if err := m.persistFlow(); err != nil {
			// The run still proceeds; the store flush after the session
			// retries the write and reports it.
			m.err = err
		}
		m.flow = nil
		m.mode = modeBrowse
		return m.quitWith(flow.invocation(m.proj.Manager))
	}

	return m, nil
}

// persistFlow saves the confirmed configuration in a fixed order: the
// per-script configuration, the global env preference, the argument
// history, then the run record. The first write failure is returned but
// later steps still run.
func (m *Model) persistFlow() error {
	flow := m.flow
	names := flow.env.selectedNames()

	m.st.Configs.Set(flow.script.Key, store.ScriptConfig{
		SelectedEnvFiles: names,
		Args:             flow.committed,
		LastUsed:         m.now().UnixMilli(),
	})
	err := m.st.Configs.Save()

	m.st.GlobalEnv.Set(names)
	if e := m.st.GlobalEnv.Save(); err == nil {
		err = e
	}

	if flow.committed != "" {
		m.st.ArgsHistory.Push(flow.committed)
		if e := m.st.ArgsHistory.Save(); err == nil {
			err = e
		}
	}

	m.st.Recents.Record(flow.script.Key, m.now())
	if e := m.st.Recents.Save(); err == nil {
		err = e
	}

	return err
}

func (m Model) viewConfirm() string {
	flow := m.flow
	var b strings.Builder

	b.WriteString(previewStyle.Render("$ "+flow.invocation(m.proj.Manager).CommandLine()) + "\n\n")

	if names := flow.env.selectedNames(); len(names) > 0 {
		b.WriteString(labelStyle.Render("Env:") + "\n")
		for _, name := range names {
			b.WriteString(detailStyle.Render("  • "+name) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("CWD: ") + detailStyle.Render(shortenPath(flow.script.Dir)) + "\n")

	b.WriteString("\n" + helpStyle.Render("Enter: execute • Esc: back"))
	return m.modal(" Ready to Execute ", b.String(), 70, 60)
}
