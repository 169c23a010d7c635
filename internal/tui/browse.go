package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YangQing-Lin/nr-cli/internal/rank"
	"github.com/YangQing-Lin/nr-cli/internal/runner"
)

// handleBrowseKeys drives the normal mode: typing edits the fuzzy query,
// arrows move, Enter runs as-is, Tab opens the configure flow.
func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.tab == tabPackages && m.member >= 0 {
			m.leaveMember()
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		return m.activateSelection()

	case "tab":
		if flow, ok := m.newFlow(); ok {
			m.flow = flow
			m.mode = modeEnv
			m.err = nil
			m.message = ""
		}
		return m, nil

	case "up":
		m.moveCursor(-1)

	case "down":
		m.moveCursor(1)

	case "left":
		m.switchTab(-1)

	case "right":
		m.switchTab(1)

	case "backspace":
		m.eraseQueryRune()

	default:
		switch msg.Type {
		case tea.KeySpace:
			m.toggleFavorite()
		case tea.KeyRunes:
			m.typeQuery(string(msg.Runes))
		}
	}

	return m, nil
}

// activateSelection runs the selected script as-is, or drills into the
// selected package on the packages tab.
func (m Model) activateSelection() (tea.Model, tea.Cmd) {
	if m.tab == tabPackages && m.member < 0 {
		if idx, ok := m.pkgList.selection(); ok {
			m.enterMember(idx)
		}
		return m, nil
	}

	scripts, view, ok := m.activeScripts()
	if !ok {
		return m, nil
	}
	idx, ok := view.selection()
	if !ok {
		return m, nil
	}

	script := scripts[idx]
	m.st.Recents.Record(script.Key, m.now())
	return m.quitWith(runner.Invocation{
		Manager: m.proj.Manager,
		Script:  script.Name,
		Dir:     script.Dir,
	})
}

func (m *Model) moveCursor(delta int) {
	height := m.listHeight()
	switch {
	case m.tab == tabScripts:
		m.list.move(delta, height)
	case m.member >= 0:
		m.memList.move(delta, height)
	default:
		m.pkgList.move(delta, height)
	}
}

// switchTab moves between the Scripts and Packages tabs. Leaving the
// packages tab also backs out of any drilled-in member.
func (m *Model) switchTab(delta int) {
	if !m.hasWorkspaces() {
		return
	}
	switch {
	case m.tab == tabScripts && delta > 0:
		m.tab = tabPackages
	case m.tab == tabPackages && delta < 0:
		m.leaveMember()
		m.tab = tabScripts
	}
}

// toggleFavorite stars the selected script and saves the document right
// away; a failed write shows in the status line and the next mutation
// retries it.
func (m *Model) toggleFavorite() {
	scripts, view, ok := m.activeScripts()
	if !ok {
		return
	}
	idx, ok := view.selection()
	if !ok {
		return
	}

	script := scripts[idx]
	starred := m.st.Favorites.Toggle(script.Key)
	if err := m.st.Favorites.Save(); err != nil {
		m.err = fmt.Errorf("failed to save favorites: %w", err)
		m.message = ""
	} else {
		if starred {
			m.message = "★ " + script.Name
		} else {
			m.message = "☆ " + script.Name
		}
		m.err = nil
	}

	if m.tab == tabScripts {
		m.refreshScripts()
	} else {
		m.refreshMemberScripts()
	}
}

func (m *Model) typeQuery(s string) {
	switch {
	case m.tab == tabScripts:
		m.list.query += s
		m.refreshScripts()
	case m.member >= 0:
		m.memList.query += s
		m.refreshMemberScripts()
	default:
		m.pkgList.query += s
		m.refreshPackages()
	}
}

func (m *Model) eraseQueryRune() {
	switch {
	case m.tab == tabScripts:
		m.list.query = trimLastRune(m.list.query)
		m.refreshScripts()
	case m.member >= 0:
		m.memList.query = trimLastRune(m.memList.query)
		m.refreshMemberScripts()
	default:
		m.pkgList.query = trimLastRune(m.pkgList.query)
		m.refreshPackages()
	}
}

// refreshScripts reranks the root catalog for the current query and
// resets the cursor to the top.
func (m *Model) refreshScripts() {
	m.list.visible = rank.Sort(m.scripts, m.st.Favorites, m.st.Recents, m.list.query, m.now())
	m.list.cursor = 0
	m.list.offset = 0
}

func (m *Model) refreshPackages() {
	m.pkgList.visible = rank.FilterNames(m.pkgNames, m.pkgList.query)
	m.pkgList.cursor = 0
	m.pkgList.offset = 0
}

func (m *Model) refreshMemberScripts() {
	m.memList.visible = rank.Sort(m.memScripts, m.st.Favorites, m.st.Recents, m.memList.query, m.now())
	m.memList.cursor = 0
	m.memList.offset = 0
}

// enterMember opens one workspace package's script list.
func (m *Model) enterMember(idx int) {
	m.member = idx
	m.memScripts = m.proj.MemberScripts(m.proj.Members[idx])
	m.memList = listView{}
	m.refreshMemberScripts()
}

func (m *Model) leaveMember() {
	m.member = -1
	m.memScripts = nil
	m.memList = listView{}
}

func (m Model) viewBrowse() string {
	var s strings.Builder

	s.WriteString(m.viewHeader() + "\n")
	if m.hasWorkspaces() {
		s.WriteString(m.viewTabs() + "\n")
	}
	s.WriteString(m.viewSearch() + "\n")

	if m.err != nil {
		s.WriteString(errorMessageStyle.Render("✗ "+m.err.Error()) + "\n")
	} else if m.message != "" {
		s.WriteString(successMessageStyle.Render("✓ "+m.message) + "\n")
	} else {
		s.WriteString("\n")
	}

	if m.tab == tabPackages && m.member < 0 {
		s.WriteString(m.viewPackageList())
	} else {
		s.WriteString(m.viewScriptList())
	}

	s.WriteString("\n" + m.viewHelp())
	return s.String()
}

func (m Model) viewHeader() string {
	name := "unknown"
	if m.proj.Package != nil && m.proj.Package.Name != "" {
		name = m.proj.Package.Name
	}
	return projectNameStyle.Render(name) +
		"  " + projectPathStyle.Render(shortenPath(m.proj.Root)) +
		"  " + managerStyle.Render(m.proj.Manager.String())
}

func (m Model) viewTabs() string {
	scripts := "Scripts"
	packages := "Packages"
	if m.member >= 0 {
		packages = "Packages ▸ " + m.proj.Members[m.member].Name
	}

	if m.tab == tabScripts {
		return activeTabStyle.Render(scripts) + "  " + inactiveTabStyle.Render(packages)
	}
	return inactiveTabStyle.Render(scripts) + "  " + activeTabStyle.Render(packages)
}

func (m Model) viewSearch() string {
	return searchStyle.Render("> " + m.activeQuery() + "█")
}

func (m Model) activeQuery() string {
	switch {
	case m.tab == tabScripts:
		return m.list.query
	case m.member >= 0:
		return m.memList.query
	default:
		return m.pkgList.query
	}
}

func (m Model) viewScriptList() string {
	scripts, view, ok := m.activeScripts()
	if !ok {
		return ""
	}
	if len(view.visible) == 0 {
		return emptyListStyle.Render("  nothing matches") + "\n"
	}

	var s strings.Builder
	height := m.listHeight()
	for i := view.offset; i < len(view.visible) && i < view.offset+height; i++ {
		script := scripts[view.visible[i]]

		cursor := "  "
		if i == view.cursor {
			cursor = "❯ "
		}
		star := "  "
		if m.st.Favorites.Has(script.Key) {
			star = starStyle.Render("★ ")
		}

		name := fmt.Sprintf("%-20s", script.Name)
		if i == view.cursor {
			name = cursorRowStyle.Render(name)
			cursor = cursorRowStyle.Render(cursor)
		}
		command := commandStyle.Render(clip(script.Command, m.width-26))

		s.WriteString(cursor + star + name + command + "\n")
	}
	return s.String()
}

func (m Model) viewPackageList() string {
	if len(m.pkgList.visible) == 0 {
		return emptyListStyle.Render("  nothing matches") + "\n"
	}

	nameWidth := 12
	for _, i := range m.pkgList.visible {
		if len(m.pkgNames[i]) > nameWidth {
			nameWidth = len(m.pkgNames[i])
		}
	}
	nameWidth += 2

	var s strings.Builder
	height := m.listHeight()
	for i := m.pkgList.offset; i < len(m.pkgList.visible) && i < m.pkgList.offset+height; i++ {
		member := m.proj.Members[m.pkgList.visible[i]]

		cursor := "  "
		name := fmt.Sprintf("%-*s", nameWidth, member.Name)
		if i == m.pkgList.cursor {
			cursor = cursorRowStyle.Render("❯ ")
			name = cursorRowStyle.Render(name)
		}

		s.WriteString(cursor + name + commandStyle.Render(member.RelPath) + "\n")
	}
	return s.String()
}

func (m Model) viewHelp() string {
	items := []string{"↑/↓: navigate", "Enter: run", "Tab: configure", "Space: favorite", "Esc: quit"}
	if m.tab == tabPackages && m.member < 0 {
		items = []string{"↑/↓: navigate", "Enter: open", "←: scripts", "Esc: quit"}
	}
	return helpStyle.Render(strings.Join(items, " • "))
}
