// Package tui implements the interactive script picker. A session browses
// the project's script catalog, optionally walks the configure flow for
// env files and arguments, and ends with either a quit or an Invocation
// for the CLI layer to execute after the terminal is restored.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YangQing-Lin/nr-cli/internal/project"
	"github.com/YangQing-Lin/nr-cli/internal/runner"
	"github.com/YangQing-Lin/nr-cli/internal/store"
)

const (
	modeBrowse  = "browse"
	modeEnv     = "env"
	modeArgs    = "args"
	modeConfirm = "confirm"
)

const (
	tabScripts = iota
	tabPackages
)

// listView is one filterable list: a query, a cursor, a scroll offset,
// and the ranked index view into the backing catalog. The catalog itself
// is never reordered.
type listView struct {
	query   string
	cursor  int
	offset  int
	visible []int
}

// selection returns the catalog index under the cursor.
func (v listView) selection() (int, bool) {
	if v.cursor < 0 || v.cursor >= len(v.visible) {
		return 0, false
	}
	return v.visible[v.cursor], true
}

// move shifts the cursor by delta, wrapping at both ends, and keeps it
// inside the visible window.
func (v *listView) move(delta, height int) {
	if len(v.visible) == 0 {
		return
	}
	v.cursor = wrapIndex(v.cursor, delta, len(v.visible))
	v.scrollTo(height)
}

// scrollTo adjusts the offset so the cursor stays on screen.
func (v *listView) scrollTo(height int) {
	if height < 1 {
		height = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+height {
		v.offset = v.cursor - height + 1
	}
}

// Model is the bubbletea model for one picker session.
type Model struct {
	proj *project.Context
	st   *store.Store
	now  func() time.Time

	// scripts holds the root catalog for the session; ranking returns
	// index views into it.
	scripts []project.Script
	list    listView

	// packages tab state; member is -1 while picking a package and the
	// member index once drilled into one.
	pkgNames   []string
	pkgList    listView
	member     int
	memScripts []project.Script
	memList    listView

	tab  int
	mode string

	// flow is non-nil only while the configure flow is open.
	flow *flowState

	width  int
	height int

	err     error
	message string

	// result carries the execute directive out of the session; nil when
	// the user quit without running anything.
	result *runner.Invocation
}

// New builds the session model over a resolved project and its store.
func New(proj *project.Context, st *store.Store) Model {
	m := Model{
		proj:    proj,
		st:      st,
		now:     time.Now,
		scripts: proj.RootScripts(),
		member:  -1,
		mode:    modeBrowse,
		width:   80,
		height:  24,
	}

	m.pkgNames = make([]string, len(proj.Members))
	for i, member := range proj.Members {
		m.pkgNames[i] = member.Name
	}

	m.refreshScripts()
	m.refreshPackages()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEnv:
			return m.handleEnvKeys(msg)
		case modeArgs:
			return m.handleArgsKeys(msg)
		case modeConfirm:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}
	}

	return m, nil
}

func (m Model) View() string {
	switch m.mode {
	case modeEnv:
		return m.viewEnvSelector()
	case modeArgs:
		return m.viewArgsInput()
	case modeConfirm:
		return m.viewConfirm()
	default:
		return m.viewBrowse()
	}
}

// Result returns the execute directive chosen during the session, nil
// when the user quit without selecting a script.
func (m Model) Result() *runner.Invocation {
	return m.result
}

func (m Model) hasWorkspaces() bool {
	return len(m.proj.Members) > 0
}

// activeScripts returns the catalog and view the cursor currently works
// on, false while the packages tab is still picking a package.
func (m *Model) activeScripts() ([]project.Script, *listView, bool) {
	if m.tab == tabScripts {
		return m.scripts, &m.list, true
	}
	if m.member >= 0 {
		return m.memScripts, &m.memList, true
	}
	return nil, nil, false
}

// listHeight estimates the rows available to the active list, for scroll
// positioning only.
func (m Model) listHeight() int {
	chrome := 6
	if m.hasWorkspaces() {
		chrome++
	}
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	return h
}

// quitWith ends the session, handing the invocation to the CLI layer.
func (m Model) quitWith(inv runner.Invocation) (tea.Model, tea.Cmd) {
	m.result = &inv
	return m, tea.Quit
}
