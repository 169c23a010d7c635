package tui

import (
	"strings"

	"github.com/YangQing-Lin/nr-cli/internal/envfile"
	"github.com/YangQing-Lin/nr-cli/internal/project"
	"github.com/YangQing-Lin/nr-cli/internal/runner"
)

// flowState carries one pass through the configure flow: the target
// script, the env selector, the argument editor, and the argument text
// committed by the last advance. It exists only between Tab and the
// confirm or cancel that ends the flow.
type flowState struct {
	script project.Script
	env    envState
	args   argsState

	// committed is the argument text as of the last Enter in the editor;
	// backing out of the editor discards uncommitted edits.
	committed string
}

// newFlow opens the configure flow for the selected script. The saved
// configuration for the script key seeds the env selection and the
// argument text; without one, the selector starts from the global env
// preference and the arguments start empty.
func (m *Model) newFlow() (*flowState, bool) {
	scripts, view, ok := m.activeScripts()
	if !ok {
		return nil, false
	}
	idx, ok := view.selection()
	if !ok {
		return nil, false
	}
	script := scripts[idx]

	files := envfile.Scan(script.Dir, m.proj.Root)

	args := ""
	var preselect []string
	if cfg, ok := m.st.Configs.Get(script.Key); ok {
		args = cfg.Args
		preselect = cfg.SelectedEnvFiles
	} else {
		preselect = m.st.GlobalEnv.Get()
	}

	return &flowState{
		script:    script,
		env:       newEnvState(files, preselect),
		committed: args,
	}, true
}

// invocation assembles the execute directive for the confirmed flow.
func (f *flowState) invocation(manager project.Manager) runner.Invocation {
	return runner.Invocation{
		Manager:   manager,
		Script:    f.script.Name,
		Dir:       f.script.Dir,
		ExtraArgs: strings.Fields(f.committed),
		EnvFiles:  f.env.selectedPaths(),
	}
}
