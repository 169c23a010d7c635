package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/acarl005/stripansi"

	"github.com/YangQing-Lin/nr-cli/internal/project"
	"github.com/YangQing-Lin/nr-cli/internal/store"
	"github.com/YangQing-Lin/nr-cli/internal/testutil"
)

// envProject creates a project dir holding two package-level env files.
func envProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".env", "PORT=3000\n")
	testutil.WriteFile(t, dir, ".env.local", "PORT=4000\n")
	return dir
}

func TestTabOpensConfigureFlow(t *testing.T) {
	dir := envProject(t)
	m := newTestModel(t, testContext(dir, testScripts()), testStore(t))

	m = send(t, m, "tab")
	if m.mode != modeEnv {
		t.Fatalf("mode = %q after tab, want %q", m.mode, modeEnv)
	}
	if m.flow == nil {
		t.Fatal("flow = nil after tab")
	}
	if m.flow.script.Name != "build" {
		t.Errorf("flow script = %q, want the selected %q", m.flow.script.Name, "build")
	}
	if len(m.flow.env.files) != 2 {
		t.Fatalf("discovered %d env files, want 2", len(m.flow.env.files))
	}
	if len(m.flow.env.selected) != 0 {
		t.Errorf("selected = %v, want nothing preselected", m.flow.env.selectedNames())
	}
}

func TestTabNeedsSelection(t *testing.T) {
	m := testModel(t)

	m = send(t, m, "zzz", "tab")
	if m.mode != modeBrowse || m.flow != nil {
		t.Fatalf("tab with no match opened the flow (mode %q)", m.mode)
	}
}

func TestGlobalEnvPreferencePreselects(t *testing.T) {
	dir := envProject(t)
	st := testStore(t)
	st.GlobalEnv.Set([]string{".env.local"})
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab")
	got := m.flow.env.selectedPaths()
	if len(got) != 1 || got[0] != filepath.Join(dir, ".env.local") {
		t.Fatalf("selectedPaths() = %v, want the global preference", got)
	}
}

func TestSavedConfigSeedsFlow(t *testing.T) {
	dir := envProject(t)
	st := testStore(t)
	st.GlobalEnv.Set([]string{".env.local"})
	key := project.ScriptKey(testProjectID, project.ScopeRoot, "build")
	st.Configs.Set(key, store.ScriptConfig{SelectedEnvFiles: []string{".env"}, Args: "--watch"})
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab")
	got := m.flow.env.selectedPaths()
	if len(got) != 1 || got[0] != filepath.Join(dir, ".env") {
		t.Fatalf("selectedPaths() = %v, want the saved config over the global preference", got)
	}

	m = send(t, m, "enter")
	if m.mode != modeArgs {
		t.Fatalf("mode = %q after enter, want %q", m.mode, modeArgs)
	}
	if got := m.flow.args.input.Value(); got != "--watch" {
		t.Errorf("args seed = %q, want %q", got, "--watch")
	}
}

func TestEnvCursorStopsAtEdges(t *testing.T) {
	dir := envProject(t)
	m := newTestModel(t, testContext(dir, testScripts()), testStore(t))

	m = send(t, m, "tab", "up")
	if m.flow.env.cursor != 0 {
		t.Errorf("cursor = %d after up at the top, want 0", m.flow.env.cursor)
	}
	m = send(t, m, "down", "down", "down")
	if m.flow.env.cursor != 1 {
		t.Errorf("cursor = %d after down at the bottom, want 1", m.flow.env.cursor)
	}
}

func TestEnvSpaceToggles(t *testing.T) {
	dir := envProject(t)
	m := newTestModel(t, testContext(dir, testScripts()), testStore(t))

	m = send(t, m, "tab", "space")
	if names := m.flow.env.selectedNames(); len(names) != 1 || names[0] != ".env" {
		t.Fatalf("selectedNames() = %v, want [.env]", names)
	}

	m = send(t, m, "space")
	if names := m.flow.env.selectedNames(); len(names) != 0 {
		t.Fatalf("selectedNames() = %v after second toggle, want empty", names)
	}
}

func TestEnvEscAbandonsFlow(t *testing.T) {
	dir := envProject(t)
	st := testStore(t)
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab", "space", "esc")
	if m.mode != modeBrowse || m.flow != nil {
		t.Fatalf("esc left mode %q with flow %v, want browse with no flow", m.mode, m.flow)
	}
	if st.Configs.Len() != 0 {
		t.Errorf("Configs.Len() = %d after cancel, want 0", st.Configs.Len())
	}
	testutil.AssertFileNotExists(t, filepath.Join(st.Dir(), "script_configs.json"))
	testutil.AssertFileNotExists(t, filepath.Join(st.Dir(), "global_env.json"))
}

func TestEnvSelectorView(t *testing.T) {
	dir := envProject(t)
	m := newTestModel(t, testContext(dir, testScripts()), testStore(t))
	m = send(t, m, "tab")

	view := stripansi.Strip(m.View())
	for _, want := range []string{" Environment Files ", "Package:", "[ ] .env", "❯", "Space: toggle"} {
		if !strings.Contains(view, want) {
			t.Errorf("env selector missing %q:\n%s", want, view)
		}
	}

	m = send(t, m, "space")
	view = stripansi.Strip(m.View())
	if !strings.Contains(view, "[x] .env") {
		t.Errorf("expected checked box after toggle:\n%s", view)
	}
}

func TestEnvSelectorViewEmpty(t *testing.T) {
	m := testModel(t)
	m = send(t, m, "tab")

	view := stripansi.Strip(m.View())
	if !strings.Contains(view, "no .env files found") {
		t.Errorf("expected empty placeholder:\n%s", view)
	}
}

func TestArgsTyping(t *testing.T) {
	dir := envProject(t)
	m := newTestModel(t, testContext(dir, testScripts()), testStore(t))

	m = send(t, m, "tab", "enter", "--port 3000")
	if got := m.flow.args.input.Value(); got != "--port 3000" {
		t.Fatalf("input value = %q, want %q", got, "--port 3000")
	}

	m = send(t, m, "backspace")
	if got := m.flow.args.input.Value(); got != "--port 300" {
		t.Errorf("input value = %q after backspace, want %q", got, "--port 300")
	}
}

func TestArgsHistoryWalk(t *testing.T) {
	dir := envProject(t)
	st := testStore(t)
	st.ArgsHistory.Push("--b")
	st.ArgsHistory.Push("--a")
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab", "enter", "draft")

	m = send(t, m, "down")
	if m.flow.args.histIndex != 0 || m.flow.args.input.Value() != "--a" {
		t.Fatalf("first down = %d/%q, want 0/%q", m.flow.args.histIndex, m.flow.args.input.Value(), "--a")
	}
	if got := m.flow.args.input.Position(); got != len("--a") {
		t.Errorf("cursor = %d after recall, want end %d", got, len("--a"))
	}

	m = send(t, m, "down")
	if m.flow.args.histIndex != 1 || m.flow.args.input.Value() != "--b" {
		t.Fatalf("second down = %d/%q, want 1/%q", m.flow.args.histIndex, m.flow.args.input.Value(), "--b")
	}

	m = send(t, m, "down")
	if m.flow.args.histIndex != 1 {
		t.Errorf("down past the oldest moved to %d, want to stay at 1", m.flow.args.histIndex)
	}

	m = send(t, m, "up")
	if m.flow.args.input.Value() != "--a" {
		t.Fatalf("up = %q, want %q", m.flow.args.input.Value(), "--a")
	}

	m = send(t, m, "up")
	if m.flow.args.histIndex != -1 || m.flow.args.input.Value() != "draft" {
		t.Fatalf("up past the newest = %d/%q, want the stashed draft back", m.flow.args.histIndex, m.flow.args.input.Value())
	}

	m = send(t, m, "up")
	if m.flow.args.input.Value() != "draft" {
		t.Errorf("up at the draft changed the text to %q", m.flow.args.input.Value())
	}
}

func TestArgsEditingDetachesFromHistory(t *testing.T) {
	dir := envProject(t)
	st := testStore(t)
	st.ArgsHistory.Push("--a")
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab", "enter", "down", "x")
	if m.flow.args.histIndex != -1 {
		t.Errorf("histIndex = %d after editing, want -1", m.flow.args.histIndex)
	}
	if got := m.flow.args.input.Value(); got != "--ax" {
		t.Errorf("input value = %q, want %q", got, "--ax")
	}
}

func TestArgsEscDiscardsUncommittedEdits(t *testing.T) {
	dir := envProject(t)
	m := newTestModel(t, testContext(dir, testScripts()), testStore(t))

	m = send(t, m, "tab", "space", "enter", "--watch", "esc")
	if m.mode != modeEnv {
		t.Fatalf("mode = %q after esc, want %q", m.mode, modeEnv)
	}
	if names := m.flow.env.selectedNames(); len(names) != 1 || names[0] != ".env" {
		t.Errorf("selectedNames() = %v, want the selection kept", names)
	}

	m = send(t, m, "enter")
	if got := m.flow.args.input.Value(); got != "" {
		t.Errorf("input value = %q after backing out, want uncommitted text gone", got)
	}
}

func TestCommittedArgsSurviveBackingOut(t *testing.T) {
	dir := envProject(t)
	m := newTestModel(t, testContext(dir, testScripts()), testStore(t))

	m = send(t, m, "tab", "enter", "--watch", "enter")
	if m.mode != modeConfirm {
		t.Fatalf("mode = %q after commit, want %q", m.mode, modeConfirm)
	}

	m = send(t, m, "esc")
	if m.mode != modeArgs || m.flow.args.input.Value() != "--watch" {
		t.Fatalf("esc from confirm = %q/%q, want the editor with its text", m.mode, m.flow.args.input.Value())
	}

	m = send(t, m, "esc", "enter")
	if got := m.flow.args.input.Value(); got != "--watch" {
		t.Errorf("input value = %q after the round trip, want the committed text", got)
	}
}

func TestArgsInputView(t *testing.T) {
	dir := envProject(t)
	st := testStore(t)
	st.ArgsHistory.Push("--coverage")
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab", "enter")
	view := stripansi.Strip(m.View())
	for _, want := range []string{" Additional Arguments ", "Args: ", "Examples:", "--port 3000", "Recent (↑↓):", "--coverage"} {
		if !strings.Contains(view, want) {
			t.Errorf("args editor missing %q:\n%s", want, view)
		}
	}

	m = send(t, m, "down")
	view = stripansi.Strip(m.View())
	if !strings.Contains(view, "❯ --coverage") {
		t.Errorf("expected the recalled entry marked:\n%s", view)
	}
}

func TestConfirmView(t *testing.T) {
	dir := envProject(t)
	m := newTestModel(t, testContext(dir, testScripts()), testStore(t))

	m = send(t, m, "tab", "space", "enter", "--port 3000", "enter")
	view := stripansi.Strip(m.View())
	for _, want := range []string{" Ready to Execute ", "$ npm run build --port 3000", "Env:", "• .env", "CWD:", "Enter: execute"} {
		if !strings.Contains(view, want) {
			t.Errorf("confirm view missing %q:\n%s", want, view)
		}
	}
}

func TestConfirmEnterPersistsAndQuits(t *testing.T) {
	dir := envProject(t)
	root := t.TempDir()
	st := store.Load(root, testProjectID)
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab", "space", "enter", "--port 3000", "enter")
	final, cmd := sendOne(t, m, "enter")
	assertQuit(t, cmd)

	inv := final.Result()
	if inv == nil {
		t.Fatal("Result() = nil, want invocation")
	}
	if inv.Script != "build" || inv.Dir != dir {
		t.Errorf("invocation = %q in %q, want build in the package dir", inv.Script, inv.Dir)
	}
	if len(inv.ExtraArgs) != 2 || inv.ExtraArgs[0] != "--port" || inv.ExtraArgs[1] != "3000" {
		t.Errorf("ExtraArgs = %v, want the committed text split", inv.ExtraArgs)
	}
	if len(inv.EnvFiles) != 1 || inv.EnvFiles[0] != filepath.Join(dir, ".env") {
		t.Errorf("EnvFiles = %v, want the selected path", inv.EnvFiles)
	}
	if final.flow != nil {
		t.Error("flow should be cleared after confirm")
	}

	key := project.ScriptKey(testProjectID, project.ScopeRoot, "build")
	reloaded := store.Load(root, testProjectID)

	cfg, ok := reloaded.Configs.Get(key)
	if !ok {
		t.Fatal("expected a persisted script config")
	}
	if cfg.Args != "--port 3000" {
		t.Errorf("persisted Args = %q, want %q", cfg.Args, "--port 3000")
	}
	if len(cfg.SelectedEnvFiles) != 1 || cfg.SelectedEnvFiles[0] != ".env" {
		t.Errorf("persisted SelectedEnvFiles = %v, want [.env]", cfg.SelectedEnvFiles)
	}
	if want := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC).UnixMilli(); cfg.LastUsed != want {
		t.Errorf("persisted LastUsed = %d, want %d", cfg.LastUsed, want)
	}

	if names := reloaded.GlobalEnv.Get(); len(names) != 1 || names[0] != ".env" {
		t.Errorf("global env = %v, want the confirmed selection", names)
	}
	if entries := reloaded.ArgsHistory.All(); len(entries) != 1 || entries[0] != "--port 3000" {
		t.Errorf("args history = %v, want the committed text", entries)
	}
	if !reloaded.Recents.Has(key) {
		t.Error("expected a recents record for the confirmed run")
	}
}

func TestConfirmWithoutArgsSkipsHistory(t *testing.T) {
	dir := envProject(t)
	root := t.TempDir()
	st := store.Load(root, testProjectID)
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab", "enter", "enter")
	final, cmd := sendOne(t, m, "enter")
	assertQuit(t, cmd)

	if inv := final.Result(); inv == nil || len(inv.ExtraArgs) != 0 {
		t.Fatalf("Result() = %v, want an invocation without args", inv)
	}

	reloaded := store.Load(root, testProjectID)
	if reloaded.ArgsHistory.Len() != 0 {
		t.Errorf("args history = %v, want empty commits skipped", reloaded.ArgsHistory.All())
	}
	testutil.AssertFileNotExists(t, filepath.Join(st.Dir(), "args_history.json"))
	testutil.AssertFileExists(t, filepath.Join(st.Dir(), "script_configs.json"))
}

func TestEscChainLeavesNoTrace(t *testing.T) {
	dir := envProject(t)
	st := testStore(t)
	m := newTestModel(t, testContext(dir, testScripts()), st)

	m = send(t, m, "tab", "space", "enter", "--x", "enter")
	m = send(t, m, "esc")
	if m.mode != modeArgs {
		t.Fatalf("mode = %q, want %q", m.mode, modeArgs)
	}
	m = send(t, m, "esc")
	if m.mode != modeEnv {
		t.Fatalf("mode = %q, want %q", m.mode, modeEnv)
	}
	m = send(t, m, "esc")
	if m.mode != modeBrowse || m.flow != nil {
		t.Fatalf("mode = %q with flow %v, want the browser with no flow", m.mode, m.flow)
	}

	if st.Configs.Len() != 0 || st.ArgsHistory.Len() != 0 || st.Recents.Len() != 0 {
		t.Error("cancelled flow left persisted state behind")
	}
	testutil.AssertFileNotExists(t, filepath.Join(st.Dir(), "script_configs.json"))
	testutil.AssertFileNotExists(t, filepath.Join(st.Dir(), "recents.json"))
}

func TestMemberEnvMergeOrder(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".env", "A=root\n")
	testutil.WriteFile(t, dir, filepath.Join("packages", "web", ".env"), "A=web\n")
	ctx := testMonorepoContext(dir, testScripts())
	st := testStore(t)
	m := newTestModel(t, ctx, st)

	m = send(t, m, "right", "down", "enter", "tab")
	if m.mode != modeEnv {
		t.Fatalf("mode = %q, want the env selector", m.mode)
	}
	if len(m.flow.env.files) != 2 {
		t.Fatalf("discovered %d env files, want package and root", len(m.flow.env.files))
	}
	if m.flow.env.files[0].DisplayName != ".env" || m.flow.env.files[1].DisplayName != "root/.env" {
		t.Fatalf("display order = %v, want the package group first", m.flow.env.files)
	}

	view := stripansi.Strip(m.View())
	if !strings.Contains(view, "Package:") || !strings.Contains(view, "Root:") || !strings.Contains(view, "root/.env") {
		t.Errorf("expected both groups in the selector:\n%s", view)
	}

	m = send(t, m, "space", "down", "space", "enter", "enter")
	final, cmd := sendOne(t, m, "enter")
	assertQuit(t, cmd)

	inv := final.Result()
	if inv == nil {
		t.Fatal("Result() = nil, want invocation")
	}
	wantFiles := []string{
		filepath.Join(dir, ".env"),
		filepath.Join(dir, "packages", "web", ".env"),
	}
	if len(inv.EnvFiles) != 2 || inv.EnvFiles[0] != wantFiles[0] || inv.EnvFiles[1] != wantFiles[1] {
		t.Errorf("EnvFiles = %v, want merge order %v", inv.EnvFiles, wantFiles)
	}
	if inv.Dir != ctx.Members[1].Dir {
		t.Errorf("Dir = %q, want the member dir %q", inv.Dir, ctx.Members[1].Dir)
	}

	key := project.ScriptKey(testProjectID, "web", "check")
	cfg, ok := st.Configs.Get(key)
	if !ok {
		t.Fatal("expected a persisted config for the member script")
	}
	if len(cfg.SelectedEnvFiles) != 2 || cfg.SelectedEnvFiles[0] != ".env" || cfg.SelectedEnvFiles[1] != "root/.env" {
		t.Errorf("persisted SelectedEnvFiles = %v, want display order", cfg.SelectedEnvFiles)
	}
}
