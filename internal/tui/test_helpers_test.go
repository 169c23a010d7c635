package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YangQing-Lin/nr-cli/internal/manifest"
	"github.com/YangQing-Lin/nr-cli/internal/project"
	"github.com/YangQing-Lin/nr-cli/internal/store"
	"github.com/YangQing-Lin/nr-cli/internal/testutil"
)

const testProjectID = "abcd1234"

// testScripts is the default fixture catalog. Alphabetical browsing
// order with no favorites or recents: build, dev, test.
func testScripts() []manifest.Script {
	return []manifest.Script{
		{Name: "dev", Command: "vite"},
		{Name: "build", Command: "vite build"},
		{Name: "test", Command: "vitest"},
	}
}

// testContext assembles a standalone project rooted at dir.
func testContext(dir string, scripts []manifest.Script) *project.Context {
	return &project.Context{
		ID:          testProjectID,
		WorkDir:     dir,
		PackageRoot: dir,
		Root:        dir,
		Manager:     project.NPM,
		Package:     &manifest.Manifest{Dir: dir, Name: "demo", Scripts: scripts},
	}
}

// testMonorepoContext adds workspace members under dir/packages, in the
// relative-path order the scanner produces.
func testMonorepoContext(dir string, scripts []manifest.Script) *project.Context {
	ctx := testContext(dir, scripts)
	ctx.IsMonorepo = true
	ctx.Members = []project.Member{
		{
			Name:    "api",
			Dir:     filepath.Join(dir, "packages", "api"),
			RelPath: "packages/api",
			Manifest: &manifest.Manifest{
				Dir:     filepath.Join(dir, "packages", "api"),
				Name:    "api",
				Scripts: []manifest.Script{{Name: "start", Command: "node server.js"}},
			},
		},
		{
			Name:    "web",
			Dir:     filepath.Join(dir, "packages", "web"),
			RelPath: "packages/web",
			Manifest: &manifest.Manifest{
				Dir:     filepath.Join(dir, "packages", "web"),
				Name:    "web",
				Scripts: []manifest.Script{{Name: "serve", Command: "vite"}, {Name: "check", Command: "tsc"}},
			},
		},
	}
	return ctx
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	return store.Load(t.TempDir(), testProjectID)
}

// testModel wires a model over a fresh temp project with the default
// catalog and a pinned clock.
func testModel(t *testing.T) Model {
	t.Helper()
	return newTestModel(t, testContext(t.TempDir(), testScripts()), testStore(t))
}

func newTestModel(t *testing.T, ctx *project.Context, st *store.Store) Model {
	t.Helper()
	m := New(ctx, st)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	return m
}

// send runs a key sequence through the model and returns the result.
func send(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	final := testutil.BubbleTeaTestHelper(t, m, keys)
	out, ok := final.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", final)
	}
	return out
}

// sendOne delivers a single key and returns the model and command.
func sendOne(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(testutil.KeyMsg(key))
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", updated)
	}
	return out, cmd
}

// assertQuit fails unless cmd produces the bubbletea quit message.
func assertQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected quit command, got nil")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit command")
	}
}

// selectedName returns the script name under the cursor.
func selectedName(t *testing.T, m Model) string {
	t.Helper()
	scripts, view, ok := m.activeScripts()
	if !ok {
		t.Fatal("no active script list")
	}
	idx, ok := view.selection()
	if !ok {
		t.Fatal("no selection")
	}
	return scripts[idx].Name
}
