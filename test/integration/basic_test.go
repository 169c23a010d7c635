package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/YangQing-Lin/nr-cli/internal/project"
	"github.com/YangQing-Lin/nr-cli/internal/store"
	"github.com/YangQing-Lin/nr-cli/internal/testutil"
	"github.com/YangQing-Lin/nr-cli/internal/tui"
)

// TestPickAndConfigureWorkflow walks one user story over a real project
// tree: favorite a script, configure and confirm it, then verify the
// state a later session starts from.
func TestPickAndConfigureWorkflow(t *testing.T) {
	projectDir := t.TempDir()
	stateRoot := t.TempDir()
	testutil.WriteManifest(t, projectDir, `{
  "name": "webapp",
  "scripts": {
    "dev": "vite",
    "build": "vite build",
    "test": "vitest"
  }
}`)
	testutil.WriteFile(t, projectDir, ".env", "PORT=3000\n")

	pctx, err := project.Build(context.Background(), projectDir)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	testKey := project.ScriptKey(pctx.ID, project.ScopeRoot, "test")

	t.Run("FavoriteSurvivesSession", func(t *testing.T) {
		st := store.Load(stateRoot, pctx.ID)
		m := tui.New(pctx, st)

		// Alphabetical catalog [build, dev, test]; star the last one.
		testutil.BubbleTeaTestHelper(t, m, []string{"down", "down", "space"})

		if !store.Load(stateRoot, pctx.ID).Favorites.Has(testKey) {
			t.Fatal("favorite not persisted")
		}
	})

	t.Run("ConfigureAndConfirm", func(t *testing.T) {
		st := store.Load(stateRoot, pctx.ID)
		m := tui.New(pctx, st)

		// The favorite ranks first now; configure it with an env file and
		// extra args, then confirm.
		final := testutil.BubbleTeaTestHelper(t, m,
			[]string{"tab", "space", "enter", "--watch", "enter", "enter"})

		inv := final.(tui.Model).Result()
		if inv == nil {
			t.Fatal("expected an execute directive")
		}
		if inv.Script != "test" {
			t.Errorf("Script = %q, want the favorited %q", inv.Script, "test")
		}
		if len(inv.EnvFiles) != 1 || inv.EnvFiles[0] != filepath.Join(projectDir, ".env") {
			t.Errorf("EnvFiles = %v, want the selected file", inv.EnvFiles)
		}
		if len(inv.ExtraArgs) != 1 || inv.ExtraArgs[0] != "--watch" {
			t.Errorf("ExtraArgs = %v, want the typed args", inv.ExtraArgs)
		}
	})

	t.Run("StateSurvivesReload", func(t *testing.T) {
		st := store.Load(stateRoot, pctx.ID)

		cfg, ok := st.Configs.Get(testKey)
		if !ok {
			t.Fatal("no persisted config after confirm")
		}
		if cfg.Args != "--watch" {
			t.Errorf("persisted Args = %q, want %q", cfg.Args, "--watch")
		}
		if len(cfg.SelectedEnvFiles) != 1 || cfg.SelectedEnvFiles[0] != ".env" {
			t.Errorf("persisted SelectedEnvFiles = %v, want [.env]", cfg.SelectedEnvFiles)
		}
		if !st.Recents.Has(testKey) {
			t.Error("recents record missing after confirm")
		}
		if names := st.GlobalEnv.Get(); len(names) != 1 || names[0] != ".env" {
			t.Errorf("global env preference = %v, want [.env]", names)
		}
	})

	t.Run("SavedConfigSeedsNextSession", func(t *testing.T) {
		st := store.Load(stateRoot, pctx.ID)
		m := tui.New(pctx, st)

		// Walk the flow without retyping anything; the saved config must
		// reproduce the same directive.
		final := testutil.BubbleTeaTestHelper(t, m, []string{"tab", "enter", "enter", "enter"})

		inv := final.(tui.Model).Result()
		if inv == nil {
			t.Fatal("expected an execute directive")
		}
		if len(inv.ExtraArgs) != 1 || inv.ExtraArgs[0] != "--watch" {
			t.Errorf("ExtraArgs = %v, want the saved args", inv.ExtraArgs)
		}
		if len(inv.EnvFiles) != 1 || inv.EnvFiles[0] != filepath.Join(projectDir, ".env") {
			t.Errorf("EnvFiles = %v, want the saved selection", inv.EnvFiles)
		}
	})
}

// TestWorkspaceRunWorkflow resolves a pnpm monorepo, drills into a member,
// and checks the handoff plus the flushed run record.
func TestWorkspaceRunWorkflow(t *testing.T) {
	root := t.TempDir()
	stateRoot := t.TempDir()
	testutil.WriteManifest(t, root, `{
  "name": "mono",
  "workspaces": ["packages/*"],
  "scripts": {"lint": "eslint ."}
}`)
	testutil.WriteFile(t, root, "pnpm-lock.yaml", "lockfileVersion: '9.0'\n")
	testutil.WriteManifest(t, filepath.Join(root, "packages", "web"), `{"name":"web","scripts":{"serve":"vite"}}`)
	testutil.WriteManifest(t, filepath.Join(root, "packages", "api"), `{"name":"api","scripts":{"start":"node server.js"}}`)

	pctx, err := project.Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !pctx.IsMonorepo {
		t.Fatal("expected a workspace root")
	}
	if pctx.Manager != project.PNPM {
		t.Errorf("Manager = %q, want pnpm", pctx.Manager)
	}
	if len(pctx.Members) != 2 || pctx.Members[0].Name != "api" || pctx.Members[1].Name != "web" {
		t.Fatalf("Members = %v, want [api web] by relative path", pctx.Members)
	}

	st := store.Load(stateRoot, pctx.ID)
	m := tui.New(pctx, st)

	// Packages tab, second member (web), its only script.
	final := testutil.BubbleTeaTestHelper(t, m, []string{"right", "down", "enter", "enter"})

	inv := final.(tui.Model).Result()
	if inv == nil {
		t.Fatal("expected an execute directive")
	}
	if inv.Script != "serve" {
		t.Errorf("Script = %q, want %q", inv.Script, "serve")
	}
	if want := filepath.Join(root, "packages", "web"); inv.Dir != want {
		t.Errorf("Dir = %q, want the member dir %q", inv.Dir, want)
	}
	if inv.Manager != project.PNPM {
		t.Errorf("Manager = %q, want pnpm", inv.Manager)
	}

	// The CLI flushes before the handoff; the run record must survive it.
	if err := st.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	key := project.ScriptKey(pctx.ID, "web", "serve")
	if !store.Load(stateRoot, pctx.ID).Recents.Has(key) {
		t.Error("flushed recents record missing")
	}
}
