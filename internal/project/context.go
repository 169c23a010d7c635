package project

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/YangQing-Lin/nr-cli/internal/manifest"
)

// ScopeRoot marks scripts of the package the user invoked in; package
// scripts carry the member name as their scope instead.
const ScopeRoot = "root"

// Script is one runnable catalog entry.
type Script struct {
	// Key is "{project_id}:{scope}:{name}", the handle for all persisted
	// per-script state.
	Key string
	// Name is the scripts-object key.
	Name string
	// Command is the shell text behind the name, shown for context.
	Command string
	// Scope is ScopeRoot or the workspace member name.
	Scope string
	// Dir is the directory the script runs in.
	Dir string
}

// Context is everything resolved about the surrounding project before the
// picker starts.
type Context struct {
	// ID keys the per-project state directory.
	ID string
	// WorkDir is the canonicalized invocation directory.
	WorkDir string
	// PackageRoot is the nearest directory with a package.json.
	PackageRoot string
	// Root is the monorepo root when one exists, else PackageRoot.
	Root string
	// IsMonorepo reports whether a workspace root was found.
	IsMonorepo bool
	// Manager is the detected package manager.
	Manager Manager
	// Package is the nearest package's manifest.
	Package *manifest.Manifest
	// Members lists workspace packages, ordered by relative path.
	Members []Member
}

// Build resolves the project around workDir. Root resolution runs first;
// manager detection, the package manifest read, and the workspace scan
// then run concurrently, each reading only the filesystem.
func Build(ctx context.Context, workDir string) (*Context, error) {
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", workDir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	pkgRoot, err := FindPackageRoot(abs)
	if err != nil {
		return nil, err
	}
	root, isMono := FindMonorepoRoot(pkgRoot)
	if !isMono {
		root = pkgRoot
	}

	c := &Context{
		WorkDir:     abs,
		PackageRoot: pkgRoot,
		Root:        root,
		IsMonorepo:  isMono,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := manifest.Load(pkgRoot)
		if err != nil {
			return err
		}
		c.Package = m
		return nil
	})
	g.Go(func() error {
		c.Manager = Detect(root)
		return nil
	})
	if isMono {
		g.Go(func() error {
			members, err := DiscoverMembers(gctx, root)
			if err != nil {
				return err
			}
			c.Members = members
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.ID = Identity(root)
	return c, nil
}

// ScriptKey builds the persisted-state handle for a script.
func ScriptKey(projectID, scope, name string) string {
	return fmt.Sprintf("%s:%s:%s", projectID, scope, name)
}

// RootScripts lists the nearest package's scripts in declaration order.
func (c *Context) RootScripts() []Script {
	if c.Package == nil {
		return nil
	}
	out := make([]Script, 0, len(c.Package.Scripts))
	for _, s := range c.Package.Scripts {
		out = append(out, Script{
			Key:     ScriptKey(c.ID, ScopeRoot, s.Name),
			Name:    s.Name,
			Command: s.Command,
			Scope:   ScopeRoot,
			Dir:     c.PackageRoot,
		})
	}
	return out
}

// MemberScripts lists a workspace member's scripts in declaration order.
func (c *Context) MemberScripts(m Member) []Script {
	if m.Manifest == nil {
		return nil
	}
	out := make([]Script, 0, len(m.Manifest.Scripts))
	for _, s := range m.Manifest.Scripts {
		out = append(out, Script{
			Key:     ScriptKey(c.ID, m.Name, s.Name),
			Name:    s.Name,
			Command: s.Command,
			Scope:   m.Name,
			Dir:     m.Dir,
		})
	}
	return out
}
