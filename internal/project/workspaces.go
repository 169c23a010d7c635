package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/YangQing-Lin/nr-cli/internal/manifest"
	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

const pnpmWorkspaceFile = "pnpm-workspace.yaml"

// memberLoadConcurrency bounds parallel member manifest reads.
const memberLoadConcurrency = 8

// Member is one workspace package under the monorepo root.
type Member struct {
	// Name comes from the member manifest, falling back to the
	// directory name.
	Name string
	// Dir is the absolute member directory.
	Dir string
	// RelPath is the forward-slash path relative to the monorepo root.
	RelPath string
	// Manifest is the member's parsed package.json.
	Manifest *manifest.Manifest
}

// DiscoverMembers scans the workspace root for member packages. Globs come
// from the root manifest's workspaces field first, then from
// pnpm-workspace.yaml; either source may be absent.
func DiscoverMembers(ctx context.Context, root string) ([]Member, error) {
	var globs []string
	if m, err := manifest.Load(root); err == nil {
		globs = append(globs, m.Workspaces...)
	}
	if pnpm, err := loadPnpmGlobs(root); err == nil {
		globs = append(globs, pnpm...)
	}
	return scanMembers(ctx, root, globs)
}

func scanMembers(ctx context.Context, root string, globs []string) ([]Member, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var dirs []string

	for _, pattern := range globs {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			// Bad pattern, nothing to match.
			continue
		}
		for _, rel := range matches {
			if rel == "." || seen[rel] || hiddenOrVendored(rel) {
				continue
			}
			full := filepath.Join(root, filepath.FromSlash(rel))
			info, err := os.Stat(full)
			if err != nil || !info.IsDir() {
				continue
			}
			if !utils.FileExists(filepath.Join(full, manifest.FileName)) {
				continue
			}
			seen[rel] = true
			dirs = append(dirs, rel)
		}
	}

	members := make([]Member, len(dirs))
	loaded := make([]bool, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberLoadConcurrency)
	for i, rel := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dir := filepath.Join(root, filepath.FromSlash(rel))
			m, err := manifest.Load(dir)
			if err != nil {
				// An unreadable member manifest drops the member.
				return nil
			}
			name := m.Name
			if name == "" {
				name = filepath.Base(dir)
			}
			members[i] = Member{Name: name, Dir: dir, RelPath: rel, Manifest: m}
			loaded[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Member, 0, len(members))
	for i, m := range members {
		if loaded[i] {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out, nil
}

// hiddenOrVendored reports whether any path segment is node_modules or a
// dot-directory; globs never recruit members from those trees.
func hiddenOrVendored(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if seg == "node_modules" || strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// loadPnpmGlobs reads the packages list from pnpm-workspace.yaml. A
// missing file contributes no globs.
func loadPnpmGlobs(root string) ([]string, error) {
	path := filepath.Join(root, pnpmWorkspaceFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var ws pnpmWorkspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ws.Packages, nil
}
