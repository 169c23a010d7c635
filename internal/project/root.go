// Package project resolves the npm project around the invocation
// directory: nearest package, monorepo root, package manager, workspace
// members, and the stable identity that keys persisted state.
package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/YangQing-Lin/nr-cli/internal/manifest"
	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

// ErrNoManifest is returned when no package.json exists in the start
// directory or any of its ancestors.
var ErrNoManifest = errors.New("no package.json found")

// FindPackageRoot walks upward from start and returns the first directory
// containing a package.json.
func FindPackageRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		if utils.FileExists(filepath.Join(dir, manifest.FileName)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w searching upward from %s", ErrNoManifest, start)
		}
		dir = parent
	}
}

// FindMonorepoRoot walks upward from the nearest package directory,
// including that directory itself, and returns the first directory that
// marks a workspace root: a package.json with a workspaces field, or a
// pnpm-workspace.yaml. The second return is false when the project is a
// standalone package.
func FindMonorepoRoot(packageRoot string) (string, bool) {
	dir := packageRoot
	for {
		if utils.FileExists(filepath.Join(dir, pnpmWorkspaceFile)) {
			return dir, true
		}
		if utils.FileExists(filepath.Join(dir, manifest.FileName)) {
			// An unreadable ancestor manifest is not a workspace root.
			if m, err := manifest.Load(dir); err == nil && m.HasWorkspaces {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
