package project

import (
	"path/filepath"
	"strings"

	"github.com/YangQing-Lin/nr-cli/internal/manifest"
	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

// Manager is a supported JavaScript package manager.
type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	PNPM Manager = "pnpm"
	Bun  Manager = "bun"
)

func (m Manager) String() string {
	return string(m)
}

// Command returns the binary and argument list that runs a script with
// extra arguments appended. Yarn invokes scripts directly; the others go
// through their run subcommand.
func (m Manager) Command(script string, extra []string) (string, []string) {
	if m == Yarn {
		return string(m), append([]string{script}, extra...)
	}
	return string(m), append([]string{"run", script}, extra...)
}

// InstallHint returns a one-line suggestion shown when the manager binary
// is not on PATH.
func (m Manager) InstallHint() string {
	switch m {
	case PNPM:
		return "install it with: npm install -g pnpm (https://pnpm.io/installation)"
	case Yarn:
		return "install it with: npm install -g yarn (https://yarnpkg.com)"
	case Bun:
		return "install it with: curl -fsSL https://bun.sh/install | bash (https://bun.sh)"
	default:
		return "download Node.js, which includes npm: https://nodejs.org"
	}
}

// Lockfile checks run in priority order; the first hit wins.
var lockfiles = []struct {
	name    string
	manager Manager
}{
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

// Detect resolves the package manager for a project root. Lockfiles take
// priority; without one, the root manifest's packageManager field decides;
// otherwise npm.
func Detect(root string) Manager {
	for _, lf := range lockfiles {
		if utils.FileExists(filepath.Join(root, lf.name)) {
			return lf.manager
		}
	}
	if m, err := manifest.Load(root); err == nil {
		if mgr, ok := fromPackageManagerField(m.PackageManager); ok {
			return mgr
		}
	}
	return NPM
}

// fromPackageManagerField parses a "name@version" packageManager value.
func fromPackageManagerField(field string) (Manager, bool) {
	name, _, _ := strings.Cut(field, "@")
	switch Manager(name) {
	case NPM, Yarn, PNPM, Bun:
		return Manager(name), true
	}
	return "", false
}
