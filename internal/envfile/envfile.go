// Package envfile discovers .env files around a script and merges their
// variables for injection into the launched process.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Scope says which directory group a file was found in.
type Scope string

const (
	ScopePackage Scope = "package"
	ScopeRoot    Scope = "root"
)

// File is one discovered .env candidate.
type File struct {
	// Path is the absolute file path.
	Path string
	// DisplayName identifies the file in the selector and in persisted
	// preferences: the bare file name for package files, "root/" plus
	// the name for project-root files, so the two groups never collide.
	DisplayName string
	// Scope is the group the file belongs to.
	Scope Scope
}

// List holds the discovered files, grouped and alphabetized.
type List struct {
	Package []File
	Root    []File
}

// Scan finds files named .env* directly in the package directory and,
// when it differs, the project root. Each group is sorted by file name.
// Discovery never fails; unreadable directories yield empty groups.
func Scan(packageDir, rootDir string) List {
	var list List
	list.Package = scanDir(packageDir, ScopePackage)

	if rootDir != "" && filepath.Clean(rootDir) != filepath.Clean(packageDir) {
		list.Root = scanDir(rootDir, ScopeRoot)
	}
	return list
}

func scanDir(dir string, scope Scope) []File {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), ".env") {
			continue
		}
		display := entry.Name()
		if scope == ScopeRoot {
			display = "root/" + display
		}
		files = append(files, File{
			Path:        filepath.Join(dir, entry.Name()),
			DisplayName: display,
			Scope:       scope,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].DisplayName < files[j].DisplayName })
	return files
}

// All returns the files in display order: package group, then root group.
func (l List) All() []File {
	out := make([]File, 0, len(l.Package)+len(l.Root))
	out = append(out, l.Package...)
	out = append(out, l.Root...)
	return out
}

// MergeOrder returns the files in injection order: root group first, then
// package group, so package values override root values.
func (l List) MergeOrder() []File {
	out := make([]File, 0, len(l.Package)+len(l.Root))
	out = append(out, l.Root...)
	out = append(out, l.Package...)
	return out
}

// Select returns the files whose display names appear in names, in merge
// order. Names with no matching file are ignored.
func (l List) Select(names []string) []File {
	if len(names) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var out []File
	for _, f := range l.MergeOrder() {
		if wanted[f.DisplayName] {
			out = append(out, f)
		}
	}
	return out
}

// Load reads and merges variables from the given files in order; later
// files override earlier ones. A file that cannot be read or parsed is
// skipped with a warning so one bad file never blocks the run.
func Load(paths []string) map[string]string {
	merged := make(map[string]string)
	for _, path := range paths {
		vars, err := godotenv.Read(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			continue
		}
		for k, v := range vars {
			merged[k] = v
		}
	}
	return merged
}
