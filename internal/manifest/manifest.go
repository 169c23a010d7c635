// Package manifest reads package.json files. Script order follows the
// document, so the catalog can present scripts the way the author wrote
// them; encoding/json maps would lose that.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// FileName is the manifest file looked up in every directory walk.
const FileName = "package.json"

// Script is one entry of the "scripts" object.
type Script struct {
	Name    string
	Command string
}

// Manifest is the subset of package.json the runner cares about.
type Manifest struct {
	// Dir is the directory holding the manifest file.
	Dir string
	// Name is the "name" field, empty when absent.
	Name string
	// Scripts holds the "scripts" entries in declaration order.
	Scripts []Script
	// PackageManager is the raw "packageManager" field ("pnpm@9.0.0").
	PackageManager string
	// Workspaces holds the workspace globs, from either the array form
	// or the {"packages": [...]} object form.
	Workspaces []string
	// HasWorkspaces reports whether the "workspaces" field is present
	// at all, even when it lists no globs.
	HasWorkspaces bool
}

// Path returns the full path of the manifest file.
func (m *Manifest) Path() string {
	return filepath.Join(m.Dir, FileName)
}

// Load reads and parses dir/package.json.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	m.Dir = dir
	return m, nil
}

// Parse decodes a package.json document.
func Parse(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("top-level value is not an object")
	}

	m := &Manifest{}

	if name := doc.Get("name"); name.Type == gjson.String {
		m.Name = name.String()
	}
	if pm := doc.Get("packageManager"); pm.Type == gjson.String {
		m.PackageManager = pm.String()
	}

	if scripts := doc.Get("scripts"); scripts.IsObject() {
		seen := make(map[string]int)
		scripts.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.String {
				return true
			}
			name := key.String()
			// A duplicated key keeps its first position; the later
			// value wins, matching what npm itself ends up running.
			if i, ok := seen[name]; ok {
				m.Scripts[i].Command = value.String()
				return true
			}
			seen[name] = len(m.Scripts)
			m.Scripts = append(m.Scripts, Script{Name: name, Command: value.String()})
			return true
		})
	}

	ws := doc.Get("workspaces")
	m.HasWorkspaces = ws.Exists()
	switch {
	case ws.IsArray():
		for _, g := range ws.Array() {
			if g.Type == gjson.String {
				m.Workspaces = append(m.Workspaces, g.String())
			}
		}
	case ws.IsObject():
		for _, g := range ws.Get("packages").Array() {
			if g.Type == gjson.String {
				m.Workspaces = append(m.Workspaces, g.String())
			}
		}
	}

	return m, nil
}
