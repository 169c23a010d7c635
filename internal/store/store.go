// Package store persists per-project runner state: favorites, recents,
// script configurations, argument history, and the global env preference.
// Every document loads to an empty default when missing or corrupt, so a
// damaged state directory never blocks a session; the next flush rewrites
// a valid file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

const (
	dirName = "nr"

	favoritesFile     = "favorites.json"
	recentsFile       = "recents.json"
	scriptConfigsFile = "script_configs.json"
	argsHistoryFile   = "args_history.json"
	globalEnvFile     = "global_env.json"

	filePerm = 0600
	dirPerm  = 0755
)

// DefaultRoot returns the state root under the user's config directory.
func DefaultRoot() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, dirName), nil
}

// Store holds all persisted documents for one project.
type Store struct {
	dir string

	Favorites   *Favorites
	Recents     *Recents
	Configs     *ScriptConfigs
	ArgsHistory *ArgsHistory
	GlobalEnv   *GlobalEnv
}

// Load opens the state directory for a project and reads every document.
// It never fails: unreadable documents come back empty and are rewritten
// on the next flush.
func Load(root, projectID string) *Store {
	dir := filepath.Join(root, projectID)
	return &Store{
		dir:         dir,
		Favorites:   loadFavorites(filepath.Join(dir, favoritesFile)),
		Recents:     loadRecents(filepath.Join(dir, recentsFile)),
		Configs:     loadScriptConfigs(filepath.Join(dir, scriptConfigsFile)),
		ArgsHistory: loadArgsHistory(filepath.Join(dir, argsHistoryFile)),
		GlobalEnv:   loadGlobalEnv(filepath.Join(dir, globalEnvFile)),
	}
}

// Dir returns the project's state directory.
func (s *Store) Dir() string {
	return s.dir
}

// Flush writes every document, returning the first failure. Mutating
// operations already save their own document; Flush is the belt worn
// before the execution handoff.
func (s *Store) Flush() error {
	for _, save := range []func() error{
		s.Favorites.Save,
		s.Recents.Save,
		s.Configs.Save,
		s.ArgsHistory.Save,
		s.GlobalEnv.Save,
	} {
		if err := save(); err != nil {
			return err
		}
	}
	return nil
}

// ClearFavorites deletes the favorites document, reporting whether one
// existed.
func (s *Store) ClearFavorites() (bool, error) {
	return removeDoc(filepath.Join(s.dir, favoritesFile))
}

// ClearRecents deletes the recents document.
func (s *Store) ClearRecents() (bool, error) {
	return removeDoc(filepath.Join(s.dir, recentsFile))
}

// ClearScriptConfigs deletes the script-configuration document.
func (s *Store) ClearScriptConfigs() (bool, error) {
	return removeDoc(filepath.Join(s.dir, scriptConfigsFile))
}

// ClearArgsHistory deletes the argument-history document.
func (s *Store) ClearArgsHistory() (bool, error) {
	return removeDoc(filepath.Join(s.dir, argsHistoryFile))
}

func removeDoc(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return true, nil
}

// writeDoc persists one document, creating the state directory on first
// use.
func writeDoc(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	return utils.WriteJSONFile(path, v, filePerm)
}
