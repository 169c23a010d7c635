package store

import (
	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

type globalEnvDoc struct {
	LastEnvFiles []string `json:"last_env_files"`
}

// GlobalEnv remembers the env-file display names from the last confirmed
// configuration; it seeds the selector for scripts with no saved
// configuration of their own. Resets never touch it.
type GlobalEnv struct {
	path  string
	names []string
}

func loadGlobalEnv(path string) *GlobalEnv {
	g := &GlobalEnv{path: path}
	var doc globalEnvDoc
	if err := utils.ReadJSONFile(path, &doc); err == nil {
		g.names = doc.LastEnvFiles
	}
	return g
}

// Get returns the remembered display names.
func (g *GlobalEnv) Get() []string {
	return g.names
}

// Set replaces the remembered display names.
func (g *GlobalEnv) Set(names []string) {
	g.names = names
}

// Save writes the preference document.
func (g *GlobalEnv) Save() error {
	return writeDoc(g.path, globalEnvDoc{LastEnvFiles: g.names})
}
