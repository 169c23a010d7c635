package store

import (
	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

// ScriptConfig is the saved per-script run configuration, written when the
// user confirms the configure flow.
type ScriptConfig struct {
	// SelectedEnvFiles holds env-file display names, in selector order.
	SelectedEnvFiles []string `json:"selected_env_files"`
	// Args is the extra argument text appended to the run command.
	Args string `json:"args"`
	// LastUsed is the unix-millisecond confirm time.
	LastUsed int64 `json:"last_used"`
}

// ScriptConfigs maps script keys to their saved configuration, persisted
// as a JSON object.
type ScriptConfigs struct {
	path    string
	configs map[string]ScriptConfig
}

func loadScriptConfigs(path string) *ScriptConfigs {
	c := &ScriptConfigs{path: path, configs: make(map[string]ScriptConfig)}
	var m map[string]ScriptConfig
	if err := utils.ReadJSONFile(path, &m); err == nil && m != nil {
		c.configs = m
	}
	return c
}

// Get returns the saved configuration for key.
func (c *ScriptConfigs) Get(key string) (ScriptConfig, bool) {
	cfg, ok := c.configs[key]
	return cfg, ok
}

// Set stores the configuration for key, replacing any previous one.
func (c *ScriptConfigs) Set(key string, cfg ScriptConfig) {
	c.configs[key] = cfg
}

// Len returns the number of configured scripts.
func (c *ScriptConfigs) Len() int {
	return len(c.configs)
}

// Save writes the configuration document.
func (c *ScriptConfigs) Save() error {
	return writeDoc(c.path, c.configs)
}
