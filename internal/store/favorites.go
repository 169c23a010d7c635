package store

import (
	"sort"

	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

// Favorites is the set of starred script keys, persisted as a JSON array.
type Favorites struct {
	path string
	keys map[string]bool
}

func loadFavorites(path string) *Favorites {
	f := &Favorites{path: path, keys: make(map[string]bool)}
	var arr []string
	if err := utils.ReadJSONFile(path, &arr); err == nil {
		for _, k := range arr {
			f.keys[k] = true
		}
	}
	return f
}

// Has reports whether key is starred.
func (f *Favorites) Has(key string) bool {
	return f.keys[key]
}

// Toggle flips key's starred state and returns the new state.
func (f *Favorites) Toggle(key string) bool {
	if f.keys[key] {
		delete(f.keys, key)
		return false
	}
	f.keys[key] = true
	return true
}

// Len returns the number of starred keys.
func (f *Favorites) Len() int {
	return len(f.keys)
}

// Save writes the set as a sorted array so the document diffs cleanly.
func (f *Favorites) Save() error {
	keys := make([]string, 0, len(f.keys))
	for k := range f.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return writeDoc(f.path, keys)
}
