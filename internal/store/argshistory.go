package store

import (
	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

// maxArgsHistory caps the remembered argument strings.
const maxArgsHistory = 20

type argsHistoryDoc struct {
	Entries []string `json:"entries"`
}

// ArgsHistory is the project-scoped list of argument strings, most recent
// first.
type ArgsHistory struct {
	path    string
	entries []string
}

func loadArgsHistory(path string) *ArgsHistory {
	h := &ArgsHistory{path: path}
	var doc argsHistoryDoc
	if err := utils.ReadJSONFile(path, &doc); err == nil {
		h.entries = doc.Entries
	}
	return h
}

// Push records args at the front. Empty strings are dropped, a duplicate
// moves to the front instead of repeating, and the list never grows past
// its cap.
func (h *ArgsHistory) Push(args string) {
	if args == "" {
		return
	}

	out := make([]string, 0, len(h.entries)+1)
	out = append(out, args)
	for _, e := range h.entries {
		if e == args {
			continue
		}
		out = append(out, e)
	}
	if len(out) > maxArgsHistory {
		out = out[:maxArgsHistory]
	}
	h.entries = out
}

// All returns the entries most-recent-first. Callers must not mutate the
// returned slice.
func (h *ArgsHistory) All() []string {
	return h.entries
}

// Len returns the number of remembered strings.
func (h *ArgsHistory) Len() int {
	return len(h.entries)
}

// Save writes the history document.
func (h *ArgsHistory) Save() error {
	return writeDoc(h.path, argsHistoryDoc{Entries: h.entries})
}
