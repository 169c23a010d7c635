package store

import (
	"math"
	"sort"
	"time"

	"github.com/YangQing-Lin/nr-cli/internal/utils"
)

const (
	// maxRecents caps the recents document; overflow evicts the entry
	// with the lowest current frecency, never the oldest insertion.
	maxRecents = 100

	// halfLifeDays is the frecency decay half-life.
	halfLifeDays = 14.0
)

// RecentEntry is one script's run record.
type RecentEntry struct {
	Key     string `json:"key"`
	LastRun int64  `json:"last_run"`
	Count   int    `json:"count"`
}

// Recents tracks how often and how recently scripts ran, persisted as a
// JSON array.
type Recents struct {
	path    string
	entries map[string]*RecentEntry
}

func loadRecents(path string) *Recents {
	r := &Recents{path: path, entries: make(map[string]*RecentEntry)}
	var arr []RecentEntry
	if err := utils.ReadJSONFile(path, &arr); err == nil {
		for i := range arr {
			e := arr[i]
			if e.Key == "" {
				continue
			}
			r.entries[e.Key] = &e
		}
	}
	return r
}

// FrecencyScore is the run count decayed by age: count * 0.5^(age/halflife).
// Four runs fourteen days ago score the same as two runs now.
func FrecencyScore(count int, lastRun int64, now time.Time) float64 {
	ageDays := now.Sub(time.UnixMilli(lastRun)).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return float64(count) * math.Pow(0.5, ageDays/halfLifeDays)
}

// Score returns key's current frecency, zero when it never ran.
func (r *Recents) Score(key string, now time.Time) float64 {
	e, ok := r.entries[key]
	if !ok {
		return 0
	}
	return FrecencyScore(e.Count, e.LastRun, now)
}

// Record notes one run of key at now. When the document would grow past
// its cap, the entry with the lowest frecency is evicted; ties evict the
// lexicographically smallest key.
func (r *Recents) Record(key string, now time.Time) {
	if e, ok := r.entries[key]; ok {
		e.Count++
		e.LastRun = now.UnixMilli()
		return
	}

	r.entries[key] = &RecentEntry{Key: key, LastRun: now.UnixMilli(), Count: 1}
	if len(r.entries) <= maxRecents {
		return
	}

	var victim string
	lowest := math.Inf(1)
	for k, e := range r.entries {
		score := FrecencyScore(e.Count, e.LastRun, now)
		if score < lowest || (score == lowest && k < victim) {
			lowest = score
			victim = k
		}
	}
	delete(r.entries, victim)
}

// Len returns the number of tracked scripts.
func (r *Recents) Len() int {
	return len(r.entries)
}

// Has reports whether key has a run record.
func (r *Recents) Has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

// Save writes the entries most-recent-first.
func (r *Recents) Save() error {
	arr := make([]RecentEntry, 0, len(r.entries))
	for _, e := range r.entries {
		arr = append(arr, *e)
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].LastRun != arr[j].LastRun {
			return arr[i].LastRun > arr[j].LastRun
		}
		return arr[i].Key < arr[j].Key
	})
	return writeDoc(r.path, arr)
}
