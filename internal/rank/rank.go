// Package rank orders the script catalog for display. It returns index
// views into the session-stable catalog slice and never reorders the
// entries themselves.
package rank

import (
	"sort"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/YangQing-Lin/nr-cli/internal/project"
)

// Favorites answers starred lookups during ranking.
type Favorites interface {
	Has(key string) bool
}

// Frecency answers decayed-usage score lookups during ranking.
type Frecency interface {
	Score(key string, now time.Time) float64
}

// Sort returns indices into scripts in display order.
//
// With an empty query: favorites first, alphabetical among themselves;
// the rest by descending frecency, then alphabetical.
//
// With a query: entries whose names the fuzzy matcher rejects are excluded;
// the rest order by match score descending, then favorites, then frecency
// descending, then declaration order. Relevance outranks favorites so the
// best textual match is always on top.
func Sort(scripts []project.Script, favorites Favorites, frecency Frecency, query string, now time.Time) []int {
	if query == "" {
		return sortBrowsing(scripts, favorites, frecency, now)
	}
	return sortMatching(scripts, favorites, frecency, query, now)
}

func sortBrowsing(scripts []project.Script, favorites Favorites, frecency Frecency, now time.Time) []int {
	indices := make([]int, len(scripts))
	scores := make([]float64, len(scripts))
	for i := range scripts {
		indices[i] = i
		scores[i] = frecency.Score(scripts[i].Key, now)
	}

	sort.Slice(indices, func(x, y int) bool {
		a, b := indices[x], indices[y]
		favA, favB := favorites.Has(scripts[a].Key), favorites.Has(scripts[b].Key)
		if favA != favB {
			return favA
		}
		if favA && favB {
			return scripts[a].Name < scripts[b].Name
		}
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return scripts[a].Name < scripts[b].Name
	})
	return indices
}

func sortMatching(scripts []project.Script, favorites Favorites, frecency Frecency, query string, now time.Time) []int {
	names := make([]string, len(scripts))
	for i := range scripts {
		names[i] = scripts[i].Name
	}

	matches := fuzzy.Find(query, names)
	indices := make([]int, 0, len(matches))
	matchScore := make(map[int]int, len(matches))
	useScore := make(map[int]float64, len(matches))
	for _, m := range matches {
		indices = append(indices, m.Index)
		matchScore[m.Index] = m.Score
		useScore[m.Index] = frecency.Score(scripts[m.Index].Key, now)
	}

	sort.Slice(indices, func(x, y int) bool {
		a, b := indices[x], indices[y]
		if matchScore[a] != matchScore[b] {
			return matchScore[a] > matchScore[b]
		}
		favA, favB := favorites.Has(scripts[a].Key), favorites.Has(scripts[b].Key)
		if favA != favB {
			return favA
		}
		if useScore[a] != useScore[b] {
			return useScore[a] > useScore[b]
		}
		return a < b
	})
	return indices
}

// FilterNames returns indices of names matching query in relevance order.
// An empty query keeps every index in place.
func FilterNames(names []string, query string) []int {
	if query == "" {
		indices := make([]int, len(names))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	matches := fuzzy.Find(query, names)
	indices := make([]int, 0, len(matches))
	for _, m := range matches {
		indices = append(indices, m.Index)
	}
	return indices
}
