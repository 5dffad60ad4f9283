package check

import (
	"slices"

	"github.com/agnivade/levenshtein"
)

// suggest returns the candidate closest to name, if it is close enough to be a
// plausible typo: at most a third of the name's length, but never less than one edit.
func suggest(name string, candidates []string) (string, bool) {
	limit := max(len(name)/3, 1)
	best, bestDist := "", limit+1
	// детерминированный порядок при равных расстояниях
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)
	for _, cand := range sorted {
		if cand == name {
			continue
		}
		if d := levenshtein.ComputeDistance(name, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best, best != ""
}
