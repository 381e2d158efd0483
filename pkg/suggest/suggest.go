// Package suggest ranks known command names by how close they are to a mistyped one, for the
// "did you mean" hint printed after an unknown command.
package suggest

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// MinScore is the similarity a candidate must exceed to be suggested.
const MinScore = 0.5

// FindSimilar returns at most limit candidates whose [Score] against target exceeds [MinScore],
// best first. Equal scores are ordered by name and repeated candidates are reported once. The
// result is never nil.
func FindSimilar(target string, candidates []string, limit int) []string {
	matches := []string{}
	if target == "" || limit <= 0 {
		return matches
	}
	scores := make(map[string]float64, len(candidates))
	for _, name := range candidates {
		if _, seen := scores[name]; seen {
			continue
		}
		score := Score(target, name)
		scores[name] = score
		if score > MinScore {
			matches = append(matches, name)
		}
	}
	slices.SortFunc(matches, func(a, b string) int {
		return cmp.Or(cmp.Compare(scores[b], scores[a]), strings.Compare(a, b))
	})
	return matches[:min(limit, len(matches))]
}

// Score rates how similar a typed name is to a known one, from 0 to 1, ignoring case. A typed
// prefix of the known name scores 0.9; otherwise the edit distance is scaled by the longer name.
func Score(typed, known string) float64 {
	typed, known = strings.ToLower(typed), strings.ToLower(known)
	switch {
	case typed == known:
		return 1
	case strings.HasPrefix(known, typed):
		return 0.9
	}
	longest := max(utf8.RuneCountInString(typed), utf8.RuneCountInString(known))
	return 1 - float64(levenshtein.Distance(typed, known, nil))/float64(longest)
}
