package diag

import (
	"sort"
	"strings"
)

// Levenshtein computes the classic edit distance between a and b using a
// plain O(m*n) dynamic-programming table; adequate for the candidate-set
// sizes (table/column counts, catalog names) this package is used against.
func Levenshtein(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	m, n := len(a), len(b)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[n]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// MaxSuggestions bounds the number of near-misses offered in a single
// diagnostic, per the 5-7 range called for in the suggestion facility.
const MaxSuggestions = 5

// Suggest ranks candidates by ascending edit distance to target and
// returns the top MaxSuggestions names, breaking ties alphabetically.
func Suggest(target string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	scoredList := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		scoredList = append(scoredList, scored{c, Levenshtein(target, c)})
	}
	sort.Slice(scoredList, func(i, j int) bool {
		if scoredList[i].dist != scoredList[j].dist {
			return scoredList[i].dist < scoredList[j].dist
		}
		return scoredList[i].name < scoredList[j].name
	})
	if len(scoredList) > MaxSuggestions {
		scoredList = scoredList[:MaxSuggestions]
	}
	result := make([]string, len(scoredList))
	for i, s := range scoredList {
		result[i] = s.name
	}
	return result
}

// FormatSuggestions renders a suggestion list as a comma-separated,
// backtick-quoted list suitable for appending to a diagnostic message.
func FormatSuggestions(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}
