package alerr

import "fmt"

// editDistance computes the Levenshtein distance between two strings.
func editDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

// SuggestSimilar returns a "did you mean 'X'?" hint for the closest option
// within an edit distance of 3, or an empty string.
func SuggestSimilar(input string, options []string) string {
	const maxDistance = 3

	best, bestDist := "", maxDistance+1
	for _, opt := range options {
		if d := editDistance(input, opt); d < bestDist {
			best, bestDist = opt, d
		}
	}

	if bestDist <= maxDistance {
		return fmt.Sprintf("did you mean '%s'?", best)
	}
	return ""
}

// InvalidChoice builds an ErrInvalidConfig error for a value outside a fixed
// set of options, with a suggestion when one is close.
func InvalidChoice(key, value string, options []string) *Error {
	e := Newf(ErrInvalidConfig, "invalid %s %q", key, value).
		With("allowed", options)
	if hint := SuggestSimilar(value, options); hint != "" {
		e.WithHelp(hint)
	}
	return e
}
