// Package fuzzy implements edit-distance matching for program names and
// keywords.
package fuzzy

import "unicode/utf8"

// Distance returns the classic Levenshtein edit distance between a and b,
// computed over runes with a full (len(a)+1) x (len(b)+1) DP table.
// Substitutions, insertions and deletions all cost 1.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			deletion := d[i-1][j] + 1
			insertion := d[i][j-1] + 1
			substitution := d[i-1][j-1] + cost

			m := deletion
			if insertion < m {
				m = insertion
			}
			if substitution < m {
				m = substitution
			}
			d[i][j] = m
		}
	}

	return d[len(ra)][len(rb)]
}

// Similarity normalizes the edit distance into [0, 1]. Two empty strings
// are identical (1.0); an empty string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)

	if la == 0 && lb == 0 {
		return 1.0
	}
	if la == 0 || lb == 0 {
		return 0.0
	}

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}

// FindBestMatch scans candidates and returns the one with the strictly
// highest similarity to input, provided it reaches the threshold. Ties
// keep the first-seen candidate.
func FindBestMatch(input string, candidates []string, threshold float64) (string, float64, bool) {
	best := ""
	bestScore := -1.0

	for _, c := range candidates {
		score := Similarity(input, c)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}

	if bestScore < threshold {
		return "", bestScore, false
	}
	return best, bestScore, true
}
