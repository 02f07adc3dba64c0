package echo

import (
	"math"
	"strings"
	"unicode"
)

// Normalize lowercases the text, replaces every non-alphanumeric rune with a
// space, collapses repeated whitespace and trims. Idempotent.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TokenSetSimilarity is the Jaccard overlap of the unique-token sets of the
// two normalized strings. Both empty -> 1, exactly one empty -> 0.
func TokenSetSimilarity(a, b string) float64 {
	return tokenSetSim(Normalize(a), Normalize(b))
}

func tokenSetSim(na, nb string) float64 {
	ta := tokenSet(na)
	tb := tokenSet(nb)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// EditDistanceRatio is 1 - levenshtein(a,b) / max(len(a), len(b)).
// Equal strings -> 1, exactly one empty -> 0.
func EditDistanceRatio(a, b string) float64 {
	return editRatio(a, b)
}

func editRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// CombinedSimilarity takes the max of token-set and edit-distance similarity
// over the normalized strings. Token overlap tolerates reordering and partial
// recognition drops; edit ratio tolerates character-level mis-recognitions.
func CombinedSimilarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	return math.Max(tokenSetSim(na, nb), editRatio(na, nb))
}
