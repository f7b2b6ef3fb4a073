package scoring

import (
	"math"
	"strings"
	"unicode"

	"github.com/umahmood/soundex"
)

// Similarity compares a reference passage against a transcript and returns a
// ratio in [0,1]. Both sides go through the same normalization (lowercase,
// punctuation stripped, whitespace tokenization), then the token sequences
// are aligned and scored as 2*matches/(len(a)+len(b)). Tokens that differ in
// spelling but share a soundex code count as matches, so homophones the
// recognizer picked do not cost the speaker points.
func Similarity(reference, hypothesis string) float64 {
	a := tokenize(reference)
	b := tokenize(hypothesis)
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	m := alignedMatches(a, b)
	return 2.0 * float64(m) / float64(len(a)+len(b))
}

// Grade maps a similarity ratio onto the 0-100 scale stored with attempts.
func Grade(similarity float64) int {
	return int(math.Floor(similarity * 100))
}

func tokenize(s string) []string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.Fields(sb.String())
}

// alignedMatches is the length of the longest common subsequence of the two
// token slices under tokensEqual.
func alignedMatches(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if tokensEqual(a[i-1], b[j-1]) {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func tokensEqual(x, y string) bool {
	if x == y {
		return true
	}
	cx, cy := soundex.Code(x), soundex.Code(y)
	return cx != "" && cx == cy
}
