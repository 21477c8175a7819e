// file: internal/matcher/scorer.go
// version: 1.2.0
// guid: 4a8b6c2d-7e1f-4a3b-9c5d-0e2f1a3b4c5d

package matcher

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Scorer computes a similarity score between two strings in [0,100].
// Implementations must be deterministic for a given pair.
type Scorer interface {
	Score(a, b string) int
}

// WeightedScorer is the default scorer: a weighted composite of full-string
// ratio, token-sort ratio and best-partial ratio over Levenshtein distance,
// with a boost when one string contains the other. Tolerates reordered
// words and one string being a fragment of the other.
type WeightedScorer struct{}

// Score implements Scorer.
func (WeightedScorer) Score(a, b string) int {
	qa := normalize(a)
	qb := normalize(b)
	if qa == "" || qb == "" {
		return 0
	}
	if qa == qb {
		return 100
	}

	score := ratio(qa, qb)

	if ts := ratio(sortTokens(qa), sortTokens(qb)); ts > score {
		score = ts
	}

	shorter, longer := qa, qb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		// More specific containment (closer lengths) scores higher.
		sub := 70 + int(25.0*float64(len(shorter))/float64(len(longer)))
		if sub > score {
			score = sub
		}
	}

	if p := partialRatio(qa, qb); p > score {
		score = p
	}

	if score > 100 {
		score = 100
	}
	return score
}

// ratio is the Levenshtein similarity of two strings scaled to 0-100.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	r := int((1.0 - float64(dist)/float64(maxLen)) * 100)
	if r < 0 {
		r = 0
	}
	return r
}

// partialRatio slides the shorter string's word window across the longer
// string and returns the best window ratio, discounted to 90% so a full
// match always outranks a fragment match.
func partialRatio(a, b string) int {
	aw := strings.Fields(a)
	bw := strings.Fields(b)
	short, long := aw, bw
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 || len(short) == len(long) {
		return 0
	}

	q := strings.Join(short, " ")
	qSorted := sortTokens(q)
	k := len(short)
	best := 0
	for i := 0; i+k <= len(long); i++ {
		window := strings.Join(long[i:i+k], " ")
		r := ratio(q, window)
		if rs := ratio(qSorted, sortTokens(window)); rs > r {
			r = rs
		}
		if r > best {
			best = r
		}
	}
	return best * 90 / 100
}

func sortTokens(s string) string {
	words := strings.Fields(s)
	sort.Strings(words)
	return strings.Join(words, " ")
}

// normalize lowercases and strips everything but letters, digits and
// single spaces.
func normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || '0' <= r && r <= '9':
			b.WriteRune(r)
		case r >= 0x80: // keep non-ASCII letters as-is
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
