// file: internal/matcher/ranker.go
// version: 1.1.0
// guid: 8d2e4f6a-3b5c-4d7e-9f1a-2b4c6d8e0f1a

package matcher

import (
	"sort"
	"strings"

	"github.com/jdfalk/school-finder/internal/models"
)

// Default ranking parameters.
const (
	DefaultThreshold  = 75
	DefaultMaxResults = 5
)

// Ranker scores candidate records against a free-text query and returns
// the best matches. Rank is a pure function of its inputs.
type Ranker struct {
	Scorer     Scorer
	Threshold  int
	MaxResults int
}

// NewRanker builds a ranker, substituting defaults for zero values.
func NewRanker(scorer Scorer, threshold, maxResults int) *Ranker {
	if scorer == nil {
		scorer = WeightedScorer{}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Ranker{Scorer: scorer, Threshold: threshold, MaxResults: maxResults}
}

// Rank returns the top matches for query among candidates, ordered by
// descending score, capped at MaxResults, with scores below Threshold
// discarded and identical names collapsed to their best-scoring record.
// An empty or whitespace-only query returns nil without invoking the
// scorer.
func (r *Ranker) Rank(query string, candidates []models.Record) []models.MatchResult {
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return nil
	}

	// Fast path: when any candidate name contains the query verbatim,
	// restrict scoring to those candidates. Otherwise fall back to
	// scoring the whole set.
	q := strings.ToLower(query)
	universe := make([]models.Record, 0)
	for _, rec := range candidates {
		if strings.Contains(nameKey(rec), q) {
			universe = append(universe, rec)
		}
	}
	if len(universe) == 0 {
		universe = candidates
	}

	results := make([]models.MatchResult, 0, len(universe))
	for _, rec := range universe {
		if rec.Name == "" {
			continue
		}
		score := r.Scorer.Score(query, rec.Name)
		if score >= r.Threshold {
			results = append(results, models.MatchResult{Record: rec, Score: score})
		}
	}

	// Stable sort keeps discovery order on ties, making ranking
	// deterministic across runs.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > r.MaxResults {
		results = results[:r.MaxResults]
	}

	// Collapse duplicate names, keeping the highest-scoring (first after
	// the descending sort) record per name.
	seen := make(map[string]bool, len(results))
	deduped := results[:0]
	for _, m := range results {
		if seen[m.Record.Name] {
			continue
		}
		seen[m.Record.Name] = true
		deduped = append(deduped, m)
	}
	return deduped
}

// nameKey returns the shadow name field, computing it on the fly for
// records that were constructed without one.
func nameKey(rec models.Record) string {
	if rec.NameLower != "" {
		return rec.NameLower
	}
	return strings.ToLower(strings.TrimSpace(rec.Name))
}
