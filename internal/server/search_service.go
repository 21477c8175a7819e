// file: internal/server/search_service.go
// version: 1.2.0
// guid: 7b9c1d3e-5f6a-4b8c-9d0e-2f4a6b8c0d2e

package server

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jdfalk/school-finder/internal/cache"
	"github.com/jdfalk/school-finder/internal/matcher"
	"github.com/jdfalk/school-finder/internal/metrics"
	"github.com/jdfalk/school-finder/internal/models"
	"github.com/jdfalk/school-finder/internal/store"
)

// SearchService coordinates district filtering, ranking, result caching
// and verify-link construction for one search request.
type SearchService struct {
	store          *store.Store
	scorer         matcher.Scorer
	threshold      int
	maxResults     int
	verifyTemplate string
	cache          *cache.TTL[SearchResponse]
}

// NewSearchService builds a search service with the given defaults.
// threshold and maxResults are the fallbacks when a request does not
// override them.
func NewSearchService(st *store.Store, scorer matcher.Scorer, threshold, maxResults int, verifyTemplate string, cacheTTL time.Duration) *SearchService {
	if scorer == nil {
		scorer = matcher.WeightedScorer{}
	}
	if threshold <= 0 {
		threshold = matcher.DefaultThreshold
	}
	if maxResults <= 0 {
		maxResults = matcher.DefaultMaxResults
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &SearchService{
		store:          st,
		scorer:         scorer,
		threshold:      threshold,
		maxResults:     maxResults,
		verifyTemplate: verifyTemplate,
		cache:          cache.New[SearchResponse](cacheTTL),
	}
}

// Search runs one query. The caller has already rejected empty queries;
// everything past that point is a reportable state, never an error.
func (s *SearchService) Search(query, district string, threshold, limit int) SearchResponse {
	started := time.Now()
	defer func() { metrics.ObserveSearchDuration(time.Since(started)) }()

	if threshold <= 0 || threshold > 100 {
		threshold = s.threshold
	}
	if limit <= 0 {
		limit = s.maxResults
	}
	district = strings.TrimSpace(district)
	if district == "" {
		district = store.AllDistricts
	}

	resp := SearchResponse{
		Status:    StatusOK,
		Query:     query,
		District:  district,
		Threshold: threshold,
		Results:   []SchoolResult{},
	}

	ds := s.store.Current()
	resp.Dataset = ds.Version
	if ds.Empty() {
		resp.Status = StatusEmptyDataset
		resp.Message = "no dataset loaded; upload a CSV export of the school directory"
		metrics.IncSearch(metrics.OutcomeEmptyDataset)
		return resp
	}

	key := cacheKey(ds.Version, district, query, threshold, limit)
	if cached, ok := s.cache.Get(key); ok {
		metrics.IncCacheHit()
		metrics.IncSearch(cached.Status)
		return cached
	}
	metrics.IncCacheMiss()

	subset := ds.FilterByDistrict(district)
	if subset.Empty() {
		resp.Status = StatusEmptyDistrict
		resp.Message = fmt.Sprintf("no schools found in district %q; try %q", district, store.AllDistricts)
		metrics.IncSearch(metrics.OutcomeEmptyDistrict)
		s.cache.Put(key, resp)
		return resp
	}

	ranker := matcher.NewRanker(s.scorer, threshold, limit)
	matches := ranker.Rank(query, subset.Records())
	if len(matches) == 0 {
		resp.Status = StatusNoMatch
		resp.Message = fmt.Sprintf("no matches at or above %d%% confidence; add more of the name or change district", threshold)
		metrics.IncSearch(metrics.OutcomeNoMatch)
		s.cache.Put(key, resp)
		return resp
	}

	for _, m := range matches {
		resp.Results = append(resp.Results, s.toResult(m))
	}
	resp.Count = len(resp.Results)
	metrics.IncSearch(metrics.OutcomeOK)
	s.cache.Put(key, resp)
	return resp
}

func (s *SearchService) toResult(m models.MatchResult) SchoolResult {
	return SchoolResult{
		Name:       m.Record.Name,
		UDISECode:  m.Record.UDISECode,
		District:   m.Record.District,
		Block:      m.Record.Block,
		Village:    m.Record.Village,
		Management: m.Record.Management,
		Status:     m.Record.Status,
		Confidence: m.Score,
		VerifyURL:  s.verifyURL(m.Record.UDISECode),
	}
}

// verifyURL interpolates the external identifier into the configured
// link template. Display concern only; records without a code get no
// link.
func (s *SearchService) verifyURL(code string) string {
	if code == "" || s.verifyTemplate == "" {
		return ""
	}
	return fmt.Sprintf(s.verifyTemplate, url.QueryEscape(code))
}

// cacheKey includes the dataset version, so replacing the dataset
// invalidates every cached response without an explicit flush.
func cacheKey(version, district, query string, threshold, limit int) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", version, strings.ToLower(district), strings.ToLower(strings.TrimSpace(query)), threshold, limit)
}
