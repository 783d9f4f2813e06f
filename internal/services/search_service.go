package services

import (
	"context"
	"log"

	"github.com/minchan-k/cinelog/internal/database"
	"github.com/minchan-k/cinelog/internal/kmdb"
	"github.com/minchan-k/cinelog/internal/models"
)

// SearchService orchestrates metadata searches: the KMDb client does the
// fetching, a Redis cache short-circuits repeats, and a session enforces
// last-writer-wins so a slow superseded request can never clobber the
// results of a newer one.
type SearchService struct {
	client  *kmdb.Client
	cache   *database.SearchCache
	session *kmdb.Session
	logger  *log.Logger
}

// NewSearchService creates a new SearchService. The cache may be nil, in
// which case every search goes upstream.
func NewSearchService(client *kmdb.Client, cache *database.SearchCache, logger *log.Logger) *SearchService {
	return &SearchService{
		client:  client,
		cache:   cache,
		session: kmdb.NewSession(),
		logger:  logger,
	}
}

// Search runs one submission through the session. A failed request logs
// the cause and yields an empty result set — from the caller's side
// "no matches" and "request failed" look the same, as the UI treats them.
func (s *SearchService) Search(ctx context.Context, filter kmdb.Filter, query string) []models.MovieRecord {
	seq := s.session.Begin()

	if s.cache != nil {
		if records, ok := s.cache.Get(ctx, filter.Param(), query); ok {
			s.session.Commit(seq, records)
			return records
		}
	}

	records, err := s.client.Search(ctx, filter, query)
	if err != nil {
		s.logger.Printf("Search failed (%s=%q): %v", filter.Param(), query, err)
		s.session.Commit(seq, nil)
		return []models.MovieRecord{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, filter.Param(), query, records)
	}
	s.session.Commit(seq, records)
	return records
}

// Latest returns the most recently committed result set.
func (s *SearchService) Latest() []models.MovieRecord {
	return s.session.Latest()
}
