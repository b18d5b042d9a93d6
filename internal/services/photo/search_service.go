package photo

import (
	"context"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/database/models"
	"github.com/arvane/photodex/internal/apperr"
	"github.com/arvane/photodex/internal/services/modelsvc"
)

// SearchResult is the outcome of a search. Tags is nil unless the
// tag-based path ran and succeeded; Photos is never nil.
type SearchResult struct {
	Query  string
	Photos []models.Photo
	Tags   []string
}

// SearchService runs the hybrid cascade: embed the query and search by
// vector, falling back to model-extracted tags when embedding is
// unavailable or the vector search comes back empty. Each stage degrades
// exactly once; nothing is retried.
type SearchService struct {
	repo            Repository
	capability      modelsvc.Capability
	embedTimeout    time.Duration
	fallbackTimeout time.Duration
	defaultLimit    int
	maxLimit        int
	adaptiveDelta   float32
	adaptiveCap     float32
	logger          *zap.Logger
}

// NewSearchService creates the search orchestrator.
func NewSearchService(
	repo Repository,
	capability modelsvc.Capability,
	cfg *config.Config,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		repo:            repo,
		capability:      capability,
		embedTimeout:    cfg.EmbedTimeout,
		fallbackTimeout: cfg.FallbackTimeout,
		defaultLimit:    cfg.SearchDefaultLimit,
		maxLimit:        cfg.SearchMaxLimit,
		adaptiveDelta:   cfg.SearchAdaptiveDelta,
		adaptiveCap:     cfg.SearchAdaptiveCap,
		logger:          logger,
	}
}

// SemanticSearch runs the full cascade for one query. limit is nil when
// the caller omitted it; maxDistance, when non-nil, replaces the adaptive
// threshold with a hard cutoff.
func (s *SearchService) SemanticSearch(
	ctx context.Context,
	query string,
	limit *int,
	maxDistance *float32,
) (*SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, apperr.Validation("query cannot be empty")
	}

	result := &SearchResult{Query: query, Photos: []models.Photo{}}

	vec, reason := s.embedQuery(ctx, trimmed)
	if vec != nil {
		matches, err := s.repo.SearchByEmbedding(ctx, *vec, s.clampLimit(limit), maxDistance)
		if err != nil {
			return nil, apperr.Storage("vector search failed", err)
		}

		matches = rankByDistance(matches, maxDistance, s.adaptiveDelta, s.adaptiveCap)
		if len(matches) > 0 {
			result.Photos = make([]models.Photo, len(matches))
			for i, m := range matches {
				result.Photos[i] = m.Photo
			}
			return result, nil
		}
		reason = "vector search returned no matches"
	}

	s.logger.Warn("semantic search falling back to tags", zap.String("reason", reason))
	if err := s.tagFallback(ctx, trimmed, result); err != nil {
		return nil, err
	}
	return result, nil
}

// embedQuery attempts to embed the query under the embed timeout. It
// returns a nil vector with a reason string when the cascade should skip
// vector search; the reason is observability only, never control flow.
func (s *SearchService) embedQuery(ctx context.Context, query string) (*pgvector.Vector, string) {
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	vectors, err := s.capability.EmbedTexts(embedCtx, []string{query})
	if err != nil {
		return nil, "query embedding failed: " + err.Error()
	}
	if len(vectors) == 0 {
		return nil, "query embedding returned no vectors"
	}

	v := pgvector.NewVector(vectors[0])
	return &v, ""
}

// tagFallback fills result from the tag-based path. A tagging failure or
// timeout leaves Tags nil and Photos empty. An empty extracted tag list
// yields an empty result set here, unlike the plain tag-search endpoint
// where an empty filter lists everything; the asymmetry is observed
// behavior and deliberately not unified.
func (s *SearchService) tagFallback(ctx context.Context, query string, result *SearchResult) error {
	fbCtx, cancel := context.WithTimeout(ctx, s.fallbackTimeout)
	defer cancel()

	tagList, err := s.capability.TagsFromQuery(fbCtx, query)
	if err != nil {
		s.logger.Warn("tag fallback degraded to empty result", zap.Error(err))
		return nil
	}

	if tagList == nil {
		tagList = []string{}
	}
	result.Tags = tagList
	if len(tagList) == 0 {
		return nil
	}

	photos, err := s.repo.SearchByTags(ctx, tagList)
	if err != nil {
		return apperr.Storage("tag fallback query failed", err)
	}
	result.Photos = photos
	return nil
}

// TagSearch is the plain tag-search path: extract tags from the query and
// match them against stored photos. Tagging here is mandatory, not
// degraded.
func (s *SearchService) TagSearch(ctx context.Context, query string) (*SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, apperr.Validation("query cannot be empty")
	}

	tagList, err := s.capability.TagsFromQuery(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if tagList == nil {
		tagList = []string{}
	}

	result := &SearchResult{Query: query, Photos: []models.Photo{}, Tags: tagList}
	if len(tagList) == 0 {
		return result, nil
	}

	photos, err := s.repo.SearchByTags(ctx, tagList)
	if err != nil {
		return nil, apperr.Storage("tag search failed", err)
	}
	result.Photos = photos
	return result, nil
}

// List returns stored photos, optionally filtered by tag overlap. An
// empty filter lists everything, newest first.
func (s *SearchService) List(ctx context.Context, filterTags []string) ([]models.Photo, error) {
	photos, err := s.repo.SearchByTags(ctx, filterTags)
	if err != nil {
		return nil, apperr.Storage("failed to list photos", err)
	}
	return photos, nil
}

// clampLimit resolves the caller-supplied result limit into [1, maxLimit],
// defaulting when omitted.
func (s *SearchService) clampLimit(limit *int) int {
	if limit == nil {
		return s.defaultLimit
	}
	if *limit < 1 {
		return 1
	}
	if *limit > s.maxLimit {
		return s.maxLimit
	}
	return *limit
}
