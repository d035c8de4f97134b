package service

import (
	"context"
	"errors"

	"github.com/talkboard/talkboard/internal/config"
	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
	"github.com/talkboard/talkboard/internal/search"
)

// SearchQuery mirrors ListingQuery for the full-text path.
type SearchQuery struct {
	Text           string
	Page           int
	IncludeTrusted bool
}

// to mock service in tests
type SearchService interface {
	Search(ctx context.Context, q SearchQuery) (*domain.ThreadPage, error)
}

// Searcher is the external index boundary.
type Searcher interface {
	Search(ctx context.Context, q search.Query) ([]domain.ThreadId, int, error)
}

type SearchHydrator interface {
	ThreadsByIds(ids []domain.ThreadId) ([]domain.ThreadMetadata, error)
}

type Search struct {
	index   Searcher
	storage SearchHydrator
	cfg     config.Public
}

func NewSearch(index Searcher, storage SearchHydrator, cfg config.Public) *Search {
	return &Search{index, storage, cfg}
}

// Search delegates to the external index with the visibility filter
// translated into an index-level condition, hydrates the returned
// identifiers from storage, and wraps everything in the same pagination
// contract the listing path uses. Index failures surface as
// SearchUnavailableError so callers can tell "no results" from "search
// degraded".
func (s *Search) Search(ctx context.Context, q SearchQuery) (*domain.ThreadPage, error) {
	if s.index == nil {
		return nil, &internal_errors.SearchUnavailableError{Err: errors.New("search index not configured")}
	}

	page := max(1, q.Page)
	perPage := s.cfg.ThreadsPerPage

	// The index is the one cross-process dependency with unbounded latency
	// risk; it gets a request-level timeout, nothing else does.
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SearchTimeout)
	defer cancel()

	ids, total, err := s.index.Search(ctx, search.Query{
		Text:           q.Text,
		Limit:          int64(perPage),
		Offset:         int64((page - 1) * perPage),
		IncludeTrusted: q.IncludeTrusted,
	})
	if err != nil {
		return nil, &internal_errors.SearchUnavailableError{Err: err}
	}

	items, err := s.storage.ThreadsByIds(ids)
	if err != nil {
		return nil, err
	}

	// The index already filtered on trust, but the visibility gate is never
	// bypassed: a stale document must not leak a trust-gated thread.
	visible := items[:0]
	for i := range items {
		if domain.ThreadVisible(&items[i], q.IncludeTrusted) {
			visible = append(visible, items[i])
		}
	}

	return &domain.ThreadPage{Items: visible, TotalCount: total, Page: page, PerPage: perPage}, nil
}
