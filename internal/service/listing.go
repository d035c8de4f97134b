package service

import (
	"context"

	"github.com/talkboard/talkboard/internal/config"
	"github.com/talkboard/talkboard/internal/domain"
	"github.com/talkboard/talkboard/internal/logger"
)

// ListingQuery is the caller's view of a listing request. Page values below
// one are clamped up, a zero PerPage takes the configured default.
type ListingQuery struct {
	Page           int
	PerPage        int
	Category       *domain.CategoryId
	IncludeTrusted bool
}

// to mock service in tests
type ListingService interface {
	List(ctx context.Context, q ListingQuery) (*domain.ThreadPage, error)
}

type ListingStorage interface {
	ListThreads(filter domain.ListingFilter, limit, offset int) ([]domain.ThreadMetadata, error)
	CountListedThreads(filter domain.ListingFilter) (int, error)
}

// CountsCache is the read side of the per-category count cache.
type CountsCache interface {
	Get(ctx context.Context, category domain.CategoryId) (int, bool)
	Set(ctx context.Context, category domain.CategoryId, count int) error
}

type Listing struct {
	storage ListingStorage
	counts  CountsCache
	cfg     config.Public
}

func NewListing(storage ListingStorage, counts CountsCache, cfg config.Public) *Listing {
	return &Listing{storage, counts, cfg}
}

// List returns one page of thread summaries ordered sticky-first, then by
// recency, with the visibility filter applied in the storage predicate.
func (l *Listing) List(ctx context.Context, q ListingQuery) (*domain.ThreadPage, error) {
	page := max(1, q.Page)
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = l.cfg.ThreadsPerPage
	}

	filter := domain.ListingFilter{Category: q.Category, IncludeTrusted: q.IncludeTrusted}
	items, err := l.storage.ListThreads(filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	total, err := l.totalCount(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &domain.ThreadPage{Items: items, TotalCount: total, Page: page, PerPage: perPage}, nil
}

// totalCount prefers the pre-maintained per-category cache. The cache holds
// the unrestricted category size, so it only answers queries that include
// trusted threads; any other shape (or a miss) runs a full count under the
// same predicate the page query used.
func (l *Listing) totalCount(ctx context.Context, filter domain.ListingFilter) (int, error) {
	cacheable := filter.Category != nil && filter.IncludeTrusted && l.counts != nil

	if cacheable {
		if n, ok := l.counts.Get(ctx, *filter.Category); ok {
			return n, nil
		}
	}

	n, err := l.storage.CountListedThreads(filter)
	if err != nil {
		return 0, err
	}

	if cacheable {
		if err := l.counts.Set(ctx, *filter.Category, n); err != nil {
			logger.Log.Warn("category count cache set failed", "category", *filter.Category, "err", err)
		}
	}
	return n, nil
}
