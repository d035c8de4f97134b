package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkboard/talkboard/internal/config"
	"github.com/talkboard/talkboard/internal/domain"
	internal_errors "github.com/talkboard/talkboard/internal/errors"
	"github.com/talkboard/talkboard/internal/search"
)

type MockSearcher struct {
	searchFunc func(ctx context.Context, q search.Query) ([]domain.ThreadId, int, error)
}

func (m *MockSearcher) Search(ctx context.Context, q search.Query) ([]domain.ThreadId, int, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, q)
	}
	return nil, 0, nil
}

type MockSearchHydrator struct {
	threadsFunc func(ids []domain.ThreadId) ([]domain.ThreadMetadata, error)
}

func (m *MockSearchHydrator) ThreadsByIds(ids []domain.ThreadId) ([]domain.ThreadMetadata, error) {
	if m.threadsFunc != nil {
		return m.threadsFunc(ids)
	}
	out := make([]domain.ThreadMetadata, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.ThreadMetadata{Id: id})
	}
	return out, nil
}

func searchConfig() config.Public {
	return config.Public{ThreadsPerPage: 20, SearchTimeout: 5 * time.Second}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("results keep the index order", func(t *testing.T) {
		index := &MockSearcher{searchFunc: func(ctx context.Context, q search.Query) ([]domain.ThreadId, int, error) {
			assert.Equal(t, "hello", q.Text)
			return []domain.ThreadId{9, 2, 7}, 3, nil
		}}
		svc := NewSearch(index, &MockSearchHydrator{}, searchConfig())

		page, err := svc.Search(ctx, SearchQuery{Text: "hello", Page: 1})

		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.Equal(t, domain.ThreadId(9), page.Items[0].Id)
		assert.Equal(t, domain.ThreadId(2), page.Items[1].Id)
		assert.Equal(t, domain.ThreadId(7), page.Items[2].Id)
		assert.Equal(t, 3, page.TotalCount)
	})

	t.Run("page translates to limit and offset", func(t *testing.T) {
		index := &MockSearcher{searchFunc: func(ctx context.Context, q search.Query) ([]domain.ThreadId, int, error) {
			assert.Equal(t, int64(20), q.Limit)
			assert.Equal(t, int64(40), q.Offset)
			return nil, 0, nil
		}}
		svc := NewSearch(index, &MockSearchHydrator{}, searchConfig())

		_, err := svc.Search(ctx, SearchQuery{Text: "x", Page: 3})
		require.NoError(t, err)
	})

	t.Run("index call carries a deadline", func(t *testing.T) {
		index := &MockSearcher{searchFunc: func(ctx context.Context, q search.Query) ([]domain.ThreadId, int, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return nil, 0, nil
		}}
		svc := NewSearch(index, &MockSearchHydrator{}, searchConfig())

		_, err := svc.Search(ctx, SearchQuery{Text: "x", Page: 1})
		require.NoError(t, err)
	})

	t.Run("index failure reads as search unavailable", func(t *testing.T) {
		index := &MockSearcher{searchFunc: func(context.Context, search.Query) ([]domain.ThreadId, int, error) {
			return nil, 0, errors.New("connection refused")
		}}
		svc := NewSearch(index, &MockSearchHydrator{}, searchConfig())

		_, err := svc.Search(ctx, SearchQuery{Text: "x", Page: 1})

		var unavailable *internal_errors.SearchUnavailableError
		require.ErrorAs(t, err, &unavailable)
	})

	t.Run("missing index reads as search unavailable", func(t *testing.T) {
		svc := NewSearch(nil, &MockSearchHydrator{}, searchConfig())

		_, err := svc.Search(ctx, SearchQuery{Text: "x", Page: 1})

		var unavailable *internal_errors.SearchUnavailableError
		require.ErrorAs(t, err, &unavailable)
	})

	t.Run("stale trust-gated documents never leak", func(t *testing.T) {
		index := &MockSearcher{searchFunc: func(context.Context, search.Query) ([]domain.ThreadId, int, error) {
			return []domain.ThreadId{1, 2}, 2, nil
		}}
		hydrator := &MockSearchHydrator{threadsFunc: func(ids []domain.ThreadId) ([]domain.ThreadMetadata, error) {
			return []domain.ThreadMetadata{
				{Id: 1, Trusted: false},
				{Id: 2, Trusted: true},
			}, nil
		}}
		svc := NewSearch(index, hydrator, searchConfig())

		page, err := svc.Search(ctx, SearchQuery{Text: "x", Page: 1, IncludeTrusted: false})

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, domain.ThreadId(1), page.Items[0].Id)
	})

	t.Run("hydration error is not a search failure", func(t *testing.T) {
		index := &MockSearcher{searchFunc: func(context.Context, search.Query) ([]domain.ThreadId, int, error) {
			return []domain.ThreadId{1}, 1, nil
		}}
		hydrator := &MockSearchHydrator{threadsFunc: func([]domain.ThreadId) ([]domain.ThreadMetadata, error) {
			return nil, errors.New("db down")
		}}
		svc := NewSearch(index, hydrator, searchConfig())

		_, err := svc.Search(ctx, SearchQuery{Text: "x", Page: 1})

		require.Error(t, err)
		var unavailable *internal_errors.SearchUnavailableError
		assert.False(t, errors.As(err, &unavailable))
	})
}
